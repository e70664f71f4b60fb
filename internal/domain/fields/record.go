// Package fields resuelve campos lógicos sobre registros tabulares sin esquema fijo.
//
// Cada campo lógico tiene una cadena ordenada de estrategias (alias → patrón de contenido →
// posición heredada). La primera estrategia que produce un valor no vacío gana.
package fields

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Record fila semiestructurada: encabezados y valores en el orden de la exportación.
// Headers y Values pueden tener longitudes distintas (filas cortas o columnas sin nombre).
type Record struct {
	Headers []string
	Values  []string
}

// NewRecord construye un Record copiando los slices de entrada.
func NewRecord(headers, values []string) Record {
	h := make([]string, len(headers))
	copy(h, headers)
	v := make([]string, len(values))
	copy(v, values)
	return Record{Headers: h, Values: v}
}

// FromMap construye un Record desde un mapa. Las claves se ordenan para que el resultado sea
// determinista; el orden posicional no tiene significado en registros construidos así.
func FromMap(m map[string]string) Record {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values := make([]string, len(keys))
	for i, k := range keys {
		values[i] = m[k]
	}
	return Record{Headers: keys, Values: values}
}

// At devuelve el valor en la posición i (recortado) y si existe.
func (r Record) At(i int) (string, bool) {
	if i < 0 || i >= len(r.Values) {
		return "", false
	}
	return strings.TrimSpace(r.Values[i]), true
}

// Map devuelve el registro como mapa encabezado → valor (primera aparición gana).
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r.Headers))
	for i, h := range r.Headers {
		if _, dup := m[h]; dup {
			continue
		}
		v, _ := r.At(i)
		m[h] = v
	}
	return m
}

// index mapea clave normalizada → posición de la primera columna con ese nombre.
func (r Record) index() map[string]int {
	idx := make(map[string]int, len(r.Headers))
	for i, h := range r.Headers {
		k := NormalizeKey(h)
		if k == "" {
			continue
		}
		if _, ok := idx[k]; !ok {
			idx[k] = i
		}
	}
	return idx
}

// NormalizeKey pliega un nombre de columna para comparar alias:
// NFKC, case folding y sólo letras, dígitos y marcas combinantes (necesarias para el tailandés).
// "Product ID", "product_id" y "PRODUCT-ID" normalizan a "productid".
func NormalizeKey(s string) string {
	s = cases.Fold().String(norm.NFKC.String(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
