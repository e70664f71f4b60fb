// Package normalize convierte texto de hojas de cálculo en valores tipados sin fallar nunca.
package normalize

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/width"
)

var one = decimal.NewFromInt(1)

// currencyWords símbolos y palabras de moneda que pueden aparecer pegados al monto.
var currencyWords = []string{"THB", "บาท", "฿", "$", "€", "USD"}

// ParseNumber interpreta montos como "฿1,234.50", " 12 ", "１２" o "(300)".
// ok=false si el texto está vacío o no contiene un número.
func ParseNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(width.Narrow.String(s))
	if s == "" {
		return decimal.Zero, false
	}
	for _, w := range currencyWords {
		s = strings.ReplaceAll(s, w, "")
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == ',' || r == '_' || unicode.IsSpace(r):
			// separadores de miles
		default:
			b.WriteRune(r)
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// Number igual que ParseNumber pero con cero para entradas vacías o no numéricas.
func Number(s string) decimal.Decimal {
	d, _ := ParseNumber(s)
	return d
}

// Quantity cantidad de un movimiento: 1 si la celda está vacía o no es numérica.
func Quantity(s string) decimal.Decimal {
	d, ok := ParseNumber(s)
	if !ok {
		return one
	}
	return d
}

// Any convierte un valor decodificado de JSON/YAML en texto plano.
func Any(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return decimal.NewFromFloat(t).String()
	case float32:
		return decimal.NewFromFloat32(t).String()
	case int:
		return decimal.NewFromInt(int64(t)).String()
	case int64:
		return decimal.NewFromInt(t).String()
	case uint64:
		return decimal.NewFromUint64(t).String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
