// Package diag canal de diagnósticos del motor: datos inconsistentes que el cálculo tolera
// (los descarta u omite) pero que el llamador puede querer mostrar.
package diag

// Kind tipo de diagnóstico.
type Kind string

const (
	DanglingOut       Kind = "dangling_out"       // salida con serie sin entrada previa
	DuplicateSerial   Kind = "duplicate_serial"   // misma serie recibida más de una vez
	RepeatedOut       Kind = "repeated_out"       // misma serie despachada más de una vez
	MalformedItems    Kind = "malformed_items"    // documento de ítems ilegible
	UnknownProduct    Kind = "unknown_product"    // producto ausente del maestro
	OverReserved      Kind = "over_reserved"      // reservado > saldo
	NegativeBalance   Kind = "negative_balance"   // salidas > entradas
	QuotationMismatch Kind = "quotation_mismatch" // total guardado ≠ total recalculado
)

// Diagnostic un hallazgo concreto.
type Diagnostic struct {
	Kind      Kind   `json:"kind"`
	ProductID string `json:"product_id,omitempty"`
	Serial    string `json:"serial,omitempty"`
	Ref       string `json:"ref,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// Report colección ordenada de diagnósticos. El valor cero está listo para usarse;
// un *Report nil descarta todo lo que recibe.
type Report struct {
	items []Diagnostic
}

// Add agrega un diagnóstico.
func (r *Report) Add(d Diagnostic) {
	if r == nil {
		return
	}
	r.items = append(r.items, d)
}

// Items copia de los diagnósticos en orden de aparición.
func (r *Report) Items() []Diagnostic {
	if r == nil {
		return nil
	}
	out := make([]Diagnostic, len(r.items))
	copy(out, r.items)
	return out
}

// Len cantidad de diagnósticos.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.items)
}

// Count cantidad de diagnósticos de un tipo.
func (r *Report) Count(k Kind) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, d := range r.items {
		if d.Kind == k {
			n++
		}
	}
	return n
}

// Counts cantidad por tipo.
func (r *Report) Counts() map[Kind]int {
	out := map[Kind]int{}
	if r == nil {
		return out
	}
	for _, d := range r.items {
		out[d.Kind]++
	}
	return out
}

// OfKind diagnósticos de un tipo, en orden.
func (r *Report) OfKind(k Kind) []Diagnostic {
	if r == nil {
		return nil
	}
	var out []Diagnostic
	for _, d := range r.items {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}
