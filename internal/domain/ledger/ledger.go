// Package ledger arma el libro de stock por producto y el ciclo de vida de cada unidad
// serializada, y superpone las reservas de órdenes de venta abiertas.
//
// Todo se recalcula desde cero a partir de una instantánea inmutable; no hay estado entre llamadas.
package ledger

import (
	"github.com/jhoicas/cmi-stock/internal/domain/diag"
	"github.com/jhoicas/cmi-stock/internal/domain/entity"
)

// Ledger entradas por producto en orden estable: primero el maestro de productos,
// luego los productos desconocidos en el orden en que aparecieron.
type Ledger struct {
	entries map[string]*entity.LedgerEntry
	order   []string
}

func newLedger(capacity int) *Ledger {
	return &Ledger{
		entries: make(map[string]*entity.LedgerEntry, capacity),
		order:   make([]string, 0, capacity),
	}
}

// Get devuelve la entrada de un producto.
func (l *Ledger) Get(productID string) (*entity.LedgerEntry, bool) {
	e, ok := l.entries[productID]
	return e, ok
}

// Len cantidad de productos en el libro.
func (l *Ledger) Len() int { return len(l.order) }

// Entries entradas en orden estable.
func (l *Ledger) Entries() []*entity.LedgerEntry {
	out := make([]*entity.LedgerEntry, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.entries[id])
	}
	return out
}

// Units todas las unidades serializadas, agrupadas por producto en el orden del libro.
func (l *Ledger) Units() []entity.UnitRecord {
	var out []entity.UnitRecord
	for _, id := range l.order {
		out = append(out, l.entries[id].Units...)
	}
	return out
}

func (l *Ledger) add(e *entity.LedgerEntry) {
	l.entries[e.Product.ID] = e
	l.order = append(l.order, e.Product.ID)
}

// ensure devuelve la entrada del producto, creándola como desconocida si no existe.
func (l *Ledger) ensure(productID string, report *diag.Report, ref string) *entity.LedgerEntry {
	if e, ok := l.entries[productID]; ok {
		return e
	}
	e := &entity.LedgerEntry{Product: entity.Product{ID: productID}}
	l.add(e)
	report.Add(diag.Diagnostic{Kind: diag.UnknownProduct, ProductID: productID, Ref: ref})
	return e
}

// clone copia profunda (entradas y unidades) para que las etapas posteriores no muten la anterior.
func (l *Ledger) clone() *Ledger {
	out := newLedger(len(l.order))
	for _, id := range l.order {
		src := l.entries[id]
		cp := *src
		cp.Units = make([]entity.UnitRecord, len(src.Units))
		copy(cp.Units, src.Units)
		out.add(&cp)
	}
	return out
}
