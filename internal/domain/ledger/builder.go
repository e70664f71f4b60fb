package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cmi-stock/internal/domain/diag"
	"github.com/jhoicas/cmi-stock/internal/domain/entity"
)

const unknownProject = "Unknown Project"

type unitKey struct {
	productID string
	serial    string
}

// Build procesa primero todas las entradas y luego todas las salidas:
//   - una entrada con serie crea (o sobrescribe, gana la última) la unidad en estado In Stock;
//   - una salida con serie despliega la unidad si existe; si no existe se ignora para el
//     ciclo de vida y se informa DanglingOut;
//   - TotalIn/TotalOut suman la cantidad de cada fila, tenga o no serie.
//
// Filas sin ProductID no se pueden atribuir y se ignoran. report puede ser nil.
func Build(products []entity.Product, ins, outs []entity.Movement, report *diag.Report) *Ledger {
	l := newLedger(len(products))
	for _, p := range products {
		if p.ID == "" {
			continue
		}
		if _, dup := l.entries[p.ID]; dup {
			continue
		}
		l.add(&entity.LedgerEntry{Product: p, Known: true})
	}

	units := make(map[unitKey]int) // posición en entry.Units

	for _, m := range ins {
		if m.ProductID == "" {
			continue
		}
		e := l.ensure(m.ProductID, report, m.RefNo)
		e.TotalIn = e.TotalIn.Add(m.Quantity)
		if !m.Serialized() {
			continue
		}
		u := entity.UnitRecord{
			Serial:    m.Serial,
			ProductID: m.ProductID,
			Model:     firstNonEmpty(m.Model, e.Product.Model),
			Status:    entity.UnitInStock,
			InDate:    m.Date,
			InRef:     m.RefNo,
			Receiver:  m.Person,
			Supplier:  m.Entity,
		}
		key := unitKey{m.ProductID, m.Serial}
		if i, seen := units[key]; seen {
			report.Add(diag.Diagnostic{Kind: diag.DuplicateSerial, ProductID: m.ProductID, Serial: m.Serial, Ref: m.RefNo})
			e.Units[i] = u
			continue
		}
		units[key] = len(e.Units)
		e.Units = append(e.Units, u)
	}

	for _, m := range outs {
		if m.ProductID == "" {
			continue
		}
		e := l.ensure(m.ProductID, report, m.RefNo)
		e.TotalOut = e.TotalOut.Add(m.Quantity)
		if !m.Serialized() {
			continue
		}
		i, ok := units[unitKey{m.ProductID, m.Serial}]
		if !ok {
			report.Add(diag.Diagnostic{Kind: diag.DanglingOut, ProductID: m.ProductID, Serial: m.Serial, Ref: m.RefNo})
			continue
		}
		u := &e.Units[i]
		if u.Status == entity.UnitDeployed {
			report.Add(diag.Diagnostic{Kind: diag.RepeatedOut, ProductID: m.ProductID, Serial: m.Serial, Ref: m.RefNo})
		}
		u.Status = entity.UnitDeployed
		u.OutDate = m.Date
		u.OutRef = m.RefNo
		u.Withdrawer = m.Person
		u.ProjectName = firstNonEmpty(m.ProjectName, unknownProject)
		u.ProjectType = m.ProjectType
	}

	for _, e := range l.Entries() {
		e.Balance = e.TotalIn.Sub(e.TotalOut)
		e.ReservedQuantity = decimal.Zero
		e.AvailableBalance = e.Balance
		if e.Balance.IsNegative() {
			report.Add(diag.Diagnostic{
				Kind:      diag.NegativeBalance,
				ProductID: e.Product.ID,
				Detail:    "in " + e.TotalIn.String() + " / out " + e.TotalOut.String(),
			})
		}
	}
	return l
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
