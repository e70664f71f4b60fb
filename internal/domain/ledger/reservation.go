package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cmi-stock/internal/domain/diag"
	"github.com/jhoicas/cmi-stock/internal/domain/entity"
	"github.com/jhoicas/cmi-stock/internal/domain/fields"
)

// reservedStatuses estados de orden que comprometen stock, normalizados con fields.NormalizeKey.
var reservedStatuses = map[string]struct{}{}

func init() {
	for _, s := range []string{
		"Reserved", "Pending", "Confirmed",
		"จอง", "จองแล้ว", "รอดำเนินการ", "ยืนยัน", "ยืนยันแล้ว",
	} {
		reservedStatuses[fields.NormalizeKey(s)] = struct{}{}
	}
}

// IsReservedStatus compara sin distinguir mayúsculas, espacios ni formas Unicode.
func IsReservedStatus(status string) bool {
	_, ok := reservedStatuses[fields.NormalizeKey(status)]
	return ok
}

// ApplyReservations devuelve una copia del libro con las cantidades comprometidas por las
// órdenes en estado reservado. Una orden con documento de ítems ilegible se omite (MalformedItems)
// sin afectar a las demás. AvailableBalance puede quedar negativo; se informa OverReserved.
func ApplyReservations(base *Ledger, orders []entity.SalesOrder, report *diag.Report) *Ledger {
	l := base.clone()

	reserved := make(map[string]decimal.Decimal)
	var seenOrder []string
	for _, o := range orders {
		if !IsReservedStatus(o.Status) {
			continue
		}
		if !o.ItemsValid {
			report.Add(diag.Diagnostic{Kind: diag.MalformedItems, Ref: o.ID, Detail: o.ItemsRaw})
			continue
		}
		for _, it := range o.Items {
			if it.ProductID == "" {
				continue
			}
			if _, ok := reserved[it.ProductID]; !ok {
				seenOrder = append(seenOrder, it.ProductID)
			}
			reserved[it.ProductID] = reserved[it.ProductID].Add(it.Quantity)
		}
	}

	for _, id := range seenOrder {
		e := l.ensure(id, report, "")
		e.ReservedQuantity = reserved[id]
	}

	for _, e := range l.Entries() {
		e.AvailableBalance = e.Balance.Sub(e.ReservedQuantity)
		if e.ReservedQuantity.IsPositive() && e.AvailableBalance.IsNegative() {
			report.Add(diag.Diagnostic{
				Kind:      diag.OverReserved,
				ProductID: e.Product.ID,
				Detail:    "balance " + e.Balance.String() + " / reserved " + e.ReservedQuantity.String(),
			})
		}
	}
	return l
}
