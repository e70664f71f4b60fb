// Package finance totales de cotizaciones: subtotal, descuento, descomposición del IVA incluido
// y monto en letras.
package finance

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cmi-stock/internal/domain/bahttext"
	"github.com/jhoicas/cmi-stock/internal/domain/entity"
)

// VATRate tasa de IVA tailandesa, siempre incluida en el total.
var VATRate = decimal.NewFromFloat(0.07)

var (
	vatDivisor = decimal.NewFromInt(1).Add(VATRate)
	tolerance  = decimal.NewFromFloat(0.01)
)

// Summary resultado del cálculo. Net y VAT son informativos (Net + VAT ≈ Total) y el IVA
// nunca se vuelve a sumar al total.
type Summary struct {
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal // Subtotal − Discount, sin recortar a cero
	Net       decimal.Decimal // Total / 1.07
	VAT       decimal.Decimal // Total × 0.07 / 1.07
	TotalText string
}

// Summarize calcula el resumen de una lista de líneas con un descuento absoluto.
// Net y VAT se redondean a 2 decimales.
func Summarize(items []entity.LineItem, discount decimal.Decimal) Summary {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Quantity.Mul(it.UnitPrice))
	}
	total := subtotal.Sub(discount)
	return Summary{
		Subtotal:  subtotal,
		Discount:  discount,
		Total:     total,
		Net:       total.Div(vatDivisor).Round(2),
		VAT:       total.Mul(VATRate).Div(vatDivisor).Round(2),
		TotalText: bahttext.Format(total),
	}
}

// LineTotal qty × price de una línea.
func LineTotal(it entity.LineItem) decimal.Decimal {
	return it.Quantity.Mul(it.UnitPrice)
}

// Matches indica si un total guardado coincide con el recalculado (tolerancia de 0.01).
func Matches(stored, computed decimal.Decimal) bool {
	return stored.Sub(computed).Abs().LessThanOrEqual(tolerance)
}
