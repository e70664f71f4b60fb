package entity

import "github.com/shopspring/decimal"

// StockStatus clasificación del saldo de un producto.
type StockStatus string

const (
	StockHealthy    StockStatus = "Healthy"
	StockLow        StockStatus = "Low"
	StockOutOfStock StockStatus = "Out of Stock"
	StockNegative   StockStatus = "Negative"
)

// LedgerEntry saldo calculado de un producto.
//
//	Balance          = TotalIn − TotalOut
//	AvailableBalance = Balance − ReservedQuantity
//
// Ninguno de los dos se recorta a cero.
type LedgerEntry struct {
	Product          Product
	Known            bool // false si el producto sólo aparece en movimientos u órdenes
	TotalIn          decimal.Decimal
	TotalOut         decimal.Decimal
	Balance          decimal.Decimal
	ReservedQuantity decimal.Decimal
	AvailableBalance decimal.Decimal
	Units            []UnitRecord
}

// Serialized indica si el producto tiene al menos una unidad con número de serie.
func (e *LedgerEntry) Serialized() bool {
	return len(e.Units) > 0
}

// Status clasifica el saldo frente al stock mínimo.
func (e *LedgerEntry) Status() StockStatus {
	switch {
	case e.Balance.IsNegative():
		return StockNegative
	case e.Balance.IsZero():
		return StockOutOfStock
	case e.Product.MinStock.IsPositive() && e.Balance.LessThan(e.Product.MinStock):
		return StockLow
	default:
		return StockHealthy
	}
}
