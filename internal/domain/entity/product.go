package entity

import "github.com/shopspring/decimal"

// Product fila del maestro de productos.
// MinStock cero significa "sin umbral" (no participa de alertas de stock bajo).
type Product struct {
	ID       string
	Category string
	Brand    string
	Model    string
	Unit     string
	MinStock decimal.Decimal
	Company  string
	ImageRef string
}
