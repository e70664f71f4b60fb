package entity

import "github.com/shopspring/decimal"

// LineItem línea de un documento anidado (orden de venta o cotización).
type LineItem struct {
	ProductID string
	Model     string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// SalesOrder orden de venta. ItemsRaw conserva la celda original; Items es nil y ItemsValid
// false cuando el documento anidado no se pudo interpretar.
type SalesOrder struct {
	ID           string
	Date         string
	CustomerID   string
	ProjectName  string
	ItemsRaw     string
	Items        []LineItem
	ItemsValid   bool
	GrandTotal   decimal.Decimal
	QuotationRef string
	Status       string
}

// Quotation cotización con los totales tal como fueron guardados en la hoja.
type Quotation struct {
	ID             string
	Date           string
	CustomerID     string
	ProjectName    string
	Items          []LineItem
	ItemsValid     bool
	StoredSubtotal decimal.Decimal
	Discount       decimal.Decimal
	StoredVAT      decimal.Decimal
	StoredTotal    decimal.Decimal
}
