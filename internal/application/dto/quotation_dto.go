package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cmi-stock/internal/domain/finance"
)

// LineItemRequest una línea para POST /api/quotations/calculate.
type LineItemRequest struct {
	ProductID string          `json:"product_id,omitempty"`
	Model     string          `json:"model,omitempty"`
	Quantity  decimal.Decimal `json:"qty"`
	UnitPrice decimal.Decimal `json:"price"`
}

// CalculateQuotationRequest body para POST /api/quotations/calculate.
type CalculateQuotationRequest struct {
	Items    []LineItemRequest `json:"items" validate:"required,min=1,dive"`
	Discount decimal.Decimal   `json:"discount"`
}

// FinancialSummaryDTO totales de una cotización. vat y net son informativos;
// el IVA (7%) ya está incluido en total.
type FinancialSummaryDTO struct {
	QuotationID string           `json:"quotation_id,omitempty"`
	Subtotal    decimal.Decimal  `json:"subtotal"`
	Discount    decimal.Decimal  `json:"discount"`
	Net         decimal.Decimal  `json:"net"`
	VAT         decimal.Decimal  `json:"vat"`
	Total       decimal.Decimal  `json:"total"`
	TotalText   string           `json:"total_text"`
	StoredTotal *decimal.Decimal `json:"stored_total,omitempty"`
	Matches     *bool            `json:"matches_stored,omitempty"`
}

// SummaryFromFinance convierte el resumen del dominio.
func SummaryFromFinance(s finance.Summary) FinancialSummaryDTO {
	return FinancialSummaryDTO{
		Subtotal:  s.Subtotal,
		Discount:  s.Discount,
		Net:       s.Net,
		VAT:       s.VAT,
		Total:     s.Total,
		TotalText: s.TotalText,
	}
}
