// Package quotation casos de uso de cotizaciones: cálculo ad hoc, resumen de una cotización
// guardada y su representación en PDF.
package quotation

import (
	"context"
	"fmt"

	"github.com/jhoicas/cmi-stock/internal/application/dto"
	"github.com/jhoicas/cmi-stock/internal/application/reconcile"
	"github.com/jhoicas/cmi-stock/internal/domain"
	"github.com/jhoicas/cmi-stock/internal/domain/entity"
	"github.com/jhoicas/cmi-stock/internal/domain/finance"
)

// ResultProvider devuelve el resultado vigente del motor.
type ResultProvider interface {
	Run(ctx context.Context) (*reconcile.Result, error)
}

// PDFGenerator genera la representación gráfica de una cotización.
type PDFGenerator interface {
	GenerateQuotationPDF(ctx context.Context, q entity.Quotation, s finance.Summary) ([]byte, error)
}

// UseCase cotizaciones.
type UseCase struct {
	results   ResultProvider
	generator PDFGenerator
}

// NewUseCase construye el caso de uso. generator puede ser nil si no se sirven PDFs.
func NewUseCase(results ResultProvider, generator PDFGenerator) *UseCase {
	return &UseCase{results: results, generator: generator}
}

// Calculate totales de una lista de líneas enviada por el cliente. No consulta la instantánea.
func (uc *UseCase) Calculate(in dto.CalculateQuotationRequest) dto.FinancialSummaryDTO {
	items := make([]entity.LineItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.LineItem{
			ProductID: it.ProductID,
			Model:     it.Model,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return dto.SummaryFromFinance(finance.Summarize(items, in.Discount))
}

// Summary recalcula una cotización guardada y la compara con el total de la hoja.
func (uc *UseCase) Summary(ctx context.Context, id string) (*dto.FinancialSummaryDTO, error) {
	q, s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.SummaryFromFinance(s)
	out.QuotationID = q.ID
	stored := q.StoredTotal
	matches := finance.Matches(stored, s.Total)
	out.StoredTotal = &stored
	out.Matches = &matches
	return &out, nil
}

// PDF genera el PDF de una cotización guardada. Devuelve bytes y nombre de archivo sugerido.
func (uc *UseCase) PDF(ctx context.Context, id string) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("%w: generación de PDF no configurada", domain.ErrInvalidInput)
	}
	q, s, err := uc.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateQuotationPDF(ctx, q, s)
	if err != nil {
		return nil, "", fmt.Errorf("quotation: generar pdf: %w", err)
	}
	return pdfBytes, fmt.Sprintf("quotation_%s.pdf", q.ID), nil
}

func (uc *UseCase) load(ctx context.Context, id string) (entity.Quotation, finance.Summary, error) {
	res, err := uc.results.Run(ctx)
	if err != nil {
		return entity.Quotation{}, finance.Summary{}, err
	}
	q, ok := res.Quotation(id)
	if !ok {
		return entity.Quotation{}, finance.Summary{}, domain.ErrNotFound
	}
	if !q.ItemsValid {
		return entity.Quotation{}, finance.Summary{}, fmt.Errorf("%w: ítems ilegibles en %s", domain.ErrInvalidInput, id)
	}
	return q, finance.Summarize(q.Items, q.Discount), nil
}
