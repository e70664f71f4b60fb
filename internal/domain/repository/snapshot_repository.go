package repository

import (
	"context"

	"github.com/jhoicas/cmi-stock/internal/domain/fields"
)

// Snapshot instantánea inmutable de los cinco flujos de registros.
// El motor sólo consume instantáneas completas; invalidar y volver a leer es responsabilidad del llamador.
type Snapshot struct {
	Products    []fields.Record
	StockIn     []fields.Record
	StockOut    []fields.Record
	SalesOrders []fields.Record
	Quotations  []fields.Record
}

// Stream devuelve los registros de un flujo.
func (s *Snapshot) Stream(stream fields.Stream) []fields.Record {
	if s == nil {
		return nil
	}
	switch stream {
	case fields.StreamProducts:
		return s.Products
	case fields.StreamStockIn:
		return s.StockIn
	case fields.StreamStockOut:
		return s.StockOut
	case fields.StreamSalesOrders:
		return s.SalesOrders
	case fields.StreamQuotations:
		return s.Quotations
	default:
		return nil
	}
}

// SnapshotRepository fuente de instantáneas (exportación de hojas de cálculo, Postgres, archivos).
// Las implementaciones son read-only.
type SnapshotRepository interface {
	// Fetch lee los cinco flujos. Un error en productos o movimientos es fatal;
	// órdenes y cotizaciones pueden llegar vacías.
	Fetch(ctx context.Context) (*Snapshot, error)
}
