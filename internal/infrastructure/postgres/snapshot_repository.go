package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cmi-stock/internal/domain"
	"github.com/jhoicas/cmi-stock/internal/domain/fields"
	"github.com/jhoicas/cmi-stock/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// schemaDDL tabla espejo de las hojas: cada fila guarda sus encabezados y valores en orden,
// así el resolver trabaja igual que con la exportación CSV.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS sheet_rows (
	stream     TEXT        NOT NULL,
	row_no     INTEGER     NOT NULL,
	headers    TEXT[]      NOT NULL,
	row_values TEXT[]      NOT NULL,
	ref_no     TEXT,
	quantity   NUMERIC,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (stream, row_no)
);
CREATE UNIQUE INDEX IF NOT EXISTS sheet_rows_ref_no_idx ON sheet_rows (stream, ref_no) WHERE ref_no IS NOT NULL AND ref_no <> '';
ALTER TABLE sheet_rows ADD COLUMN IF NOT EXISTS quantity NUMERIC;
`

// SnapshotRepo fuente de instantáneas sobre la tabla sheet_rows.
type SnapshotRepo struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository construye el adaptador.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepo {
	return &SnapshotRepo{pool: pool}
}

// EnsureSchema crea la tabla si no existe.
func (r *SnapshotRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("crear sheet_rows: %w", err)
	}
	return nil
}

// Fetch lee todas las filas en una sola consulta (misma transacción implícita, instantánea coherente).
func (r *SnapshotRepo) Fetch(ctx context.Context) (*repository.Snapshot, error) {
	query := `SELECT stream, headers, row_values FROM sheet_rows ORDER BY stream, row_no`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		if isUndefinedTable(err) {
			return &repository.Snapshot{}, nil
		}
		return nil, fmt.Errorf("%w: consultar sheet_rows: %v", domain.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	snap := &repository.Snapshot{}
	for rows.Next() {
		var stream string
		var headers, values []string
		if err := rows.Scan(&stream, &headers, &values); err != nil {
			return nil, fmt.Errorf("scan sheet_rows: %w", err)
		}
		route(snap, fields.Stream(stream), fields.NewRecord(headers, values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar sheet_rows: %w", err)
	}
	return snap, nil
}

// route agrega la fila al flujo correspondiente. Flujos desconocidos se ignoran.
func route(snap *repository.Snapshot, stream fields.Stream, rec fields.Record) {
	switch stream {
	case fields.StreamProducts:
		snap.Products = append(snap.Products, rec)
	case fields.StreamStockIn:
		snap.StockIn = append(snap.StockIn, rec)
	case fields.StreamStockOut:
		snap.StockOut = append(snap.StockOut, rec)
	case fields.StreamSalesOrders:
		snap.SalesOrders = append(snap.SalesOrders, rec)
	case fields.StreamQuotations:
		snap.Quotations = append(snap.Quotations, rec)
	}
}

// QuantityTotals suma la columna quantity por flujo (solo movimientos la tienen).
func (r *SnapshotRepo) QuantityTotals(ctx context.Context) (map[fields.Stream]decimal.Decimal, error) {
	query := `
		SELECT stream, SUM(quantity) FROM sheet_rows
		WHERE quantity IS NOT NULL
		GROUP BY stream`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sumar sheet_rows: %w", err)
	}
	defer rows.Close()

	out := make(map[fields.Stream]decimal.Decimal)
	for rows.Next() {
		var stream string
		var total decimal.Decimal
		if err := rows.Scan(&stream, &total); err != nil {
			return nil, fmt.Errorf("scan totales: %w", err)
		}
		out[fields.Stream(stream)] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar totales: %w", err)
	}
	return out, nil
}
