package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cmi-stock/internal/domain"
	"github.com/jhoicas/cmi-stock/internal/domain/fields"
	"github.com/jhoicas/cmi-stock/internal/domain/normalize"
	"github.com/jhoicas/cmi-stock/internal/domain/repository"
)

var _ repository.RecordWriter = (*RecordWriter)(nil)

// refIndex índice parcial que hace único el Ref No dentro de un flujo.
const refIndex = "sheet_rows_ref_no_idx"

// RecordWriter agrega filas a sheet_rows. Es el camino de escritura cuando la fuente es Postgres.
type RecordWriter struct {
	pool *pgxpool.Pool
}

// NewRecordWriter construye el adaptador.
func NewRecordWriter(pool *pgxpool.Pool) *RecordWriter {
	return &RecordWriter{pool: pool}
}

// Append inserta la fila al final del flujo. Un Ref No repetido en el mismo flujo se rechaza.
// Las escrituras del mismo flujo se serializan con un advisory lock de la transacción, así
// row_no no se repite entre escritores concurrentes.
func (w *RecordWriter) Append(ctx context.Context, stream fields.Stream, row map[string]string) error {
	rec := fields.FromMap(row)

	tx, err := w.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, string(stream)); err != nil {
		return fmt.Errorf("lock sheet_rows: %w", err)
	}

	query := `
		INSERT INTO sheet_rows (stream, row_no, headers, row_values, ref_no, quantity)
		SELECT $1, COALESCE(MAX(row_no), 0) + 1, $2::text[], $3::text[], $4::text, $5::numeric
		FROM sheet_rows WHERE stream = $1`
	_, err = tx.Exec(ctx, query, string(stream), rec.Headers, rec.Values, row["Ref No"], rowQuantity(stream, row))
	if err != nil {
		if isConstraintViolation(err, refIndex) {
			return fmt.Errorf("%w: ref %s duplicado", domain.ErrWriteRejected, row["Ref No"])
		}
		return fmt.Errorf("insert sheet_rows: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// rowQuantity cantidad tipada de la fila. Solo los movimientos la llevan; en otros flujos es NULL.
func rowQuantity(stream fields.Stream, row map[string]string) decimal.NullDecimal {
	switch stream {
	case fields.StreamStockIn, fields.StreamStockOut:
		return decimal.NullDecimal{Decimal: normalize.Quantity(row["Quantity"]), Valid: true}
	default:
		return decimal.NullDecimal{}
	}
}
