package repository

import (
	"context"

	"github.com/jhoicas/cmi-stock/internal/domain/fields"
)

// RecordWriter publica un registro nuevo en el endpoint remoto de escritura.
// Es "dispara y olvida": no hay contrato de respuesta más allá del error de transporte.
type RecordWriter interface {
	Append(ctx context.Context, stream fields.Stream, row map[string]string) error
}
