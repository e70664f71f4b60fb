// Package movement registro de entradas y salidas en la hoja remota.
// El motor nunca escribe: el caso de uso reenvía el registro y luego invalida la instantánea.
package movement

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/cmi-stock/internal/application/dto"
	"github.com/jhoicas/cmi-stock/internal/application/reconcile"
	"github.com/jhoicas/cmi-stock/internal/domain"
	"github.com/jhoicas/cmi-stock/internal/domain/entity"
	"github.com/jhoicas/cmi-stock/internal/domain/fields"
	"github.com/jhoicas/cmi-stock/internal/domain/repository"
	"github.com/jhoicas/cmi-stock/pkg/logger"
	"github.com/jhoicas/cmi-stock/pkg/validator"
)

// StatusSent el endpoint remoto no confirma la escritura; sólo se sabe que el envío salió.
const StatusSent = "sent"

// Invalidator descarta el resultado memoizado del motor.
type Invalidator interface {
	Invalidate()
}

// Broadcaster avisa a los clientes conectados.
type Broadcaster interface {
	Broadcast(event string, payload any)
}

// EventSnapshotInvalidated evento emitido tras cada escritura aceptada.
const EventSnapshotInvalidated = "snapshot.invalidated"

// UseCase registro de movimientos.
type UseCase struct {
	writer      repository.RecordWriter
	invalidator Invalidator
	broadcaster Broadcaster
	log         *logger.Logger
}

// NewUseCase construye el caso de uso. invalidator y broadcaster son opcionales.
func NewUseCase(writer repository.RecordWriter, invalidator Invalidator, broadcaster Broadcaster, log *logger.Logger) *UseCase {
	return &UseCase{writer: writer, invalidator: invalidator, broadcaster: broadcaster, log: log}
}

// Post valida el movimiento, le asigna número de referencia si no trae uno y lo envía.
func (uc *UseCase) Post(ctx context.Context, in dto.PostMovementRequest, person string) (*dto.PostMovementResponse, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, errs[0].Error())
	}
	if uc.writer == nil {
		return nil, fmt.Errorf("%w: endpoint de escritura no configurado", domain.ErrWriteRejected)
	}

	dir := entity.Direction(in.Direction)
	stream := fields.StreamStockIn
	if dir == entity.DirectionOUT {
		stream = fields.StreamStockOut
	}
	if in.RefNo == "" {
		in.RefNo = refPrefix(dir) + strings.ToUpper(uuid.New().String()[:8])
	}
	if in.Person == "" {
		in.Person = person
	}

	if err := uc.writer.Append(ctx, stream, Row(in)); err != nil {
		return nil, fmt.Errorf("movement: enviar %s: %w", in.RefNo, err)
	}

	if uc.invalidator != nil {
		uc.invalidator.Invalidate()
	}
	if uc.broadcaster != nil {
		uc.broadcaster.Broadcast(EventSnapshotInvalidated, map[string]string{
			"ref_no": in.RefNo,
			"stream": string(stream),
		})
	}
	if uc.log != nil {
		uc.log.Info().
			Str("ref_no", in.RefNo).
			Str("direction", in.Direction).
			Str("product_id", in.ProductID).
			Str("person", in.Person).
			Msg("movimiento enviado")
	}
	return &dto.PostMovementResponse{RefNo: in.RefNo, Status: StatusSent}, nil
}

func refPrefix(dir entity.Direction) string {
	if dir == entity.DirectionOUT {
		return "OUT-"
	}
	return "IN-"
}

// Row fila con los encabezados canónicos de la hoja destino.
func Row(in dto.PostMovementRequest) map[string]string {
	qty := in.Quantity
	if qty == "" {
		qty = "1"
	}
	row := map[string]string{
		"Product ID":    strings.TrimSpace(in.ProductID),
		"Serial Number": reconcile.Serial(in.Serial),
		"Quantity":      qty,
		"Date":          strings.TrimSpace(in.Date),
		"Ref No":        in.RefNo,
	}
	if entity.Direction(in.Direction) == entity.DirectionOUT {
		row["Project Name"] = in.ProjectName
		row["Project Type"] = in.ProjectType
		row["Withdrawer"] = in.Person
	} else {
		row["Entity"] = in.Entity
		row["Receiver"] = in.Person
	}
	return row
}
