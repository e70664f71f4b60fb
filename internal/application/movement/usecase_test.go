package movement_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cmi-stock/internal/application/dto"
	"github.com/jhoicas/cmi-stock/internal/application/movement"
	"github.com/jhoicas/cmi-stock/internal/domain"
	"github.com/jhoicas/cmi-stock/internal/domain/entity"
	"github.com/jhoicas/cmi-stock/internal/domain/fields"
	"github.com/jhoicas/cmi-stock/pkg/logger"
)

type fakeWriter struct {
	stream fields.Stream
	row    map[string]string
	err    error
	calls  int
}

func (f *fakeWriter) Append(_ context.Context, stream fields.Stream, row map[string]string) error {
	f.calls++
	f.stream, f.row = stream, row
	return f.err
}

type fakeInvalidator struct{ calls int }

func (f *fakeInvalidator) Invalidate() { f.calls++ }

type fakeBroadcaster struct {
	events []string
}

func (f *fakeBroadcaster) Broadcast(event string, _ any) { f.events = append(f.events, event) }

func TestPost_Entrada(t *testing.T) {
	w, inv, bc := &fakeWriter{}, &fakeInvalidator{}, &fakeBroadcaster{}
	uc := movement.NewUseCase(w, inv, bc, logger.Nop())

	out, err := uc.Post(context.Background(), dto.PostMovementRequest{
		Direction: "IN",
		ProductID: " INV-001 ",
		Serial:    "S1",
		Date:      "2024-01-01",
		Entity:    "Huawei TH",
	}, "somchai")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.RefNo, "IN-"), out.RefNo)
	assert.Len(t, out.RefNo, len("IN-")+8)
	assert.Equal(t, movement.StatusSent, out.Status)

	assert.Equal(t, fields.StreamStockIn, w.stream)
	assert.Equal(t, "INV-001", w.row["Product ID"])
	assert.Equal(t, "1", w.row["Quantity"])
	assert.Equal(t, "somchai", w.row["Receiver"], "la persona por defecto es quien llama")
	assert.Equal(t, "Huawei TH", w.row["Entity"])
	assert.Equal(t, out.RefNo, w.row["Ref No"])

	assert.Equal(t, 1, inv.calls)
	assert.Equal(t, []string{movement.EventSnapshotInvalidated}, bc.events)
}

func TestPost_SalidaConservaRefYPersona(t *testing.T) {
	w := &fakeWriter{}
	uc := movement.NewUseCase(w, nil, nil, nil)

	out, err := uc.Post(context.Background(), dto.PostMovementRequest{
		Direction:   "OUT",
		ProductID:   "CBL-1",
		Quantity:    "25",
		Date:        "2024-01-02",
		ProjectName: "Farm A",
		ProjectType: "Rooftop",
		RefNo:       "OUT-MANUAL",
		Person:      "Dang",
	}, "somchai")
	require.NoError(t, err)
	assert.Equal(t, "OUT-MANUAL", out.RefNo)

	assert.Equal(t, fields.StreamStockOut, w.stream)
	assert.Equal(t, "Dang", w.row["Withdrawer"])
	assert.Equal(t, "Farm A", w.row["Project Name"])
	assert.Equal(t, entity.NonSerial, w.row["Serial Number"])
	assert.Equal(t, "25", w.row["Quantity"])
	_, hasReceiver := w.row["Receiver"]
	assert.False(t, hasReceiver)
}

func TestPost_Validacion(t *testing.T) {
	w := &fakeWriter{}
	uc := movement.NewUseCase(w, nil, nil, nil)

	cases := map[string]dto.PostMovementRequest{
		"dirección inválida": {Direction: "SIDEWAYS", ProductID: "P", Date: "2024-01-01"},
		"producto en blanco": {Direction: "IN", ProductID: "   ", Date: "2024-01-01"},
		"sin fecha":          {Direction: "IN", ProductID: "P"},
		"cantidad no num":    {Direction: "IN", ProductID: "P", Date: "2024-01-01", Quantity: "diez"},
	}
	for name, in := range cases {
		_, err := uc.Post(context.Background(), in, "u")
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
	assert.Zero(t, w.calls)
}

func TestPost_SinWriter(t *testing.T) {
	uc := movement.NewUseCase(nil, nil, nil, nil)
	_, err := uc.Post(context.Background(), dto.PostMovementRequest{Direction: "IN", ProductID: "P", Date: "2024-01-01"}, "u")
	assert.ErrorIs(t, err, domain.ErrWriteRejected)
}

func TestPost_FallaEscrituraNoInvalida(t *testing.T) {
	w := &fakeWriter{err: errors.Join(domain.ErrWriteRejected, errors.New("http 403"))}
	inv := &fakeInvalidator{}
	uc := movement.NewUseCase(w, inv, nil, nil)

	_, err := uc.Post(context.Background(), dto.PostMovementRequest{Direction: "IN", ProductID: "P", Date: "2024-01-01"}, "u")
	assert.ErrorIs(t, err, domain.ErrWriteRejected)
	assert.Zero(t, inv.calls)
}
