package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cmi-stock/internal/domain/diag"
	"github.com/jhoicas/cmi-stock/internal/domain/entity"
	"github.com/jhoicas/cmi-stock/internal/domain/ledger"
)

var one = decimal.NewFromInt(1)

func in(productID, serial string, qty int64) entity.Movement {
	return entity.Movement{Direction: entity.DirectionIN, ProductID: productID, Serial: serial, Quantity: decimal.NewFromInt(qty), Date: "2024-01-01"}
}

func out(productID, serial string, qty int64) entity.Movement {
	return entity.Movement{Direction: entity.DirectionOUT, ProductID: productID, Serial: serial, Quantity: decimal.NewFromInt(qty), Date: "2024-01-05", ProjectName: "Farm A"}
}

func scenarioA(report *diag.Report) *ledger.Ledger {
	products := []entity.Product{{ID: "INV-001", Model: "Inverter 5kW", MinStock: decimal.Zero}}
	ins := []entity.Movement{in("INV-001", "S1", 1), in("INV-001", "S2", 1)}
	outs := []entity.Movement{out("INV-001", "S1", 1)}
	return ledger.Build(products, ins, outs, report)
}

func TestBuild_EscenarioA(t *testing.T) {
	report := &diag.Report{}
	l := scenarioA(report)

	e, ok := l.Get("INV-001")
	require.True(t, ok)
	assert.True(t, e.TotalIn.Equal(decimal.NewFromInt(2)))
	assert.True(t, e.TotalOut.Equal(one))
	assert.True(t, e.Balance.Equal(one))
	assert.True(t, e.AvailableBalance.Equal(e.Balance))
	assert.True(t, e.Known)

	require.Len(t, e.Units, 2)
	assert.Equal(t, "S1", e.Units[0].Serial)
	assert.Equal(t, entity.UnitDeployed, e.Units[0].Status)
	assert.Equal(t, "Farm A", e.Units[0].Location())
	assert.Equal(t, "S2", e.Units[1].Serial)
	assert.Equal(t, entity.UnitInStock, e.Units[1].Status)
	assert.Equal(t, "Main Warehouse", e.Units[1].Location())
	assert.Equal(t, "Inverter 5kW", e.Units[1].Model)

	assert.Zero(t, report.Len())
}

func TestBuild_SinSerieSoloCantidad(t *testing.T) {
	products := []entity.Product{{ID: "CBL-1", Unit: "m"}}
	ins := []entity.Movement{in("CBL-1", entity.NonSerial, 100), in("CBL-1", entity.NonSerial, 50)}
	outs := []entity.Movement{out("CBL-1", entity.NonSerial, 30)}
	l := ledger.Build(products, ins, outs, nil)

	e, _ := l.Get("CBL-1")
	assert.True(t, e.Balance.Equal(decimal.NewFromInt(120)))
	assert.Empty(t, e.Units)
	assert.False(t, e.Serialized())
}

func TestBuild_SalidaSinEntrada(t *testing.T) {
	report := &diag.Report{}
	products := []entity.Product{{ID: "INV-001"}}
	outs := []entity.Movement{out("INV-001", "GHOST", 1)}
	l := ledger.Build(products, nil, outs, report)

	e, _ := l.Get("INV-001")
	assert.Empty(t, e.Units, "la salida sin entrada no crea unidad")
	assert.True(t, e.TotalOut.Equal(one), "pero sí cuenta en el total")
	assert.True(t, e.Balance.Equal(one.Neg()))
	assert.Equal(t, entity.StockNegative, e.Status())

	require.Equal(t, 1, report.Count(diag.DanglingOut))
	d := report.OfKind(diag.DanglingOut)[0]
	assert.Equal(t, "GHOST", d.Serial)
	assert.Equal(t, 1, report.Count(diag.NegativeBalance))
}

func TestBuild_SerieDuplicadaGanaLaUltima(t *testing.T) {
	report := &diag.Report{}
	products := []entity.Product{{ID: "INV-001"}}
	first := in("INV-001", "S1", 1)
	first.RefNo = "IN-A"
	second := in("INV-001", "S1", 1)
	second.RefNo = "IN-B"
	l := ledger.Build(products, []entity.Movement{first, second}, nil, report)

	e, _ := l.Get("INV-001")
	require.Len(t, e.Units, 1)
	assert.Equal(t, "IN-B", e.Units[0].InRef)
	assert.True(t, e.TotalIn.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, 1, report.Count(diag.DuplicateSerial))
}

func TestBuild_SalidaRepetida(t *testing.T) {
	report := &diag.Report{}
	products := []entity.Product{{ID: "INV-001"}}
	l := ledger.Build(products,
		[]entity.Movement{in("INV-001", "S1", 1)},
		[]entity.Movement{out("INV-001", "S1", 1), out("INV-001", "S1", 1)},
		report)

	e, _ := l.Get("INV-001")
	assert.Equal(t, entity.UnitDeployed, e.Units[0].Status)
	assert.Equal(t, 1, report.Count(diag.RepeatedOut))
}

func TestBuild_ProductoDesconocido(t *testing.T) {
	report := &diag.Report{}
	l := ledger.Build(nil, []entity.Movement{in("INV-404", "S9", 1)}, nil, report)

	e, ok := l.Get("INV-404")
	require.True(t, ok)
	assert.False(t, e.Known)
	assert.Equal(t, 1, report.Count(diag.UnknownProduct))
}

func TestBuild_OrdenEstable(t *testing.T) {
	products := []entity.Product{{ID: "B"}, {ID: "A"}, {ID: "B"}}
	l := ledger.Build(products, []entity.Movement{in("Z", entity.NonSerial, 1)}, nil, nil)

	var ids []string
	for _, e := range l.Entries() {
		ids = append(ids, e.Product.ID)
	}
	assert.Equal(t, []string{"B", "A", "Z"}, ids)
}

// balance = totalIn − totalOut para todo producto.
func TestBuild_InvarianteBalance(t *testing.T) {
	products := []entity.Product{{ID: "P1"}, {ID: "P2"}}
	ins := []entity.Movement{in("P1", "a", 1), in("P1", entity.NonSerial, 3), in("P2", entity.NonSerial, 2)}
	outs := []entity.Movement{out("P1", "a", 1), out("P2", entity.NonSerial, 5), out("P1", "zz", 1)}
	l := ledger.Build(products, ins, outs, nil)
	for _, e := range l.Entries() {
		assert.True(t, e.Balance.Equal(e.TotalIn.Sub(e.TotalOut)), e.Product.ID)
	}
}

func TestApplyReservations_EscenarioD(t *testing.T) {
	base := scenarioA(nil)
	orders := []entity.SalesOrder{{
		ID:         "SO-1",
		Status:     "Reserved",
		ItemsValid: true,
		Items:      []entity.LineItem{{ProductID: "INV-001", Quantity: one}},
	}}
	l := ledger.ApplyReservations(base, orders, nil)

	e, _ := l.Get("INV-001")
	assert.True(t, e.ReservedQuantity.Equal(one))
	assert.True(t, e.AvailableBalance.IsZero())

	// el libro base no se modifica
	b, _ := base.Get("INV-001")
	assert.True(t, b.ReservedQuantity.IsZero())
	assert.True(t, b.AvailableBalance.Equal(one))
}

func TestApplyReservations_SoloEstadosReservados(t *testing.T) {
	base := scenarioA(nil)
	item := []entity.LineItem{{ProductID: "INV-001", Quantity: one}}
	orders := []entity.SalesOrder{
		{ID: "SO-1", Status: " pending ", ItemsValid: true, Items: item},
		{ID: "SO-2", Status: "CONFIRMED", ItemsValid: true, Items: item},
		{ID: "SO-3", Status: "Delivered", ItemsValid: true, Items: item},
		{ID: "SO-4", Status: "จอง", ItemsValid: true, Items: item},
		{ID: "SO-5", Status: "Cancelled", ItemsValid: true, Items: item},
	}
	l := ledger.ApplyReservations(base, orders, nil)
	e, _ := l.Get("INV-001")
	assert.True(t, e.ReservedQuantity.Equal(decimal.NewFromInt(3)))
}

func TestApplyReservations_SobreReservaNoSeRecorta(t *testing.T) {
	report := &diag.Report{}
	base := scenarioA(nil)
	orders := []entity.SalesOrder{{
		ID: "SO-9", Status: "Reserved", ItemsValid: true,
		Items: []entity.LineItem{{ProductID: "INV-001", Quantity: decimal.NewFromInt(4)}},
	}}
	l := ledger.ApplyReservations(base, orders, report)
	e, _ := l.Get("INV-001")
	assert.True(t, e.AvailableBalance.Equal(decimal.NewFromInt(-3)))
	assert.Equal(t, 1, report.Count(diag.OverReserved))
}

func TestApplyReservations_ItemsIlegiblesNoAfectanOtras(t *testing.T) {
	report := &diag.Report{}
	base := scenarioA(nil)
	orders := []entity.SalesOrder{
		{ID: "SO-BAD", Status: "Reserved", ItemsValid: false, ItemsRaw: "{oops"},
		{ID: "SO-OK", Status: "Reserved", ItemsValid: true, Items: []entity.LineItem{{ProductID: "INV-001", Quantity: one}}},
	}
	l := ledger.ApplyReservations(base, orders, report)
	e, _ := l.Get("INV-001")
	assert.True(t, e.ReservedQuantity.Equal(one))
	require.Equal(t, 1, report.Count(diag.MalformedItems))
	assert.Equal(t, "SO-BAD", report.OfKind(diag.MalformedItems)[0].Ref)
}

func TestIsReservedStatus(t *testing.T) {
	assert.True(t, ledger.IsReservedStatus("Reserved"))
	assert.True(t, ledger.IsReservedStatus("reserved"))
	assert.True(t, ledger.IsReservedStatus("ยืนยันแล้ว"))
	assert.False(t, ledger.IsReservedStatus(""))
	assert.False(t, ledger.IsReservedStatus("Completed"))
}
