package reconcile_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cmi-stock/internal/application/reconcile"
	"github.com/jhoicas/cmi-stock/internal/domain"
	"github.com/jhoicas/cmi-stock/internal/domain/analytics"
	"github.com/jhoicas/cmi-stock/internal/domain/diag"
	"github.com/jhoicas/cmi-stock/internal/domain/entity"
	"github.com/jhoicas/cmi-stock/internal/domain/fields"
	"github.com/jhoicas/cmi-stock/internal/domain/repository"
	"github.com/jhoicas/cmi-stock/pkg/logger"
)

type fakeSource struct {
	snap  *repository.Snapshot
	err   error
	calls int
}

func (f *fakeSource) Fetch(context.Context) (*repository.Snapshot, error) {
	f.calls++
	return f.snap, f.err
}

var (
	hProducts = []string{"Product ID", "Category", "Model", "Min Stock"}
	hIn       = []string{"Product ID", "Serial Number", "Date"}
	hOut      = []string{"Product ID", "Serial Number", "Date", "Project Name"}
	hSO       = []string{"SO ID", "Items", "Status"}
	hQT       = []string{"QT ID", "Items", "Discount", "Total"}
)

func sampleSnapshot() *repository.Snapshot {
	return &repository.Snapshot{
		Products: []fields.Record{rec(hProducts, "INV-001", "Inverter", "SUN2000", "3")},
		StockIn: []fields.Record{
			rec(hIn, "INV-001", "S1", "2024-01-01"),
			rec(hIn, "INV-001", "S2", "2024-01-01"),
		},
		StockOut: []fields.Record{
			rec(hOut, "INV-001", "S1", "2024-01-05", "Farm A"),
			rec(hOut, "INV-001", "S404", "2024-01-06", "Farm B"),
		},
		SalesOrders: []fields.Record{
			rec(hSO, "SO-1", `[{"productId":"INV-001","qty":1}]`, "Reserved"),
			rec(hSO, "SO-2", `{garbage`, "Reserved"),
		},
		Quotations: []fields.Record{
			rec(hQT, "QT-1", `[{"qty":2,"price":1000}]`, "200", "1800"),
			rec(hQT, "QT-2", `[{"qty":1,"price":500}]`, "0", "999"),
			rec(hQT, "QT-3", ``, "0", "0"),
		},
	}
}

func TestCompute_PipelineCompleto(t *testing.T) {
	res := reconcile.Compute(reconcile.NewMapper(fields.DefaultSchemas()), sampleSnapshot(), analytics.Options{})

	e, ok := res.Ledger.Get("INV-001")
	require.True(t, ok)
	assert.True(t, e.TotalIn.Equal(decimal.NewFromInt(2)))
	assert.True(t, e.TotalOut.Equal(decimal.NewFromInt(2)), "la salida huérfana cuenta en el total")
	assert.True(t, e.Balance.IsZero())
	assert.True(t, e.ReservedQuantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, e.AvailableBalance.Equal(decimal.NewFromInt(-1)))
	require.Len(t, e.Units, 2, "la salida huérfana no crea unidad")

	counts := res.Diagnostics.Counts()
	assert.Equal(t, 1, counts[diag.DanglingOut])
	assert.Equal(t, 1, counts[diag.MalformedItems])
	assert.Equal(t, 1, counts[diag.OverReserved])
	assert.Equal(t, 1, counts[diag.QuotationMismatch])
	assert.Equal(t, "QT-2", res.Diagnostics.OfKind(diag.QuotationMismatch)[0].Ref)

	assert.Equal(t, 1, res.Analytics.LowStockCount)
	assert.Len(t, res.StockOut, 2)

	q, ok := res.Quotation("QT-1")
	require.True(t, ok)
	assert.True(t, q.StoredTotal.Equal(decimal.NewFromInt(1800)))
	_, ok = res.Quotation("QT-404")
	assert.False(t, ok)
}

func TestCompute_InstantaneaNil(t *testing.T) {
	res := reconcile.Compute(reconcile.NewMapper(fields.Schemas{}), nil, analytics.Options{})
	assert.Zero(t, res.Ledger.Len())
	assert.Zero(t, res.Diagnostics.Len())
	assert.True(t, res.Analytics.TotalUnits.IsZero())
}

// Mismo snapshot → mismo resultado.
func TestCompute_Determinista(t *testing.T) {
	m := reconcile.NewMapper(fields.DefaultSchemas())
	a := reconcile.Compute(m, sampleSnapshot(), analytics.Options{})
	b := reconcile.Compute(m, sampleSnapshot(), analytics.Options{})
	assert.Equal(t, a.Ledger.Entries(), b.Ledger.Entries())
	assert.Equal(t, a.Diagnostics.Items(), b.Diagnostics.Items())
	assert.Equal(t, a.Analytics, b.Analytics)
}

func TestUseCase_Memoiza(t *testing.T) {
	src := &fakeSource{snap: sampleSnapshot()}
	uc := reconcile.NewUseCase(src, reconcile.NewMapper(fields.DefaultSchemas()), analytics.Options{}, time.Minute, logger.Nop())

	a, err := uc.Run(context.Background())
	require.NoError(t, err)
	b, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, src.calls)

	uc.Invalidate()
	c, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, src.calls)
}

func TestUseCase_SinTTLSiempreLee(t *testing.T) {
	src := &fakeSource{snap: sampleSnapshot()}
	uc := reconcile.NewUseCase(src, reconcile.NewMapper(fields.DefaultSchemas()), analytics.Options{}, 0, nil)
	for i := 0; i < 3; i++ {
		_, err := uc.Run(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 3, src.calls)
}

func TestUseCase_ErrorDeFuente(t *testing.T) {
	src := &fakeSource{err: domain.ErrSourceUnavailable}
	uc := reconcile.NewUseCase(src, reconcile.NewMapper(fields.DefaultSchemas()), analytics.Options{}, time.Minute, logger.Nop())
	_, err := uc.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSourceUnavailable))
}

func TestUnitLocation(t *testing.T) {
	res := reconcile.Compute(reconcile.NewMapper(fields.DefaultSchemas()), sampleSnapshot(), analytics.Options{})
	units := res.Ledger.Units()
	require.Len(t, units, 2)
	assert.Equal(t, entity.UnitDeployed, units[0].Status)
	assert.Equal(t, "Farm A", units[0].Location())
	assert.Equal(t, "Main Warehouse", units[1].Location())
}
