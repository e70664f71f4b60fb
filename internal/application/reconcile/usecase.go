// Package reconcile orquesta el motor: lee una instantánea, la mapea a entidades y calcula
// libro, reservas, analítica y diagnósticos.
package reconcile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/cmi-stock/internal/domain/analytics"
	"github.com/jhoicas/cmi-stock/internal/domain/diag"
	"github.com/jhoicas/cmi-stock/internal/domain/entity"
	"github.com/jhoicas/cmi-stock/internal/domain/finance"
	"github.com/jhoicas/cmi-stock/internal/domain/ledger"
	"github.com/jhoicas/cmi-stock/internal/domain/repository"
	"github.com/jhoicas/cmi-stock/pkg/logger"
)

// Result todo lo derivado de una instantánea. Es inmutable una vez devuelto.
type Result struct {
	Ledger      *ledger.Ledger // con reservas aplicadas
	Analytics   analytics.Report
	StockIn     []entity.Movement
	StockOut    []entity.Movement
	Orders      []entity.SalesOrder
	Quotations  []entity.Quotation
	Diagnostics *diag.Report
	ComputedAt  time.Time
}

// Quotation busca una cotización por ID.
func (r *Result) Quotation(id string) (entity.Quotation, bool) {
	for _, q := range r.Quotations {
		if q.ID == id {
			return q, true
		}
	}
	return entity.Quotation{}, false
}

// Compute ejecuta el motor completo sobre una instantánea. Es puro: no lee ni escribe nada externo.
func Compute(m *Mapper, snap *repository.Snapshot, opts analytics.Options) *Result {
	if snap == nil {
		snap = &repository.Snapshot{}
	}
	report := &diag.Report{}

	products := m.Products(snap.Products)
	ins := m.Movements(snap.StockIn, entity.DirectionIN)
	outs := m.Movements(snap.StockOut, entity.DirectionOUT)
	orders := m.SalesOrders(snap.SalesOrders)
	quotes := m.Quotations(snap.Quotations)

	base := ledger.Build(products, ins, outs, report)
	l := ledger.ApplyReservations(base, orders, report)
	verifyQuotations(quotes, report)

	return &Result{
		Ledger:      l,
		Analytics:   analytics.Aggregate(l, ins, outs, opts),
		StockIn:     ins,
		StockOut:    outs,
		Orders:      orders,
		Quotations:  quotes,
		Diagnostics: report,
		ComputedAt:  time.Now(),
	}
}

// verifyQuotations recalcula cada cotización y compara con el total guardado en la hoja.
func verifyQuotations(quotes []entity.Quotation, report *diag.Report) {
	for _, q := range quotes {
		if !q.ItemsValid {
			report.Add(diag.Diagnostic{Kind: diag.MalformedItems, Ref: q.ID})
			continue
		}
		if len(q.Items) == 0 {
			continue
		}
		s := finance.Summarize(q.Items, q.Discount)
		if !finance.Matches(q.StoredTotal, s.Total) {
			report.Add(diag.Diagnostic{
				Kind:   diag.QuotationMismatch,
				Ref:    q.ID,
				Detail: fmt.Sprintf("stored %s / computed %s", q.StoredTotal.String(), s.Total.String()),
			})
		}
	}
}

// UseCase lee la instantánea desde la fuente y memoiza el resultado durante ttl.
// Invalidate descarta el resultado para que la próxima lectura vuelva a la fuente.
type UseCase struct {
	source repository.SnapshotRepository
	mapper *Mapper
	opts   analytics.Options
	ttl    time.Duration
	log    *logger.Logger

	mu     sync.Mutex
	cached *Result
}

// NewUseCase construye el caso de uso. ttl ≤ 0 desactiva la memoización.
func NewUseCase(source repository.SnapshotRepository, mapper *Mapper, opts analytics.Options, ttl time.Duration, log *logger.Logger) *UseCase {
	return &UseCase{source: source, mapper: mapper, opts: opts, ttl: ttl, log: log}
}

// Run devuelve el resultado vigente, recalculándolo si expiró o fue invalidado.
func (uc *UseCase) Run(ctx context.Context) (*Result, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.cached != nil && uc.ttl > 0 && time.Since(uc.cached.ComputedAt) < uc.ttl {
		return uc.cached, nil
	}

	snap, err := uc.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("reconcile: leer instantánea: %w", err)
	}
	res := Compute(uc.mapper, snap, uc.opts)
	uc.logDiagnostics(res)
	uc.cached = res
	return res, nil
}

// Invalidate descarta el resultado memoizado.
func (uc *UseCase) Invalidate() {
	uc.mu.Lock()
	uc.cached = nil
	uc.mu.Unlock()
}

func (uc *UseCase) logDiagnostics(res *Result) {
	if uc.log == nil {
		return
	}
	uc.log.Info().
		Int("products", res.Ledger.Len()).
		Int("stock_in", len(res.StockIn)).
		Int("stock_out", len(res.StockOut)).
		Int("orders", len(res.Orders)).
		Int("diagnostics", res.Diagnostics.Len()).
		Msg("instantánea recalculada")
	for kind, n := range res.Diagnostics.Counts() {
		uc.log.Warn().Str("kind", string(kind)).Int("count", n).Msg("diagnósticos del motor")
	}
	for _, d := range res.Diagnostics.Items() {
		uc.log.Debug().
			Str("kind", string(d.Kind)).
			Str("product_id", d.ProductID).
			Str("serial", d.Serial).
			Str("ref", d.Ref).
			Msg(d.Detail)
	}
}
