// Package analytics deriva indicadores del libro de stock y de los movimientos crudos:
// stock bajo, distribución por categoría, tendencias diaria y mensual, proyectos,
// productos más despachados y consumo de productos sin serie.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cmi-stock/internal/domain/entity"
	"github.com/jhoicas/cmi-stock/internal/domain/ledger"
)

// Valores por defecto de las ventanas.
const (
	DefaultDailyWindow   = 15
	DefaultMonthlyWindow = 6
	DefaultTopMovers     = 5
	DefaultBurnDays      = 30
)

const (
	uncategorized = "Uncategorized"
	unspecified   = "Unspecified"
)

// Options tamaños de ventana; los valores ≤ 0 toman el valor por defecto.
type Options struct {
	DailyWindow   int
	MonthlyWindow int
	TopMovers     int
	BurnDays      int
}

func (o Options) withDefaults() Options {
	if o.DailyWindow <= 0 {
		o.DailyWindow = DefaultDailyWindow
	}
	if o.MonthlyWindow <= 0 {
		o.MonthlyWindow = DefaultMonthlyWindow
	}
	if o.TopMovers <= 0 {
		o.TopMovers = DefaultTopMovers
	}
	if o.BurnDays <= 0 {
		o.BurnDays = DefaultBurnDays
	}
	return o
}

// Bucket par nombre/valor para distribuciones.
type Bucket struct {
	Name  string
	Value decimal.Decimal
}

// Report resultado completo de Aggregate.
type Report struct {
	TotalUnits          decimal.Decimal
	TotalTransactions   int
	LowStockCount       int
	LowStock            []LowStockItem
	StatusCounts        map[entity.StockStatus]int
	Categories          []Bucket
	DailyTrend          []TrendPoint
	MonthlyTrend        []TrendPoint
	ProjectDistribution []Bucket
	TopDeployedItems    []Bucket
	NonSerialStats      []BurnRate
}

// Aggregate calcula todos los indicadores sobre un libro ya armado (con o sin reservas)
// y los movimientos que lo originaron.
func Aggregate(l *ledger.Ledger, ins, outs []entity.Movement, opts Options) Report {
	opts = opts.withDefaults()
	entries := l.Entries()

	total := decimal.Zero
	counts := make(map[entity.StockStatus]int)
	for _, e := range entries {
		total = total.Add(e.Balance)
		counts[e.Status()]++
	}

	low := LowStock(entries)
	return Report{
		TotalUnits:          total,
		TotalTransactions:   len(ins) + len(outs),
		LowStockCount:       len(low),
		LowStock:            low,
		StatusCounts:        counts,
		Categories:          Categories(entries),
		DailyTrend:          DailyTrend(ins, outs, opts.DailyWindow),
		MonthlyTrend:        MonthlyTrend(ins, outs, opts.MonthlyWindow),
		ProjectDistribution: ProjectDistribution(outs),
		TopDeployedItems:    TopMovers(l, outs, opts.TopMovers),
		NonSerialStats:      BurnRates(entries, opts.BurnDays),
	}
}

// LowStockItem producto bajo su stock mínimo.
type LowStockItem struct {
	ProductID string
	Model     string
	Category  string
	Unit      string
	Balance   decimal.Decimal
	MinStock  decimal.Decimal
	Shortage  decimal.Decimal
}

// LowStock productos con MinStock > 0 y Balance < MinStock, de mayor a menor faltante.
func LowStock(entries []*entity.LedgerEntry) []LowStockItem {
	out := make([]LowStockItem, 0)
	for _, e := range entries {
		threshold := e.Product.MinStock
		if !threshold.IsPositive() || !e.Balance.LessThan(threshold) {
			continue
		}
		out = append(out, LowStockItem{
			ProductID: e.Product.ID,
			Model:     e.Product.Model,
			Category:  e.Product.Category,
			Unit:      e.Product.Unit,
			Balance:   e.Balance,
			MinStock:  threshold,
			Shortage:  threshold.Sub(e.Balance),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Shortage.GreaterThan(out[j].Shortage)
	})
	return out
}

// Categories suma de saldos por categoría, de mayor a menor.
func Categories(entries []*entity.LedgerEntry) []Bucket {
	sums := newSums()
	for _, e := range entries {
		name := e.Product.Category
		if name == "" {
			name = uncategorized
		}
		sums.add(name, e.Balance)
	}
	return sums.sorted()
}

// ProjectDistribution cantidades despachadas por tipo de proyecto, de mayor a menor.
func ProjectDistribution(outs []entity.Movement) []Bucket {
	sums := newSums()
	for _, m := range outs {
		name := m.ProjectType
		if name == "" {
			name = unspecified
		}
		sums.add(name, m.Quantity)
	}
	return sums.sorted()
}

// TopMovers modelos más despachados (máximo n). El modelo sale de la fila de salida, del
// maestro de productos o, en último caso, del ProductID.
func TopMovers(l *ledger.Ledger, outs []entity.Movement, n int) []Bucket {
	sums := newSums()
	for _, m := range outs {
		name := m.Model
		if name == "" {
			if e, ok := l.Get(m.ProductID); ok {
				name = e.Product.Model
			}
		}
		if name == "" {
			name = m.ProductID
		}
		if name == "" {
			continue
		}
		sums.add(name, m.Quantity)
	}
	top := sums.sorted()
	if len(top) > n {
		top = top[:n]
	}
	return top
}

// sums acumulador que conserva el orden de primera aparición para desempatar.
type sums struct {
	values map[string]decimal.Decimal
	order  []string
}

func newSums() *sums {
	return &sums{values: make(map[string]decimal.Decimal)}
}

func (s *sums) add(name string, v decimal.Decimal) {
	if _, ok := s.values[name]; !ok {
		s.order = append(s.order, name)
	}
	s.values[name] = s.values[name].Add(v)
}

func (s *sums) sorted() []Bucket {
	out := make([]Bucket, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, Bucket{Name: name, Value: s.values[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value.GreaterThan(out[j].Value)
	})
	return out
}
