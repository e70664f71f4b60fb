package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cmi-stock/internal/domain/entity"
)

// Estados del consumo.
const (
	BurnHealthy  = "Healthy"
	BurnCritical = "Critical"
)

var quarter = decimal.NewFromInt(4)

// BurnRate consumo promedio de un producto sin serie. Es un promedio ingenuo, no un pronóstico.
type BurnRate struct {
	ProductID string
	Model     string
	Unit      string
	Balance   decimal.Decimal
	TotalOut  decimal.Decimal
	DailyRate decimal.Decimal // TotalOut / days
	Status    string          // Critical si Balance < TotalOut / 4 (menos de ~1 semana de consumo)
}

// BurnRates productos sin unidades serializadas que tuvieron movimiento.
func BurnRates(entries []*entity.LedgerEntry, days int) []BurnRate {
	if days <= 0 {
		days = DefaultBurnDays
	}
	window := decimal.NewFromInt(int64(days))
	out := make([]BurnRate, 0)
	for _, e := range entries {
		if e.Serialized() || (e.TotalIn.IsZero() && e.TotalOut.IsZero()) {
			continue
		}
		status := BurnHealthy
		if e.Balance.LessThan(e.TotalOut.Div(quarter)) {
			status = BurnCritical
		}
		out = append(out, BurnRate{
			ProductID: e.Product.ID,
			Model:     e.Product.Model,
			Unit:      e.Product.Unit,
			Balance:   e.Balance,
			TotalOut:  e.TotalOut,
			DailyRate: e.TotalOut.Div(window).Round(2),
			Status:    status,
		})
	}
	return out
}
