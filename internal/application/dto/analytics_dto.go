package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cmi-stock/internal/domain/analytics"
)

// BucketDTO par nombre/valor para gráficos de distribución.
type BucketDTO struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// TrendPointDTO entradas y salidas de un período (fecha o año-mes).
type TrendPointDTO struct {
	Period string          `json:"period"`
	In     decimal.Decimal `json:"in"`
	Out    decimal.Decimal `json:"out"`
}

// LowStockDTO producto bajo su stock mínimo.
type LowStockDTO struct {
	ProductID string          `json:"product_id"`
	Model     string          `json:"model"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	Balance   decimal.Decimal `json:"balance"`
	MinStock  decimal.Decimal `json:"min_stock"`
	Shortage  decimal.Decimal `json:"shortage"` // min_stock - balance
}

// BurnRateDTO consumo de un producto sin serie.
type BurnRateDTO struct {
	ProductID string          `json:"product_id"`
	Model     string          `json:"model"`
	Unit      string          `json:"unit"`
	Balance   decimal.Decimal `json:"balance"`
	TotalOut  decimal.Decimal `json:"total_out"`
	DailyRate decimal.Decimal `json:"daily_rate"` // total_out / 30
	Status    string          `json:"status"`     // Healthy | Critical
}

// AnalyticsDTO respuesta de GET /api/analytics.
type AnalyticsDTO struct {
	TotalUnits          decimal.Decimal `json:"total_units"`
	TotalTransactions   int             `json:"total_transactions"`
	LowStockCount       int             `json:"low_stock_count"`
	LowStock            []LowStockDTO   `json:"low_stock"`
	StatusCounts        map[string]int  `json:"status_counts"`
	Categories          []BucketDTO     `json:"categories"`
	DailyTrend          []TrendPointDTO `json:"daily_trend"`   // últimos 15 días con movimiento
	MonthlyTrend        []TrendPointDTO `json:"monthly_trend"` // últimos 6 meses
	ProjectDistribution []BucketDTO     `json:"project_distribution"`
	TopDeployedItems    []BucketDTO     `json:"top_deployed_items"` // top 5 por modelo
	NonSerialStats      []BurnRateDTO   `json:"non_serial_stats"`
}

// AnalyticsFromReport convierte el reporte del dominio.
func AnalyticsFromReport(r analytics.Report) AnalyticsDTO {
	low := make([]LowStockDTO, 0, len(r.LowStock))
	for _, l := range r.LowStock {
		low = append(low, LowStockDTO{
			ProductID: l.ProductID,
			Model:     l.Model,
			Category:  l.Category,
			Unit:      l.Unit,
			Balance:   l.Balance,
			MinStock:  l.MinStock,
			Shortage:  l.Shortage,
		})
	}
	burn := make([]BurnRateDTO, 0, len(r.NonSerialStats))
	for _, b := range r.NonSerialStats {
		burn = append(burn, BurnRateDTO{
			ProductID: b.ProductID,
			Model:     b.Model,
			Unit:      b.Unit,
			Balance:   b.Balance,
			TotalOut:  b.TotalOut,
			DailyRate: b.DailyRate,
			Status:    b.Status,
		})
	}
	counts := make(map[string]int, len(r.StatusCounts))
	for k, v := range r.StatusCounts {
		counts[string(k)] = v
	}
	return AnalyticsDTO{
		TotalUnits:          r.TotalUnits,
		TotalTransactions:   r.TotalTransactions,
		LowStockCount:       r.LowStockCount,
		LowStock:            low,
		StatusCounts:        counts,
		Categories:          buckets(r.Categories),
		DailyTrend:          points(r.DailyTrend),
		MonthlyTrend:        points(r.MonthlyTrend),
		ProjectDistribution: buckets(r.ProjectDistribution),
		TopDeployedItems:    buckets(r.TopDeployedItems),
		NonSerialStats:      burn,
	}
}

func buckets(in []analytics.Bucket) []BucketDTO {
	out := make([]BucketDTO, 0, len(in))
	for _, b := range in {
		out = append(out, BucketDTO{Name: b.Name, Value: b.Value})
	}
	return out
}

func points(in []analytics.TrendPoint) []TrendPointDTO {
	out := make([]TrendPointDTO, 0, len(in))
	for _, p := range in {
		out = append(out, TrendPointDTO{Period: p.Period, In: p.In, Out: p.Out})
	}
	return out
}
