package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cmi-stock/internal/domain/entity"
	"github.com/jhoicas/cmi-stock/internal/domain/normalize"
)

// TrendPoint cantidades de entrada y salida en un período.
type TrendPoint struct {
	Period string
	In     decimal.Decimal
	Out    decimal.Decimal
}

type trendBucket struct {
	point TrendPoint
	at    time.Time
	ok    bool
}

// DailyTrend agrupa por el texto exacto de la fecha, ordena cronológicamente y conserva los
// últimos window períodos. Fechas ilegibles se ordenan como las más antiguas.
func DailyTrend(ins, outs []entity.Movement, window int) []TrendPoint {
	return trend(ins, outs, window, func(date string) (string, time.Time, bool) {
		key := strings.TrimSpace(date)
		if key == "" {
			return "", time.Time{}, false
		}
		at, ok := normalize.ParseDate(key)
		return key, at, ok
	})
}

// MonthlyTrend agrupa por año-mes (2006-01) y conserva los últimos window meses.
// Las filas con fecha ilegible no participan.
func MonthlyTrend(ins, outs []entity.Movement, window int) []TrendPoint {
	return trend(ins, outs, window, func(date string) (string, time.Time, bool) {
		at, ok := normalize.ParseDate(date)
		if !ok {
			return "", time.Time{}, false
		}
		month := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC)
		return month.Format("2006-01"), month, true
	})
}

func trend(ins, outs []entity.Movement, window int, keyOf func(string) (string, time.Time, bool)) []TrendPoint {
	buckets := make(map[string]*trendBucket)
	add := func(m entity.Movement) {
		key, at, ok := keyOf(m.Date)
		if key == "" {
			return
		}
		b, exists := buckets[key]
		if !exists {
			b = &trendBucket{point: TrendPoint{Period: key}, at: at, ok: ok}
			buckets[key] = b
		}
		if m.Direction == entity.DirectionIN {
			b.point.In = b.point.In.Add(m.Quantity)
		} else {
			b.point.Out = b.point.Out.Add(m.Quantity)
		}
	}
	for _, m := range ins {
		m.Direction = entity.DirectionIN
		add(m)
	}
	for _, m := range outs {
		m.Direction = entity.DirectionOUT
		add(m)
	}

	list := make([]*trendBucket, 0, len(buckets))
	for _, b := range buckets {
		list = append(list, b)
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.ok != b.ok {
			return !a.ok
		}
		if !a.at.Equal(b.at) {
			return a.at.Before(b.at)
		}
		return a.point.Period < b.point.Period
	})
	if window > 0 && len(list) > window {
		list = list[len(list)-window:]
	}
	out := make([]TrendPoint, len(list))
	for i, b := range list {
		out[i] = b.point
	}
	return out
}
