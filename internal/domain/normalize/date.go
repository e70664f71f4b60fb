package normalize

import (
	"strconv"
	"strings"
	"time"
)

// buddhistEraOffset diferencia entre el año de la era budista y el gregoriano.
const buddhistEraOffset = 543

// DateLayout formato canónico de fechas normalizadas.
const DateLayout = "2006-01-02"

var nativeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	DateLayout,
	"Jan 2, 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"January 2, 2006",
	time.RFC1123,
}

// ParseDate interpreta fechas ISO, d/m/a, m/d/a (cuando el día > 12) y años budistas (> 2500).
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range nativeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return fixEra(t), true
		}
	}
	return parseParts(leadingToken(s))
}

// Date devuelve la fecha en formato 2006-01-02 o, si no se puede interpretar, el primer token
// del texto original.
func Date(s string) string {
	if t, ok := ParseDate(s); ok {
		return t.Format(DateLayout)
	}
	return leadingToken(strings.TrimSpace(s))
}

// Month devuelve "2006-01" para la fecha o "" si no se puede interpretar.
func Month(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return ""
	}
	return t.Format("2006-01")
}

func leadingToken(s string) string {
	if i := strings.IndexAny(s, " T"); i > 0 {
		return s[:i]
	}
	return s
}

func fixEra(t time.Time) time.Time {
	if t.Year() > 2500 {
		return t.AddDate(-buddhistEraOffset, 0, 0)
	}
	return t
}

func parseParts(s string) (time.Time, bool) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == '-' || r == '.'
	})
	if len(parts) != 3 {
		return time.Time{}, false
	}
	n := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return time.Time{}, false
		}
		n[i] = v
	}

	var day, month, year int
	if len(parts[0]) == 4 {
		year, month, day = n[0], n[1], n[2]
	} else {
		year = n[2]
		switch {
		case n[0] > 12 && n[1] <= 12:
			day, month = n[0], n[1]
		case n[1] > 12 && n[0] <= 12:
			month, day = n[0], n[1]
		default:
			// ambos ≤ 12: convención local día/mes
			day, month = n[0], n[1]
		}
	}
	if year < 100 {
		year += 2000
	}
	if year > 2500 {
		year -= buddhistEraOffset
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return time.Time{}, false // 31/02 y similares
	}
	return t, true
}
