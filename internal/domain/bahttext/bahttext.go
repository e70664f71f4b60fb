// Package bahttext escribe montos en baht con palabras, según la convención tailandesa
// de grupos de seis dígitos unidos por "ล้าน".
package bahttext

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// Zero frase fija para un monto exactamente cero.
	Zero = "ศูนย์บาทถ้วน"

	baht     = "บาท"
	satang   = "สตางค์"
	exact    = "ถ้วน"
	million  = "ล้าน"
	minus    = "ลบ"
	one      = "เอ็ด"
	twoTens  = "ยี่"
	groupLen = 6
)

var (
	digits    = [...]string{"", "หนึ่ง", "สอง", "สาม", "สี่", "ห้า", "หก", "เจ็ด", "แปด", "เก้า"}
	positions = [...]string{"", "สิบ", "ร้อย", "พัน", "หมื่น", "แสน"}
	hundred   = decimal.NewFromInt(100)
)

// Format convierte un monto en texto, redondeado a satang (2 decimales).
// Montos negativos llevan el prefijo "ลบ".
func Format(amount decimal.Decimal) string {
	amount = amount.Round(2)
	if amount.IsZero() {
		return Zero
	}
	prefix := ""
	if amount.IsNegative() {
		prefix = minus
		amount = amount.Neg()
	}

	intPart := amount.Truncate(0)
	fracPart := amount.Sub(intPart).Mul(hundred).Round(0)

	var b strings.Builder
	b.WriteString(prefix)
	if intPart.IsPositive() {
		b.WriteString(readNumber(intPart.String()))
		b.WriteString(baht)
	}
	if fracPart.IsZero() {
		b.WriteString(exact)
	} else {
		b.WriteString(readNumber(fracPart.String()))
		b.WriteString(satang)
	}
	return b.String()
}

// readNumber lee un entero decimal sin signo de cualquier longitud.
func readNumber(s string) string {
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return ""
	}
	// grupos de 6 dígitos desde la derecha
	var groups []string
	for len(s) > groupLen {
		groups = append([]string{s[len(s)-groupLen:]}, groups...)
		s = s[:len(s)-groupLen]
	}
	groups = append([]string{s}, groups...)

	var b strings.Builder
	for i, g := range groups {
		b.WriteString(readGroup(g, i > 0 && hasNonZero(groups[:i])))
		if i < len(groups)-1 {
			b.WriteString(million)
		}
	}
	return b.String()
}

// readGroup lee hasta seis dígitos. higher indica que hay dígitos distintos de cero a la
// izquierda del grupo, lo que convierte un "1" final en "เอ็ด".
func readGroup(g string, higher bool) string {
	var b strings.Builder
	n := len(g)
	seen := higher
	for i, c := range g {
		d := int(c - '0')
		pos := n - i - 1
		if d == 0 {
			continue
		}
		switch {
		case pos == 0 && d == 1 && seen:
			b.WriteString(one)
		case pos == 1 && d == 1:
			b.WriteString(positions[1])
		case pos == 1 && d == 2:
			b.WriteString(twoTens + positions[1])
		default:
			b.WriteString(digits[d] + positions[pos])
		}
		seen = true
	}
	return b.String()
}

func hasNonZero(groups []string) bool {
	for _, g := range groups {
		if strings.Trim(g, "0") != "" {
			return true
		}
	}
	return false
}
