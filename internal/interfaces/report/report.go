// Package report salida de consola y CSV del análisis de stock para uso fuera de la API.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cmi-stock/internal/application/reconcile"
	"github.com/jhoicas/cmi-stock/internal/domain/diag"
	"github.com/jhoicas/cmi-stock/internal/domain/entity"
)

const (
	wide   = 120
	narrow = 80
	// maxListed filas de ejemplo por cada hallazgo de validación.
	maxListed = 5
)

// Etiquetas de estado mostradas por producto.
const (
	LabelLow      = "⚠️  ต่ำกว่าขั้นต่ำ"
	LabelOut      = "❌ สต๊อกหมด"
	LabelNegative = "🔴 ผิดปกติ!"
	LabelHealthy  = "✅ ปกติ"
)

var summaryHeader = []string{
	"Product ID", "Category", "Brand", "Model", "Unit",
	"รับเข้า", "จ่ายออก", "คงเหลือ", "Min Stock", "สถานะ", "หมายเหตุ",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Label etiqueta y nota de un estado de stock.
func Label(s entity.StockStatus) (label, note string) {
	switch s {
	case entity.StockLow:
		return LabelLow, "ต้องสั่งเพิ่ม"
	case entity.StockOutOfStock:
		return LabelOut, "ไม่มีสินค้า"
	case entity.StockNegative:
		return LabelNegative, "ออกมากกว่าเข้า"
	default:
		return LabelHealthy, ""
	}
}

// Status estado mostrado en el informe. A diferencia de LedgerEntry.Status, quedar bajo el
// mínimo tiene prioridad sobre agotado o negativo, igual que el informe de consola histórico.
func Status(e *entity.LedgerEntry) entity.StockStatus {
	switch {
	case e.Product.MinStock.IsPositive() && e.Balance.LessThan(e.Product.MinStock):
		return entity.StockLow
	case e.Balance.IsZero():
		return entity.StockOutOfStock
	case e.Balance.IsNegative():
		return entity.StockNegative
	default:
		return entity.StockHealthy
	}
}

// Totals acumulados del resumen general.
type Totals struct {
	Products int
	In       decimal.Decimal
	Out      decimal.Decimal
	Balance  decimal.Decimal
	Healthy  int
	Warning  int // bajo mínimo o agotado
	Critical int // saldo negativo sin umbral incumplido
}

// Summarize totales generales sobre el libro.
func Summarize(res *reconcile.Result) Totals {
	var t Totals
	for _, e := range res.Ledger.Entries() {
		t.Products++
		t.In = t.In.Add(e.TotalIn)
		t.Out = t.Out.Add(e.TotalOut)
		t.Balance = t.Balance.Add(e.Balance)
		switch Status(e) {
		case entity.StockNegative:
			t.Critical++
		case entity.StockLow, entity.StockOutOfStock:
			t.Warning++
		default:
			t.Healthy++
		}
	}
	return t
}

// WriteText informe legible agrupado por categoría, con el resumen general y las validaciones.
func WriteText(w io.Writer, res *reconcile.Result) error {
	p := &printer{w: w}

	p.rule(narrow)
	p.line("📊 กำลังวิเคราะห์ข้อมูลสต๊อก CMI Solar")
	p.rule(narrow)
	p.line("")
	p.line(fmt.Sprintf("✅ อ่านข้อมูลสินค้าทั้งหมด: %d รายการ", res.Ledger.Len()))
	p.line(fmt.Sprintf("✅ อ่านข้อมูลสต๊อกเข้า: %d รายการ", len(res.StockIn)))
	p.line(fmt.Sprintf("✅ อ่านข้อมูลสต๊อกออก: %d รายการ", len(res.StockOut)))
	p.line("")

	p.rule(wide)
	p.line("📋 สรุปยอดสต๊อกคงเหลือ")
	p.rule(wide)

	for _, group := range byCategory(res.Ledger.Entries()) {
		p.line("")
		p.rule(wide)
		p.line("📂 หมวดหมู่: " + group.name)
		p.rule(wide)
		for _, e := range group.entries {
			unit := e.Product.Unit
			p.line("")
			p.line(fmt.Sprintf("%s - %s", e.Product.ID, strings.TrimSpace(e.Product.Brand+" "+e.Product.Model)))
			p.line(fmt.Sprintf("   📥 รับเข้า: %s %s", e.TotalIn, unit))
			p.line(fmt.Sprintf("   📤 จ่ายออก: %s %s", e.TotalOut, unit))
			p.line(fmt.Sprintf("   📊 คงเหลือ: %s %s", e.Balance, unit))
			if e.Product.MinStock.IsPositive() {
				p.line(fmt.Sprintf("   ⚡ สต๊อกขั้นต่ำ: %s %s", e.Product.MinStock, unit))
			}
			label, note := Label(Status(e))
			if note != "" {
				label += " - " + note
			}
			p.line("   " + label)
		}
	}

	t := Summarize(res)
	p.line("")
	p.rule(wide)
	p.line("📊 สรุปภาพรวม")
	p.rule(wide)
	p.line("")
	p.line(fmt.Sprintf("📦 จำนวนสินค้าทั้งหมด: %d รายการ", t.Products))
	p.line(fmt.Sprintf("📥 รับเข้าทั้งหมด: %s ชิ้น", t.In))
	p.line(fmt.Sprintf("📤 จ่ายออกทั้งหมด: %s ชิ้น", t.Out))
	p.line(fmt.Sprintf("📊 คงเหลือรวม: %s ชิ้น", t.Balance))
	p.line("")
	p.line(fmt.Sprintf("✅ สต๊อกปกติ: %d รายการ", t.Healthy))
	p.line(fmt.Sprintf("⚠️  สต๊อกต่ำ/หมด: %d รายการ", t.Warning))
	p.line(fmt.Sprintf("🔴 พบความผิดปกติ: %d รายการ", t.Critical))

	p.line("")
	p.rule(wide)
	p.line("🔍 การตรวจสอบความถูกต้อง")
	p.rule(wide)
	p.line("")
	writeChecks(p, res)
	p.line("")
	p.rule(wide)
	p.line("✅ การวิเคราะห์เสร็จสมบูรณ์")
	p.rule(wide)
	return p.err
}

func writeChecks(p *printer, res *reconcile.Result) {
	var negative []*entity.LedgerEntry
	for _, e := range res.Ledger.Entries() {
		if e.Balance.IsNegative() {
			negative = append(negative, e)
		}
	}
	if len(negative) > 0 {
		p.line("❌ พบปัญหา: มีสินค้าที่จ่ายออกมากกว่ารับเข้า!")
		for _, e := range negative {
			p.line(fmt.Sprintf("   - %s: รับเข้า %s แต่จ่ายออก %s (ติดลบ %s)", e.Product.ID, e.TotalIn, e.TotalOut, e.Balance))
		}
	} else {
		p.line("✅ ไม่พบสต๊อกติดลบ - ข้อมูลถูกต้อง")
	}
	p.line("")

	low := res.Analytics.LowStock
	if len(low) > 0 {
		p.line(fmt.Sprintf("⚠️  พบสินค้าที่ต่ำกว่าสต๊อกขั้นต่ำ: %d รายการ", len(low)))
		for _, it := range low {
			p.line(fmt.Sprintf("   - %s: คงเหลือ %s %s (ต้องเพิ่มอีก %s %s)",
				it.ProductID, it.Balance, it.Unit, it.Shortage.StringFixed(0), it.Unit))
		}
	} else {
		p.line("✅ สต๊อกทุกรายการอยู่ในเกณฑ์ปกติ")
	}
	p.line("")

	p.line("🔍 ตรวจสอบ Serial Number...")
	dupIn := Repeats(res.Diagnostics.OfKind(diag.DuplicateSerial))
	if len(dupIn) > 0 {
		p.line(fmt.Sprintf("⚠️  พบ Serial Number ซ้ำในสต๊อกเข้า: %d รายการ", len(dupIn)))
		for _, r := range head(dupIn) {
			p.line(fmt.Sprintf("   - %s: ปรากฏ %d ครั้ง", r.Serial, r.Count))
		}
	} else {
		p.line("✅ ไม่พบ Serial Number ซ้ำในสต๊อกเข้า")
	}

	dupOut := Repeats(res.Diagnostics.OfKind(diag.RepeatedOut))
	if len(dupOut) > 0 {
		p.line(fmt.Sprintf("⚠️  พบ Serial Number ซ้ำในสต๊อกออก: %d รายการ", len(dupOut)))
		for _, r := range head(dupOut) {
			p.line(fmt.Sprintf("   - %s: ปรากฏ %d ครั้ง", r.Serial, r.Count))
		}
	} else {
		p.line("✅ ไม่พบ Serial Number ซ้ำในสต๊อกออก")
	}
	p.line("")

	dangling := Dangling(res.Diagnostics.OfKind(diag.DanglingOut))
	if len(dangling) > 0 {
		p.line(fmt.Sprintf("⚠️  พบ Serial Number ที่จ่ายออกแต่ไม่มีในระบบรับเข้า: %d รายการ", len(dangling)))
		for _, d := range head(dangling) {
			p.line(fmt.Sprintf("   - %s (%s)", d.Serial, d.ProductID))
		}
		if len(dangling) > maxListed {
			p.line(fmt.Sprintf("   ... และอีก %d รายการ", len(dangling)-maxListed))
		}
	} else {
		p.line("✅ Serial Number ทุกรายการที่จ่ายออกมีในระบบรับเข้า")
	}
}

// Repeat una serie que aparece más de una vez.
type Repeat struct {
	ProductID string
	Serial    string
	Count     int
}

// Repeats agrupa diagnósticos de repetición por (producto, serie). Cada diagnóstico es una
// aparición adicional a la primera.
func Repeats(ds []diag.Diagnostic) []Repeat {
	idx := make(map[[2]string]int)
	var out []Repeat
	for _, d := range ds {
		k := [2]string{d.ProductID, d.Serial}
		if i, ok := idx[k]; ok {
			out[i].Count++
			continue
		}
		idx[k] = len(out)
		out = append(out, Repeat{ProductID: d.ProductID, Serial: d.Serial, Count: 2})
	}
	return out
}

// Dangling salidas sin entrada, una por serie.
func Dangling(ds []diag.Diagnostic) []diag.Diagnostic {
	seen := make(map[string]struct{})
	var out []diag.Diagnostic
	for _, d := range ds {
		if _, ok := seen[d.Serial]; ok {
			continue
		}
		seen[d.Serial] = struct{}{}
		out = append(out, d)
	}
	return out
}

func head[T any](s []T) []T {
	if len(s) > maxListed {
		return s[:maxListed]
	}
	return s
}

// WriteSummaryCSV tabla por producto en UTF-8 con BOM para que Excel detecte la codificación.
func WriteSummaryCSV(w io.Writer, res *reconcile.Result) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("report: bom: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(summaryHeader); err != nil {
		return fmt.Errorf("report: encabezados: %w", err)
	}
	for _, e := range res.Ledger.Entries() {
		minStock := "-"
		if e.Product.MinStock.IsPositive() {
			minStock = e.Product.MinStock.String()
		}
		label, note := Label(Status(e))
		rec := []string{
			e.Product.ID, e.Product.Category, e.Product.Brand, e.Product.Model, e.Product.Unit,
			e.TotalIn.String(), e.TotalOut.String(), e.Balance.String(),
			minStock, label, note,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("report: fila %s: %w", e.Product.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report: flush: %w", err)
	}
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

type categoryGroup struct {
	name    string
	entries []*entity.LedgerEntry
}

// byCategory agrupa en orden de primera aparición.
func byCategory(entries []*entity.LedgerEntry) []categoryGroup {
	idx := make(map[string]int)
	var out []categoryGroup
	for _, e := range entries {
		name := e.Product.Category
		if name == "" {
			name = "Uncategorized"
		}
		i, ok := idx[name]
		if !ok {
			i = len(out)
			idx[name] = i
			out = append(out, categoryGroup{name: name})
		}
		out[i].entries = append(out[i].entries, e)
	}
	return out
}

// printer acumula el primer error de escritura.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}

func (p *printer) rule(n int) {
	p.line(strings.Repeat("=", n))
}
