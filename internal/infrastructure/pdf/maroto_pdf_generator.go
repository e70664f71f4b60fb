// Package pdf genera la representación gráfica de una cotización.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa             │  N° Cotización + Fecha       │
//	│  CLIENTE: Customer ID + Proyecto                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Producto | Cant | P.Unit | Importe               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / Total (IVA incluido)        │
//	│  Neto + IVA 7% (informativos) / monto en letras              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
	"github.com/shopspring/decimal"

	appquotation "github.com/jhoicas/cmi-stock/internal/application/quotation"
	"github.com/jhoicas/cmi-stock/internal/domain/entity"
	"github.com/jhoicas/cmi-stock/internal/domain/finance"
)

var _ appquotation.PDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const customFamily = "thai"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa quotation.PDFGenerator usando Maroto v2.
// Sin fuente TTF las fuentes base no cubren el tailandés y el monto en letras se omite.
type MarotoPDFGenerator struct {
	company  string
	fontPath string
}

// NewMarotoPDFGenerator construye el generador. fontPath es opcional (TTF con glifos tailandeses).
func NewMarotoPDFGenerator(company, fontPath string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company, fontPath: fontPath}
}

// GenerateQuotationPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateQuotationPDF(_ context.Context, q entity.Quotation, s finance.Summary) ([]byte, error) {
	family := "helvetica"
	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithTitle("Quotation "+q.ID, true).
		WithAuthor(g.company, true)

	if g.fontPath != "" {
		fonts, err := repository.New().
			AddUTF8Font(customFamily, fontstyle.Normal, g.fontPath).
			AddUTF8Font(customFamily, fontstyle.Bold, g.fontPath).
			Load()
		if err != nil {
			return nil, fmt.Errorf("pdf: cargar fuente: %w", err)
		}
		b = b.WithCustomFonts(fonts)
		family = customFamily
	}
	cfg := b.WithDefaultFont(&props.Font{Family: family, Size: 9}).Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.company, q))
	m.AddRows(customerRow(q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(q.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(s))
	m.AddRows(vatRow(s))
	if family == customFamily {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("("+s.TotalText+")", props.Text{Size: 9, Align: align.Right, Top: 2, Color: colorGray}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(company string, q entity.Quotation) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(company, "-"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("QUOTATION", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(q.ID, "-"), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+nonEmpty(q.Date, "-"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func customerRow(q entity.Quotation) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CUSTOMER", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%s   |   Project: %s", nonEmpty(q.CustomerID, "-"), nonEmpty(q.ProjectName, "-")),
				props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Product", 5, align.Left),
		h("Qty", 1, align.Center),
		h("Unit price", 2, align.Right),
		h("Amount", 3, align.Right),
	)
}

func tableDetailRows(items []entity.LineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i, it := range items {
		name := it.Model
		if name == "" {
			name = it.ProductID
		} else if it.ProductID != "" {
			name = it.ProductID + " " + name
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(it.Quantity.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatMoney(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(formatMoney(finance.LineTotal(it)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(s finance.Summary) core.Row {
	label := func(v string, top float64) core.Component {
		return text.New(v, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(v string, top float64) core.Component {
		return text.New(v, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 1),
			label("Discount:", 7),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 13}),
		),
		col.New(3).Add(
			value(formatMoney(s.Subtotal), 1),
			value(formatMoney(s.Discount), 7),
			text.New(formatMoney(s.Total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 13}),
		),
	)
}

// vatRow descomposición informativa del IVA incluido.
func vatRow(s finance.Summary) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(fmt.Sprintf("VAT 7%% included: net %s / vat %s", formatMoney(s.Net), formatMoney(s.VAT)),
			props.Text{Size: 7, Align: align.Right, Color: colorGray, Top: 1}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney dos decimales con comas de miles. Ej: 1234567.5 → "1,234,567.50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}
