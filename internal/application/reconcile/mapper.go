package reconcile

import (
	"strings"

	"github.com/jhoicas/cmi-stock/internal/domain/entity"
	"github.com/jhoicas/cmi-stock/internal/domain/fields"
	"github.com/jhoicas/cmi-stock/internal/domain/normalize"
)

// nonSerialMarkers valores de la columna de serie que significan "sin serie" (normalizados).
var nonSerialMarkers = map[string]struct{}{}

func init() {
	for _, s := range []string{"", "-", "N/A", "NA", "NON-SERIAL", "NONSERIAL", "None", "null", "ไม่มี"} {
		nonSerialMarkers[fields.NormalizeKey(s)] = struct{}{}
	}
}

// Mapper convierte registros semiestructurados en entidades usando un resolver por flujo.
type Mapper struct {
	schemas fields.Schemas
}

// NewMapper construye el mapper. El valor cero de Schemas usa los alias incorporados.
func NewMapper(schemas fields.Schemas) *Mapper {
	if schemas.Products == nil {
		schemas = fields.DefaultSchemas()
	}
	return &Mapper{schemas: schemas}
}

// Products filas del maestro. Las filas sin Product ID se descartan.
func (m *Mapper) Products(recs []fields.Record) []entity.Product {
	r := m.schemas.Products
	out := make([]entity.Product, 0, len(recs))
	for _, rec := range recs {
		id := r.Resolve(rec, fields.ProductID)
		if id == "" {
			continue
		}
		out = append(out, entity.Product{
			ID:       id,
			Category: r.Resolve(rec, fields.Category),
			Brand:    r.Resolve(rec, fields.Brand),
			Model:    r.Resolve(rec, fields.Model),
			Unit:     r.Resolve(rec, fields.Unit),
			MinStock: normalize.Number(r.Resolve(rec, fields.MinStock)),
			Company:  r.Resolve(rec, fields.Company),
			ImageRef: r.Resolve(rec, fields.Image),
		})
	}
	return out
}

// Movements filas de Stock_In (dir IN) o Stock_Out (dir OUT). Sin Product ID la fila no
// se puede imputar a ningún producto y se descarta. Cantidad vacía cuenta como 1.
func (m *Mapper) Movements(recs []fields.Record, dir entity.Direction) []entity.Movement {
	r := m.schemas.StockIn
	if dir == entity.DirectionOUT {
		r = m.schemas.StockOut
	}
	out := make([]entity.Movement, 0, len(recs))
	for _, rec := range recs {
		id := r.Resolve(rec, fields.ProductID)
		if id == "" {
			continue
		}
		mv := entity.Movement{
			Direction: dir,
			ProductID: id,
			Serial:    Serial(r.Resolve(rec, fields.SerialNumber)),
			Model:     r.Resolve(rec, fields.Model),
			Quantity:  normalize.Quantity(r.Resolve(rec, fields.Quantity)),
			Date:      r.Resolve(rec, fields.Date),
			RefNo:     r.Resolve(rec, fields.RefNo),
			Person:    r.Resolve(rec, fields.Person),
		}
		if dir == entity.DirectionIN {
			mv.Entity = r.Resolve(rec, fields.Entity)
		} else {
			mv.ProjectName = r.Resolve(rec, fields.ProjectName)
			mv.ProjectType = r.Resolve(rec, fields.ProjectType)
		}
		out = append(out, mv)
	}
	return out
}

// SalesOrders órdenes de venta; los ítems se decodifican con Items.
func (m *Mapper) SalesOrders(recs []fields.Record) []entity.SalesOrder {
	r := m.schemas.SalesOrders
	out := make([]entity.SalesOrder, 0, len(recs))
	for _, rec := range recs {
		raw := r.Resolve(rec, fields.Items)
		items, ok := m.Items(raw)
		out = append(out, entity.SalesOrder{
			ID:           r.Resolve(rec, fields.OrderID),
			Date:         r.Resolve(rec, fields.Date),
			CustomerID:   r.Resolve(rec, fields.CustomerID),
			ProjectName:  r.Resolve(rec, fields.ProjectName),
			ItemsRaw:     raw,
			Items:        items,
			ItemsValid:   ok,
			GrandTotal:   normalize.Number(r.Resolve(rec, fields.GrandTotal)),
			QuotationRef: r.Resolve(rec, fields.QuotationRef),
			Status:       r.Resolve(rec, fields.Status),
		})
	}
	return out
}

// Quotations cotizaciones con los totales guardados tal cual.
func (m *Mapper) Quotations(recs []fields.Record) []entity.Quotation {
	r := m.schemas.Quotations
	out := make([]entity.Quotation, 0, len(recs))
	for _, rec := range recs {
		items, ok := m.Items(r.Resolve(rec, fields.Items))
		out = append(out, entity.Quotation{
			ID:             r.Resolve(rec, fields.QuotationID),
			Date:           r.Resolve(rec, fields.Date),
			CustomerID:     r.Resolve(rec, fields.CustomerID),
			ProjectName:    r.Resolve(rec, fields.ProjectName),
			Items:          items,
			ItemsValid:     ok,
			StoredSubtotal: normalize.Number(r.Resolve(rec, fields.Subtotal)),
			Discount:       normalize.Number(r.Resolve(rec, fields.Discount)),
			StoredVAT:      normalize.Number(r.Resolve(rec, fields.VAT)),
			StoredTotal:    normalize.Number(r.Resolve(rec, fields.Total)),
		})
	}
	return out
}

// Items decodifica el documento anidado de una celda. Una celda vacía es una lista vacía válida;
// ok=false sólo cuando hay texto que no se pudo interpretar.
func (m *Mapper) Items(raw string) ([]entity.LineItem, bool) {
	if strings.TrimSpace(raw) == "" {
		return []entity.LineItem{}, true
	}
	docs, ok := normalize.Document(raw)
	if !ok {
		return nil, false
	}
	r := m.schemas.Items
	items := make([]entity.LineItem, 0, len(docs))
	for _, d := range docs {
		flat := make(map[string]string, len(d))
		for k, v := range d {
			flat[k] = normalize.Any(v)
		}
		rec := fields.FromMap(flat)
		items = append(items, entity.LineItem{
			ProductID: r.Resolve(rec, fields.ProductID),
			Model:     r.Resolve(rec, fields.Model),
			Quantity:  normalize.Quantity(r.Resolve(rec, fields.Quantity)),
			UnitPrice: normalize.Number(r.Resolve(rec, fields.UnitPrice)),
		})
	}
	return items, true
}

// Serial normaliza la celda de serie: los marcadores de "sin serie" pasan a entity.NonSerial.
func Serial(s string) string {
	s = strings.TrimSpace(s)
	if _, ok := nonSerialMarkers[fields.NormalizeKey(s)]; ok {
		return entity.NonSerial
	}
	return s
}
