package fields_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cmi-stock/internal/domain/fields"
)

func TestNormalizeKey(t *testing.T) {
	for _, in := range []string{"Product ID", "product_id", "PRODUCT-ID", " ProductID "} {
		assert.Equal(t, "productid", fields.NormalizeKey(in), in)
	}
	// las marcas combinantes del tailandés se conservan
	assert.Equal(t, "รหัสสินค้า", fields.NormalizeKey("รหัส สินค้า"))
	// ancho completo → ancho normal
	assert.Equal(t, "sn", fields.NormalizeKey("Ｓ/Ｎ"))
}

func TestResolver_AliasGanaSobrePatron(t *testing.T) {
	r := fields.DefaultSchemas().StockIn
	rec := fields.NewRecord(
		[]string{"Note", "Product ID", "Serial Number"},
		[]string{"INV-999", "INV-001", "S1"},
	)
	v, tier := r.Lookup(rec, fields.ProductID)
	assert.Equal(t, "INV-001", v)
	assert.Equal(t, fields.TierAlias, tier)
}

func TestResolver_PatronCuandoNoHayAlias(t *testing.T) {
	r := fields.DefaultSchemas().StockIn
	rec := fields.NewRecord([]string{"a", "b"}, []string{"hello", "INV-042"})
	v, tier := r.Lookup(rec, fields.ProductID)
	assert.Equal(t, "INV-042", v)
	assert.Equal(t, fields.TierPattern, tier)
}

func TestResolver_PosicionHeredada(t *testing.T) {
	r := fields.DefaultSchemas().SalesOrders
	// encabezados basura: sólo se puede resolver por posición
	rec := fields.NewRecord(
		[]string{"c0", "c1", "c2", "c3", "c4", "c5", "c6", "c7"},
		[]string{"X1", "x", "y", "Solar Farm", "z", "5000", "-", "whatever"},
	)
	v, tier := r.Lookup(rec, fields.ProjectName)
	assert.Equal(t, "Solar Farm", v)
	assert.Equal(t, fields.TierPosition, tier)

	v, tier = r.Lookup(rec, fields.GrandTotal)
	assert.Equal(t, "5000", v)
	assert.Equal(t, fields.TierPosition, tier)
}

func TestResolver_AliasVacioCaeAlSiguiente(t *testing.T) {
	r := fields.DefaultSchemas().Products
	rec := fields.NewRecord([]string{"Product ID", "ID"}, []string{"  ", "INV-7"})
	assert.Equal(t, "INV-7", r.Resolve(rec, fields.ProductID))
}

func TestResolver_OrdenDeColumnasIrrelevante(t *testing.T) {
	r := fields.DefaultSchemas().StockOut
	a := fields.NewRecord(
		[]string{"Product ID", "Serial Number", "Project Name", "Date"},
		[]string{"INV-001", "S1", "Farm A", "2024-01-02"},
	)
	b := fields.NewRecord(
		[]string{"Date", "Project Name", "Serial Number", "Product ID"},
		[]string{"2024-01-02", "Farm A", "S1", "INV-001"},
	)
	for _, f := range []fields.Field{fields.ProductID, fields.SerialNumber, fields.ProjectName, fields.Date} {
		assert.Equal(t, r.Resolve(a, f), r.Resolve(b, f), f)
	}
}

func TestResolver_SinResolver(t *testing.T) {
	r := fields.DefaultSchemas().Products
	v, tier := r.Lookup(fields.Record{}, fields.Brand)
	assert.Empty(t, v)
	assert.Equal(t, fields.TierNone, tier)

	var nilResolver *fields.Resolver
	assert.Empty(t, nilResolver.Resolve(fields.Record{}, fields.Brand))
}

func TestRecord_FilasCortas(t *testing.T) {
	rec := fields.NewRecord([]string{"Product ID", "Brand", "Model"}, []string{"INV-1"})
	r := fields.DefaultSchemas().Products
	assert.Equal(t, "INV-1", r.Resolve(rec, fields.ProductID))
	assert.Empty(t, r.Resolve(rec, fields.Model))
}

func TestFromMap_Determinista(t *testing.T) {
	m := map[string]string{"qty": "2", "productId": "INV-1", "price": "10"}
	a := fields.FromMap(m)
	b := fields.FromMap(m)
	assert.Equal(t, a, b)
	assert.Equal(t, []string{"price", "productId", "qty"}, a.Headers)
}

func TestOverrides_AntepuestosALosIncorporados(t *testing.T) {
	o, err := fields.ParseOverrides([]byte(`
stock_in:
  serial_number: ["Machine S/N"]
  person: ["Checked By"]
`))
	require.NoError(t, err)

	r := fields.WithOverrides(o).StockIn
	rec := fields.NewRecord(
		[]string{"Product ID", "Serial Number", "Machine S/N", "Checked By"},
		[]string{"INV-1", "OLD", "NEW", "Nok"},
	)
	assert.Equal(t, "NEW", r.Resolve(rec, fields.SerialNumber))
	assert.Equal(t, "Nok", r.Resolve(rec, fields.Person))

	// el alias incorporado sigue funcionando si falta la columna nueva
	rec2 := fields.NewRecord([]string{"Product ID", "Serial Number"}, []string{"INV-1", "OLD"})
	assert.Equal(t, "OLD", r.Resolve(rec2, fields.SerialNumber))

	// los otros flujos no cambian
	assert.Equal(t, "OLD", fields.WithOverrides(o).StockOut.Resolve(rec, fields.SerialNumber))
}

func TestOverrides_YAMLInvalido(t *testing.T) {
	_, err := fields.ParseOverrides([]byte("- just\n- a list\n"))
	assert.Error(t, err)
}

func TestLoadSchemas_SinArchivo(t *testing.T) {
	s, err := fields.LoadSchemas("")
	require.NoError(t, err)
	assert.NotNil(t, s.Products)
	assert.NotNil(t, s.Items)

	_, err = fields.LoadSchemas("/no/existe/aliases.yaml")
	assert.Error(t, err)
}
