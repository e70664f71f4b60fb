package fields

// Resolver aplica un Schema a registros. Es inmutable y seguro para uso concurrente.
type Resolver struct {
	schema Schema
}

// NewResolver construye un Resolver sobre una copia del schema.
func NewResolver(s Schema) *Resolver {
	return &Resolver{schema: s.Clone()}
}

// Resolve devuelve el valor del campo lógico o "" si ningún nivel lo resuelve.
func (r *Resolver) Resolve(rec Record, f Field) string {
	v, _ := r.Lookup(rec, f)
	return v
}

// Lookup igual que Resolve pero informa qué nivel de la cadena resolvió el campo.
func (r *Resolver) Lookup(rec Record, f Field) (string, Tier) {
	if r == nil {
		return "", TierNone
	}
	chain, ok := r.schema[f]
	if !ok {
		return "", TierNone
	}
	return chain.Lookup(rec)
}

// Schemas agrupa los resolvers de todos los flujos de entrada.
type Schemas struct {
	Products    *Resolver
	StockIn     *Resolver
	StockOut    *Resolver
	SalesOrders *Resolver
	Quotations  *Resolver
	Items       *Resolver
}

// DefaultSchemas resolvers con los alias incorporados.
func DefaultSchemas() Schemas {
	return Schemas{}.apply(nil)
}

// WithOverrides resolvers con los alias del archivo de override antepuestos.
func WithOverrides(o Overrides) Schemas {
	return Schemas{}.apply(o)
}

func (Schemas) apply(o Overrides) Schemas {
	build := func(stream Stream, base Schema) *Resolver {
		return NewResolver(base.WithAliases(o[stream]))
	}
	return Schemas{
		Products:    build(StreamProducts, ProductSchema()),
		StockIn:     build(StreamStockIn, StockInSchema()),
		StockOut:    build(StreamStockOut, StockOutSchema()),
		SalesOrders: build(StreamSalesOrders, SalesOrderSchema()),
		Quotations:  build(StreamQuotations, QuotationSchema()),
		Items:       build(StreamItems, ItemSchema()),
	}
}
