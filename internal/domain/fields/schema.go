package fields

// Field nombre lógico de un campo, independiente del encabezado real de la hoja.
type Field string

const (
	ProductID    Field = "product_id"
	Category     Field = "category"
	Brand        Field = "brand"
	Model        Field = "model"
	Unit         Field = "unit"
	MinStock     Field = "min_stock"
	Company      Field = "company"
	Image        Field = "image"
	SerialNumber Field = "serial_number"
	Quantity     Field = "quantity"
	Date         Field = "date"
	Entity       Field = "entity"
	RefNo        Field = "ref_no"
	Person       Field = "person"
	ProjectName  Field = "project_name"
	ProjectType  Field = "project_type"
	OrderID      Field = "order_id"
	CustomerID   Field = "customer_id"
	Items        Field = "items"
	GrandTotal   Field = "grand_total"
	QuotationRef Field = "quotation_ref"
	QuotationID  Field = "quotation_id"
	Status       Field = "status"
	Subtotal     Field = "subtotal"
	Discount     Field = "discount"
	VAT          Field = "vat"
	Total        Field = "total"
	UnitPrice    Field = "unit_price"
)

// Stream identifica uno de los flujos de registros de entrada.
type Stream string

const (
	StreamProducts    Stream = "products"
	StreamStockIn     Stream = "stock_in"
	StreamStockOut    Stream = "stock_out"
	StreamSalesOrders Stream = "sales_orders"
	StreamQuotations  Stream = "quotations"
	StreamItems       Stream = "items"
)

// Schema cadena de resolución por campo lógico.
type Schema map[Field]Chain

// Clone copia superficial del mapa (las cadenas se copian, las estrategias se comparten).
func (s Schema) Clone() Schema {
	out := make(Schema, len(s))
	for f, c := range s {
		cc := make(Chain, len(c))
		copy(cc, c)
		out[f] = cc
	}
	return out
}

// WithAliases antepone alias adicionales a la cadena de cada campo.
func (s Schema) WithAliases(extra map[Field][]string) Schema {
	out := s.Clone()
	for f, aliases := range extra {
		if len(aliases) == 0 {
			continue
		}
		out[f] = append(Chain{Aliases(aliases)}, out[f]...)
	}
	return out
}

// Patrones de contenido compartidos.
var (
	productIDShape = MatchPattern(`^(?i)(INV|PRD|SKU)-[0-9A-Z]+$`)
	dateShape      = MatchPattern(`^\d{1,4}[/.\-]\d{1,2}[/.\-]\d{1,4}`)
	orderIDShape   = MatchPattern(`^(?i)SO-?\d+`)
	quoteIDShape   = MatchPattern(`^(?i)QT-?\d+`)
	customerShape  = MatchPattern(`^(?i)(CUS|CUST)-?\d+`)
	arrayShape     = MatchPattern(`^"*\s*\[`)
	statusShape    = MatchPattern(`^(?i)(reserved|pending|confirmed|cancell?ed|completed|delivered|draft|จอง|รอดำเนินการ|ยืนยัน|ยกเลิก|เสร็จสิ้น)$`)
)

// Layout heredado de la hoja de órdenes de venta (exportaciones sin encabezados confiables).
const (
	legacySOID = iota
	legacySODate
	legacySOCustomer
	legacySOProject
	legacySOItems
	legacySOGrandTotal
	legacySOQuotation
	legacySOStatus
)

// Layout heredado de la hoja de cotizaciones.
const (
	legacyQTID = iota
	legacyQTDate
	legacyQTCustomer
	legacyQTProject
	legacyQTItems
	legacyQTSubtotal
	legacyQTDiscount
	legacyQTVAT
	legacyQTTotal
)

var (
	productIDAliases = Aliases{"Product ID", "ProductID", "ID", "Item ID", "Product Code", "รหัสสินค้า", "รหัส"}
	dateAliases      = Aliases{"Date", "Transaction Date", "วันที่"}
	qtyAliases       = Aliases{"Quantity", "Qty", "จำนวน"}
	refAliases       = Aliases{"Ref No", "Ref", "Reference", "Doc No", "เลขที่อ้างอิง"}
	modelAliases     = Aliases{"Model", "รุ่น"}
	projectAliases   = Aliases{"Project Name", "Project", "ชื่อโครงการ", "โครงการ"}
)

// ProductSchema campos del maestro de productos.
func ProductSchema() Schema {
	return Schema{
		ProductID: {productIDAliases, productIDShape},
		Category:  {Aliases{"Category", "Type", "หมวดหมู่", "ประเภท"}},
		Brand:     {Aliases{"Brand", "ยี่ห้อ", "แบรนด์"}},
		Model:     {modelAliases},
		Unit:      {Aliases{"Unit", "UOM", "หน่วย", "หน่วยนับ"}},
		MinStock:  {Aliases{"Min Stock", "Minimum Stock", "MinStock", "Reorder Point", "สต๊อกขั้นต่ำ", "ขั้นต่ำ"}},
		Company:   {Aliases{"Company", "Supplier", "บริษัท"}},
		Image:     {Aliases{"Image", "Image URL", "Photo", "รูปภาพ", "รูป"}},
	}
}

// StockInSchema campos de la hoja de entradas.
func StockInSchema() Schema {
	return Schema{
		ProductID:    {productIDAliases, productIDShape},
		SerialNumber: {Aliases{"Serial Number", "Serial", "S/N", "SN", "หมายเลขเครื่อง", "ซีเรียล"}},
		Quantity:     {qtyAliases},
		Date:         {dateAliases, dateShape},
		Model:        {modelAliases},
		Entity:       {Aliases{"Entity", "Supplier", "Company", "From", "ผู้จำหน่าย"}},
		RefNo:        {refAliases},
		Person:       {Aliases{"Receiver", "Received By", "Person", "ผู้รับ", "ผู้รับสินค้า"}},
	}
}

// StockOutSchema campos de la hoja de salidas.
func StockOutSchema() Schema {
	return Schema{
		ProductID:    {productIDAliases, productIDShape},
		SerialNumber: {Aliases{"Serial Number", "Serial", "S/N", "SN", "หมายเลขเครื่อง", "ซีเรียล"}},
		Quantity:     {qtyAliases},
		Date:         {dateAliases, dateShape},
		Model:        {modelAliases},
		ProjectName:  {projectAliases},
		ProjectType:  {Aliases{"Project Type", "Type", "ประเภทโครงการ"}},
		RefNo:        {refAliases},
		Person:       {Aliases{"Withdrawer", "Withdrawn By", "Person", "ผู้เบิก"}},
	}
}

// SalesOrderSchema campos de órdenes de venta: alias, luego forma del contenido, luego layout heredado.
func SalesOrderSchema() Schema {
	return Schema{
		OrderID:      {Aliases{"SO ID", "SO No", "Order ID", "SO"}, orderIDShape, Position(legacySOID)},
		Date:         {dateAliases, dateShape, Position(legacySODate)},
		CustomerID:   {Aliases{"Customer ID", "Customer", "รหัสลูกค้า"}, customerShape, Position(legacySOCustomer)},
		ProjectName:  {projectAliases, Position(legacySOProject)},
		Items:        {Aliases{"Items", "Items JSON", "Products", "รายการ"}, arrayShape, Position(legacySOItems)},
		GrandTotal:   {Aliases{"Grand Total", "Total", "ยอดรวม"}, Position(legacySOGrandTotal)},
		QuotationRef: {Aliases{"QT Ref", "Quotation Ref", "QT ID", "Quotation"}, quoteIDShape, Position(legacySOQuotation)},
		Status:       {Aliases{"Status", "สถานะ"}, statusShape, Position(legacySOStatus)},
	}
}

// QuotationSchema campos de cotizaciones.
func QuotationSchema() Schema {
	return Schema{
		QuotationID: {Aliases{"QT ID", "Quotation ID", "QT No", "ID"}, quoteIDShape, Position(legacyQTID)},
		Date:        {dateAliases, dateShape, Position(legacyQTDate)},
		CustomerID:  {Aliases{"Customer ID", "Customer", "รหัสลูกค้า"}, customerShape, Position(legacyQTCustomer)},
		ProjectName: {projectAliases, Position(legacyQTProject)},
		Items:       {Aliases{"Items", "Items JSON", "รายการ"}, arrayShape, Position(legacyQTItems)},
		Subtotal:    {Aliases{"Subtotal", "Sub Total", "รวมเงิน"}, Position(legacyQTSubtotal)},
		Discount:    {Aliases{"Discount", "ส่วนลด"}, Position(legacyQTDiscount)},
		VAT:         {Aliases{"VAT", "Tax", "ภาษีมูลค่าเพิ่ม"}, Position(legacyQTVAT)},
		Total:       {Aliases{"Total", "Grand Total", "ยอดสุทธิ"}, Position(legacyQTTotal)},
	}
}

// ItemSchema campos de una línea dentro de un documento anidado (órdenes y cotizaciones).
func ItemSchema() Schema {
	return Schema{
		ProductID: {Aliases{"productId", "product_id", "Product ID", "pid", "id", "sku"}},
		Model:     {Aliases{"model", "name", "description"}},
		Quantity:  {Aliases{"qty", "quantity", "amount", "จำนวน"}},
		UnitPrice: {Aliases{"price", "unitPrice", "unit_price", "ราคา"}},
	}
}
