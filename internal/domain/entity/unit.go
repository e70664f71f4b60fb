package entity

// UnitStatus estado del ciclo de vida de una unidad serializada.
type UnitStatus string

const (
	UnitInStock  UnitStatus = "In Stock"
	UnitDeployed UnitStatus = "Deployed"
)

// UnitRecord una unidad física identificada por (ProductID, Serial).
type UnitRecord struct {
	Serial      string
	ProductID   string
	Model       string
	Status      UnitStatus
	InDate      string
	InRef       string
	Receiver    string
	Supplier    string
	OutDate     string
	OutRef      string
	Withdrawer  string
	ProjectName string
	ProjectType string
}

// Location ubicación legible: el proyecto si está desplegada, la bodega principal si no.
func (u UnitRecord) Location() string {
	if u.Status == UnitDeployed {
		return u.ProjectName
	}
	return "Main Warehouse"
}
