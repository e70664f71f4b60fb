package entity

import "github.com/shopspring/decimal"

// Direction sentido de un movimiento de stock.
type Direction string

const (
	DirectionIN  Direction = "IN"  // entrada
	DirectionOUT Direction = "OUT" // salida
)

// NonSerial marcador de movimientos sin número de serie individual (sólo cuenta la cantidad).
const NonSerial = "NON-SERIAL"

// Movement fila normalizada de Stock_In o Stock_Out.
// Date conserva el texto de la hoja; las agregaciones por fecha lo interpretan con normalize.
type Movement struct {
	Direction   Direction
	ProductID   string
	Serial      string // NonSerial si la fila no trae serie
	Model       string
	Quantity    decimal.Decimal
	Date        string
	Entity      string
	ProjectName string
	ProjectType string
	RefNo       string
	Person      string
}

// Serialized indica si el movimiento identifica una unidad individual.
func (m Movement) Serialized() bool {
	return m.Serial != "" && m.Serial != NonSerial
}
