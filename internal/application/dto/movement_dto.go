package dto

// PostMovementRequest body para POST /api/movements. Se reenvía a la hoja remota; el motor no escribe.
type PostMovementRequest struct {
	Direction   string `json:"direction" validate:"required,oneof=IN OUT"`
	ProductID   string `json:"product_id" validate:"not_blank,max=64"`
	Serial      string `json:"serial,omitempty" validate:"max=128"`
	Quantity    string `json:"quantity,omitempty" validate:"omitempty,numeric"`
	Date        string `json:"date" validate:"not_blank"`
	Entity      string `json:"entity,omitempty"`
	ProjectName string `json:"project_name,omitempty"`
	ProjectType string `json:"project_type,omitempty"`
	RefNo       string `json:"ref_no,omitempty"`
	Person      string `json:"person,omitempty"`
}

// PostMovementResponse respuesta de POST /api/movements.
type PostMovementResponse struct {
	RefNo  string `json:"ref_no"`
	Status string `json:"status"` // "sent": el endpoint remoto no confirma escritura
}
