package dto

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cmi-stock/internal/domain/entity"
)

// UnitDTO una unidad serializada y su ubicación actual.
type UnitDTO struct {
	Serial      string `json:"serial"`
	ProductID   string `json:"product_id"`
	Model       string `json:"model"`
	Status      string `json:"status"`
	Location    string `json:"location"`
	InDate      string `json:"in_date"`
	InRef       string `json:"in_ref,omitempty"`
	Receiver    string `json:"receiver,omitempty"`
	Supplier    string `json:"supplier,omitempty"`
	OutDate     string `json:"out_date,omitempty"`
	OutRef      string `json:"out_ref,omitempty"`
	Withdrawer  string `json:"withdrawer,omitempty"`
	ProjectName string `json:"project_name,omitempty"`
	ProjectType string `json:"project_type,omitempty"`
}

// LedgerEntryDTO saldo de un producto para GET /api/ledger.
type LedgerEntryDTO struct {
	ProductID        string          `json:"product_id"`
	Category         string          `json:"category"`
	Brand            string          `json:"brand"`
	Model            string          `json:"model"`
	Unit             string          `json:"unit"`
	Company          string          `json:"company,omitempty"`
	ImageURL         string          `json:"image_url,omitempty"`
	MinStock         decimal.Decimal `json:"min_stock"`
	TotalIn          decimal.Decimal `json:"total_in"`
	TotalOut         decimal.Decimal `json:"total_out"`
	Balance          decimal.Decimal `json:"balance"`           // total_in - total_out
	ReservedQuantity decimal.Decimal `json:"reserved_quantity"` // órdenes Reserved/Pending/Confirmed
	AvailableBalance decimal.Decimal `json:"available_balance"` // balance - reserved (puede ser negativo)
	Status           string          `json:"status"`            // Healthy | Low | Out of Stock | Negative
	Known            bool            `json:"known"`             // false si no está en el maestro
	Units            []UnitDTO       `json:"units"`
}

// UnitFromEntity convierte una unidad del dominio.
func UnitFromEntity(u entity.UnitRecord) UnitDTO {
	return UnitDTO{
		Serial:      u.Serial,
		ProductID:   u.ProductID,
		Model:       u.Model,
		Status:      string(u.Status),
		Location:    u.Location(),
		InDate:      u.InDate,
		InRef:       u.InRef,
		Receiver:    u.Receiver,
		Supplier:    u.Supplier,
		OutDate:     u.OutDate,
		OutRef:      u.OutRef,
		Withdrawer:  u.Withdrawer,
		ProjectName: u.ProjectName,
		ProjectType: u.ProjectType,
	}
}

// LedgerEntryFromEntity convierte una entrada del libro.
func LedgerEntryFromEntity(e *entity.LedgerEntry) LedgerEntryDTO {
	units := make([]UnitDTO, 0, len(e.Units))
	for _, u := range e.Units {
		units = append(units, UnitFromEntity(u))
	}
	return LedgerEntryDTO{
		ProductID:        e.Product.ID,
		Category:         e.Product.Category,
		Brand:            e.Product.Brand,
		Model:            e.Product.Model,
		Unit:             e.Product.Unit,
		Company:          e.Product.Company,
		ImageURL:         DirectImageURL(e.Product.ImageRef),
		MinStock:         e.Product.MinStock,
		TotalIn:          e.TotalIn,
		TotalOut:         e.TotalOut,
		Balance:          e.Balance,
		ReservedQuantity: e.ReservedQuantity,
		AvailableBalance: e.AvailableBalance,
		Status:           string(e.Status()),
		Known:            e.Known,
		Units:            units,
	}
}

var driveID = regexp.MustCompile(`/d/([^/]+)/|[?&]id=([^&]+)$`)

// DirectImageURL convierte enlaces de Google Drive en enlaces de visualización directa.
func DirectImageURL(url string) string {
	url = strings.TrimSpace(url)
	if url == "" || !strings.Contains(url, "drive.google.com") {
		return url
	}
	m := driveID.FindStringSubmatch(url)
	if m == nil {
		return url
	}
	id := m[1]
	if id == "" {
		id = m[2]
	}
	return "https://drive.google.com/uc?export=view&id=" + id
}

// LedgerListResponse respuesta de GET /api/ledger.
type LedgerListResponse struct {
	ComputedAt string           `json:"computed_at"`
	Items      []LedgerEntryDTO `json:"items"`
	Page       PageResponse     `json:"page"`
}

// UnitListResponse respuesta de GET /api/units.
type UnitListResponse struct {
	Items []UnitDTO    `json:"items"`
	Page  PageResponse `json:"page"`
}
