package dto

import "github.com/jhoicas/cmi-stock/internal/domain/diag"

// DiagnosticsDTO respuesta de GET /api/diagnostics.
type DiagnosticsDTO struct {
	Total  int             `json:"total"`
	Counts map[string]int  `json:"counts"`
	Items  []DiagnosticDTO `json:"items"`
}

// DiagnosticDTO un hallazgo del motor.
type DiagnosticDTO struct {
	Kind      string `json:"kind"`
	ProductID string `json:"product_id,omitempty"`
	Serial    string `json:"serial,omitempty"`
	Ref       string `json:"ref,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// DiagnosticsFromReport convierte el reporte de diagnósticos (nil → vacío).
func DiagnosticsFromReport(r *diag.Report) DiagnosticsDTO {
	items := make([]DiagnosticDTO, 0, r.Len())
	for _, d := range r.Items() {
		items = append(items, DiagnosticDTO{
			Kind:      string(d.Kind),
			ProductID: d.ProductID,
			Serial:    d.Serial,
			Ref:       d.Ref,
			Detail:    d.Detail,
		})
	}
	counts := make(map[string]int)
	for k, v := range r.Counts() {
		counts[string(k)] = v
	}
	return DiagnosticsDTO{Total: len(items), Counts: counts, Items: items}
}
