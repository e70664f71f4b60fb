// Package webhook camino de escritura hacia el endpoint remoto de la hoja (por ejemplo un
// Apps Script publicado). El endpoint no tiene contrato de respuesta: sólo se verifica el status HTTP.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/cmi-stock/internal/domain"
	"github.com/jhoicas/cmi-stock/internal/domain/fields"
	"github.com/jhoicas/cmi-stock/internal/domain/repository"
)

var _ repository.RecordWriter = (*RecordWriter)(nil)

// sheetNames nombre de la pestaña destino por flujo.
var sheetNames = map[fields.Stream]string{
	fields.StreamProducts:    "Products",
	fields.StreamStockIn:     "Stock_In",
	fields.StreamStockOut:    "Stock_Out",
	fields.StreamSalesOrders: "Sales_Orders",
	fields.StreamQuotations:  "Quotations",
}

type payload struct {
	Action string            `json:"action"`
	Sheet  string            `json:"sheet"`
	Row    map[string]string `json:"row"`
}

// RecordWriter envía filas nuevas por POST JSON.
type RecordWriter struct {
	endpoint   string
	httpClient *http.Client
}

// NewRecordWriter construye el cliente.
func NewRecordWriter(endpoint string, timeout time.Duration) *RecordWriter {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RecordWriter{endpoint: endpoint, httpClient: &http.Client{Timeout: timeout}}
}

// Append envía la fila. Un status ≥ 400 se informa como domain.ErrWriteRejected.
func (w *RecordWriter) Append(ctx context.Context, stream fields.Stream, row map[string]string) error {
	sheet, ok := sheetNames[stream]
	if !ok {
		return fmt.Errorf("%w: flujo desconocido %q", domain.ErrInvalidInput, stream)
	}
	body, err := json.Marshal(payload{Action: "append", Sheet: sheet, Row: row})
	if err != nil {
		return fmt.Errorf("webhook: serializar fila: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("webhook: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("webhook: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: status %d", domain.ErrWriteRejected, resp.StatusCode)
	}
	return nil
}
