// Package sheets fuente de instantáneas sobre la exportación CSV de una hoja de cálculo publicada.
// Cada flujo es una pestaña identificada por su gid.
package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/cmi-stock/internal/domain"
	"github.com/jhoicas/cmi-stock/internal/domain/fields"
	"github.com/jhoicas/cmi-stock/internal/domain/repository"
	"github.com/jhoicas/cmi-stock/pkg/logger"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

const maxExportBytes = 16 << 20 // 16 MB por pestaña

// Config URL base de exportación y gid de cada pestaña. Un gid vacío desactiva el flujo.
type Config struct {
	BaseURL        string
	GIDProducts    string
	GIDStockIn     string
	GIDStockOut    string
	GIDSalesOrders string
	GIDQuotations  string
	Timeout        time.Duration
}

// SnapshotRepo lee las pestañas en paralelo.
type SnapshotRepo struct {
	cfg        Config
	httpClient *http.Client
	log        *logger.Logger
}

// NewSnapshotRepository construye el adaptador.
func NewSnapshotRepository(cfg Config, log *logger.Logger) *SnapshotRepo {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	return &SnapshotRepo{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

type streamResult struct {
	stream fields.Stream
	recs   []fields.Record
	err    error
}

// Fetch descarga las cinco pestañas en paralelo. Productos y movimientos son obligatorios;
// si órdenes o cotizaciones fallan se devuelven vacías y se registra una advertencia.
func (r *SnapshotRepo) Fetch(ctx context.Context) (*repository.Snapshot, error) {
	streams := []struct {
		stream   fields.Stream
		gid      string
		required bool
	}{
		{fields.StreamProducts, r.cfg.GIDProducts, true},
		{fields.StreamStockIn, r.cfg.GIDStockIn, true},
		{fields.StreamStockOut, r.cfg.GIDStockOut, true},
		{fields.StreamSalesOrders, r.cfg.GIDSalesOrders, false},
		{fields.StreamQuotations, r.cfg.GIDQuotations, false},
	}

	ch := make(chan streamResult, len(streams))
	pending := 0
	for _, s := range streams {
		if s.gid == "" {
			if s.required {
				return nil, fmt.Errorf("%w: falta gid de %s", domain.ErrSourceUnavailable, s.stream)
			}
			continue
		}
		pending++
		go func(stream fields.Stream, gid string) {
			recs, err := r.fetchStream(ctx, gid)
			ch <- streamResult{stream: stream, recs: recs, err: err}
		}(s.stream, s.gid)
	}

	results := make(map[fields.Stream]streamResult, pending)
	for i := 0; i < pending; i++ {
		res := <-ch
		results[res.stream] = res
	}

	snap := &repository.Snapshot{}
	for _, s := range streams {
		res, ok := results[s.stream]
		if !ok {
			continue
		}
		if res.err != nil {
			if s.required {
				return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, s.stream, res.err)
			}
			if r.log != nil {
				r.log.Warn().Err(res.err).Str("stream", string(s.stream)).Msg("flujo opcional no disponible")
			}
			continue
		}
		switch s.stream {
		case fields.StreamProducts:
			snap.Products = res.recs
		case fields.StreamStockIn:
			snap.StockIn = res.recs
		case fields.StreamStockOut:
			snap.StockOut = res.recs
		case fields.StreamSalesOrders:
			snap.SalesOrders = res.recs
		case fields.StreamQuotations:
			snap.Quotations = res.recs
		}
	}
	return snap, nil
}

func (r *SnapshotRepo) fetchStream(ctx context.Context, gid string) ([]fields.Record, error) {
	exportURL, err := ExportURL(r.cfg.BaseURL, gid)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return nil, fmt.Errorf("sheets: crear request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("sheets: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("sheets: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheets: gid %s respondió %d", gid, resp.StatusCode)
	}
	// Una hoja privada redirige a la página de login (HTML) en vez de devolver CSV.
	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "text/html") {
		return nil, fmt.Errorf("sheets: gid %s no es público (respuesta HTML)", gid)
	}
	return ParseCSV(io.LimitReader(resp.Body, maxExportBytes))
}

// ExportURL agrega (o reemplaza) el parámetro gid en la URL de exportación.
func ExportURL(base, gid string) (string, error) {
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("sheets: URL base inválida %q", base)
	}
	q := u.Query()
	if q.Get("format") == "" {
		q.Set("format", "csv")
	}
	q.Set("gid", gid)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
