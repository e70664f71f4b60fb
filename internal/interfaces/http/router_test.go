package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/cmi-stock/internal/application/auth"
	"github.com/jhoicas/cmi-stock/internal/application/movement"
	"github.com/jhoicas/cmi-stock/internal/application/quotation"
	"github.com/jhoicas/cmi-stock/internal/application/reconcile"
	"github.com/jhoicas/cmi-stock/internal/domain"
	"github.com/jhoicas/cmi-stock/internal/domain/analytics"
	"github.com/jhoicas/cmi-stock/internal/domain/fields"
	"github.com/jhoicas/cmi-stock/internal/domain/repository"
	"github.com/jhoicas/cmi-stock/internal/infrastructure/users"
	apphttp "github.com/jhoicas/cmi-stock/internal/interfaces/http"
	"github.com/jhoicas/cmi-stock/pkg/logger"
)

type stubResults struct {
	res *reconcile.Result
	err error
}

func (s stubResults) Run(context.Context) (*reconcile.Result, error) { return s.res, s.err }

type stubWriter struct{ rows []map[string]string }

func (w *stubWriter) Append(_ context.Context, _ fields.Stream, row map[string]string) error {
	w.rows = append(w.rows, row)
	return nil
}

func snapshot() *repository.Snapshot {
	r := fields.NewRecord
	hp := []string{"Product ID", "Category", "Brand", "Model", "Min Stock"}
	hi := []string{"Product ID", "Serial Number", "Date"}
	ho := []string{"Product ID", "Serial Number", "Date", "Project Name"}
	return &repository.Snapshot{
		Products: []fields.Record{
			r(hp, []string{"INV-001", "Inverter", "Huawei", "SUN2000", "0"}),
			r(hp, []string{"PNL-001", "Panel", "Jinko", "Tiger", "10"}),
			r(hp, []string{"CBL-001", "Cable", "Link", "PV1-F", "0"}),
		},
		StockIn: []fields.Record{
			r(hi, []string{"INV-001", "S1", "2024-01-01"}),
			r(hi, []string{"INV-001", "S2", "2024-01-01"}),
			r(hi, []string{"PNL-001", "P1", "2024-01-01"}),
		},
		StockOut: []fields.Record{
			r(ho, []string{"INV-001", "S1", "2024-01-05", "Farm A"}),
			r(ho, []string{"CBL-001", "GHOST", "2024-01-06", "Farm B"}),
		},
		Quotations: []fields.Record{
			r([]string{"QT ID", "Items", "Discount", "Total"}, []string{"QT-001", `[{"qty":2,"price":1000}]`, "200", "1800"}),
		},
	}
}

func newAPI(t *testing.T, results apphttp.ResultProvider) (*fiber.App, *stubWriter) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	repo, err := users.Parse(testUsername + ":" + string(hash) + ":staff")
	require.NoError(t, err)

	w := &stubWriter{}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		Results:     results,
		QuotationUC: quotation.NewUseCase(results, nil),
		MovementUC:  movement.NewUseCase(w, nil, nil, logger.Nop()),
		JWTSecret:   testJWTSecret,
	})
	return app, w
}

func computed() stubResults {
	return stubResults{res: reconcile.Compute(reconcile.NewMapper(fields.DefaultSchemas()), snapshot(), analytics.Options{})}
}

func send(t *testing.T, app *fiber.App, method, target, authHeader, body string) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func TestLogin_DevuelveToken(t *testing.T) {
	app, _ := newAPI(t, computed())

	resp, body := send(t, app, http.MethodPost, "/api/auth/login", "", `{"username":"somchai","password":"pw"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	resp, body = send(t, app, http.MethodPost, "/api/auth/login", "", `{"username":"somchai","password":"mal"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body["code"])
}

func TestLedger_RequiereToken(t *testing.T) {
	app, _ := newAPI(t, computed())
	resp, _ := send(t, app, http.MethodGet, "/api/ledger", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLedger_ListaFiltrosYPaginacion(t *testing.T) {
	app, _ := newAPI(t, computed())
	tok := tokenForRole(t, "viewer")

	resp, body := send(t, app, http.MethodGet, "/api/ledger", tok, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := body["items"].([]any)
	assert.Len(t, items, 3)
	first := items[0].(map[string]any)
	assert.Equal(t, "INV-001", first["product_id"])
	assert.Equal(t, "1", first["balance"])

	_, body = send(t, app, http.MethodGet, "/api/ledger?status=Negative", tok, "")
	items = body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "CBL-001", items[0].(map[string]any)["product_id"])

	_, body = send(t, app, http.MethodGet, "/api/ledger?q=jinko", tok, "")
	assert.Len(t, body["items"].([]any), 1)

	_, body = send(t, app, http.MethodGet, "/api/ledger?limit=1&offset=2", tok, "")
	assert.Len(t, body["items"].([]any), 1)
	page := body["page"].(map[string]any)
	assert.EqualValues(t, 3, page["total"])

	resp, body = send(t, app, http.MethodGet, "/api/ledger?limit=500", tok, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestLedger_Get(t *testing.T) {
	app, _ := newAPI(t, computed())
	tok := tokenForRole(t, "viewer")

	resp, body := send(t, app, http.MethodGet, "/api/ledger/INV-001", tok, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["units"].([]any), 2)

	resp, body = send(t, app, http.MethodGet, "/api/ledger/NOPE", tok, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestUnits_Busqueda(t *testing.T) {
	app, _ := newAPI(t, computed())
	tok := tokenForRole(t, "viewer")

	_, body := send(t, app, http.MethodGet, "/api/units?q=farm%20a", tok, "")
	items := body["items"].([]any)
	require.Len(t, items, 1)
	u := items[0].(map[string]any)
	assert.Equal(t, "S1", u["serial"])
	assert.Equal(t, "Farm A", u["location"])

	_, body = send(t, app, http.MethodGet, "/api/units?status=In%20Stock", tok, "")
	assert.Len(t, body["items"].([]any), 2)
}

func TestDiagnostics_FiltroPorTipo(t *testing.T) {
	app, _ := newAPI(t, computed())
	tok := tokenForRole(t, "viewer")

	_, body := send(t, app, http.MethodGet, "/api/diagnostics?kind=dangling_out", tok, "")
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "GHOST", items[0].(map[string]any)["serial"])
	assert.EqualValues(t, 1, body["total"])
}

func TestAnalytics_OK(t *testing.T) {
	app, _ := newAPI(t, computed())
	resp, _ := send(t, app, http.MethodGet, "/api/analytics", tokenForRole(t, "viewer"), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestQuotations(t *testing.T) {
	app, _ := newAPI(t, computed())
	tok := tokenForRole(t, "viewer")

	resp, body := send(t, app, http.MethodPost, "/api/quotations/calculate", tok, `{"items":[{"qty":2,"price":1000}],"discount":200}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1800", body["total"])
	assert.Equal(t, "117.76", body["vat"])
	assert.Equal(t, "หนึ่งพันแปดร้อยบาทถ้วน", body["total_text"])

	resp, body = send(t, app, http.MethodPost, "/api/quotations/calculate", tok, `{"items":[]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])

	resp, body = send(t, app, http.MethodGet, "/api/quotations/QT-001/summary", tok, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["matches_stored"])

	resp, _ = send(t, app, http.MethodGet, "/api/quotations/QT-404/summary", tok, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = send(t, app, http.MethodGet, "/api/quotations/QT-001/pdf", tok, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "sin generador configurado")
}

func TestMovements_RolesYEnvio(t *testing.T) {
	app, w := newAPI(t, computed())
	body := `{"direction":"OUT","product_id":"INV-001","serial":"S2","date":"2024-02-01","project_name":"Farm C"}`

	resp, _ := send(t, app, http.MethodPost, "/api/movements", tokenForRole(t, "viewer"), body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, w.rows)

	resp, out := send(t, app, http.MethodPost, "/api/movements", tokenForRole(t, "staff"), body)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "sent", out["status"])
	require.Len(t, w.rows, 1)
	assert.Equal(t, testUsername, w.rows[0]["Withdrawer"])

	resp, out = send(t, app, http.MethodPost, "/api/movements", tokenForRole(t, "admin"), `{"direction":"IN"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", out["code"])
}

func TestFuenteNoDisponible_Retorna503(t *testing.T) {
	app, _ := newAPI(t, stubResults{err: domain.ErrSourceUnavailable})
	resp, body := send(t, app, http.MethodGet, "/api/ledger", tokenForRole(t, "viewer"), "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "SOURCE_UNAVAILABLE", body["code"])
}
