package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cmi-stock/internal/application/dto"
	"github.com/jhoicas/cmi-stock/internal/application/reconcile"
	"github.com/jhoicas/cmi-stock/internal/domain/entity"
	"github.com/jhoicas/cmi-stock/pkg/validator"
)

// ResultProvider resultado vigente del motor (lo implementa *reconcile.UseCase).
type ResultProvider interface {
	Run(ctx context.Context) (*reconcile.Result, error)
}

// LedgerHandler libro de stock, unidades, analítica y diagnósticos (lectura).
type LedgerHandler struct {
	results ResultProvider
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(results ResultProvider) *LedgerHandler {
	return &LedgerHandler{results: results}
}

// List godoc
// @Summary      Libro de stock por producto
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Healthy | Low | Out of Stock | Negative"
// @Param        q       query  string  false  "Filtra por Product ID, modelo, marca o categoría"
// @Param        limit   query  int     false  "Tamaño de página (1-100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.LedgerListResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/ledger [get]
func (h *LedgerHandler) List(c *fiber.Ctx) error {
	page, perr := parsePage(c)
	if perr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(perr)
	}
	res, err := h.results.Run(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	status := c.Query("status")
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))

	var filtered []*entity.LedgerEntry
	for _, e := range res.Ledger.Entries() {
		if status != "" && string(e.Status()) != status {
			continue
		}
		if q != "" && !matchesEntry(e, q) {
			continue
		}
		filtered = append(filtered, e)
	}

	items := make([]dto.LedgerEntryDTO, 0, page.Limit)
	for _, e := range window(filtered, page) {
		items = append(items, dto.LedgerEntryFromEntity(e))
	}
	return c.JSON(dto.LedgerListResponse{
		ComputedAt: res.ComputedAt.UTC().Format(time.RFC3339),
		Items:      items,
		Page:       dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(filtered)},
	})
}

// Get godoc
// @Summary      Saldo y unidades de un producto
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "Product ID"
// @Success      200  {object}  dto.LedgerEntryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/{productId} [get]
func (h *LedgerHandler) Get(c *fiber.Ctx) error {
	res, err := h.results.Run(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	e, ok := res.Ledger.Get(c.Params("productId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(dto.LedgerEntryFromEntity(e))
}

// Units godoc
// @Summary      Buscar unidades serializadas
// @Description  Busca por serie, Product ID, modelo o proyecto (sin distinguir mayúsculas).
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Texto a buscar"
// @Param        status  query  string  false  "In Stock | Deployed"
// @Param        limit   query  int     false  "Tamaño de página (1-100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.UnitListResponse
// @Router       /api/units [get]
func (h *LedgerHandler) Units(c *fiber.Ctx) error {
	page, perr := parsePage(c)
	if perr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(perr)
	}
	res, err := h.results.Run(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	status := c.Query("status")

	var filtered []entity.UnitRecord
	for _, u := range res.Ledger.Units() {
		if status != "" && string(u.Status) != status {
			continue
		}
		if q != "" && !matchesUnit(u, q) {
			continue
		}
		filtered = append(filtered, u)
	}
	items := make([]dto.UnitDTO, 0, page.Limit)
	for _, u := range window(filtered, page) {
		items = append(items, dto.UnitFromEntity(u))
	}
	return c.JSON(dto.UnitListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(filtered)},
	})
}

// Analytics godoc
// @Summary      Indicadores del inventario
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AnalyticsDTO
// @Router       /api/analytics [get]
func (h *LedgerHandler) Analytics(c *fiber.Ctx) error {
	res, err := h.results.Run(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AnalyticsFromReport(res.Analytics))
}

// Diagnostics godoc
// @Summary      Datos inconsistentes detectados en la instantánea
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        kind  query  string  false  "Filtra por tipo (dangling_out, duplicate_serial, ...)"
// @Success      200  {object}  dto.DiagnosticsDTO
// @Router       /api/diagnostics [get]
func (h *LedgerHandler) Diagnostics(c *fiber.Ctx) error {
	res, err := h.results.Run(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	out := dto.DiagnosticsFromReport(res.Diagnostics)
	if kind := c.Query("kind"); kind != "" {
		items := make([]dto.DiagnosticDTO, 0)
		for _, d := range out.Items {
			if d.Kind == kind {
				items = append(items, d)
			}
		}
		out.Items = items
		out.Total = len(items)
	}
	return c.JSON(out)
}

func parsePage(c *fiber.Ctx) (dto.PageRequest, *dto.ErrorResponse) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, &dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"}
	}
	page.DefaultPage()
	if errs := validator.ValidateStruct(page); len(errs) > 0 {
		return page, &dto.ErrorResponse{Code: "VALIDATION", Message: errs[0].Error()}
	}
	return page, nil
}

func window[T any](items []T, page dto.PageRequest) []T {
	if page.Offset >= len(items) {
		return nil
	}
	end := page.Offset + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[page.Offset:end]
}

func matchesEntry(e *entity.LedgerEntry, q string) bool {
	for _, s := range []string{e.Product.ID, e.Product.Model, e.Product.Brand, e.Product.Category} {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

func matchesUnit(u entity.UnitRecord, q string) bool {
	for _, s := range []string{u.Serial, u.ProductID, u.Model, u.ProjectName} {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}
