package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cmi-stock/internal/application/dto"
	"github.com/jhoicas/cmi-stock/internal/application/quotation"
	"github.com/jhoicas/cmi-stock/pkg/validator"
)

// QuotationHandler cálculo y resumen de cotizaciones.
type QuotationHandler struct {
	uc *quotation.UseCase
}

// NewQuotationHandler construye el handler.
func NewQuotationHandler(uc *quotation.UseCase) *QuotationHandler {
	return &QuotationHandler{uc: uc}
}

// Calculate godoc
// @Summary      Calcular totales de una cotización
// @Description  subtotal = Σ qty·price; total = subtotal − discount; IVA 7% incluido en total.
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalculateQuotationRequest  true  "items, discount"
// @Success      200   {object}  dto.FinancialSummaryDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/quotations/calculate [post]
func (h *QuotationHandler) Calculate(c *fiber.Ctx) error {
	var in dto.CalculateQuotationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: errs[0].Error()})
	}
	return c.JSON(h.uc.Calculate(in))
}

// Summary godoc
// @Summary      Resumen recalculado de una cotización guardada
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "QT ID"
// @Success      200  {object}  dto.FinancialSummaryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/summary [get]
func (h *QuotationHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      PDF de una cotización guardada
// @Tags         quotations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "QT ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/pdf [get]
func (h *QuotationHandler) PDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.PDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
