package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cmi-stock/internal/application/dto"
	"github.com/jhoicas/cmi-stock/internal/application/movement"
)

// MovementHandler registro de entradas y salidas.
type MovementHandler struct {
	uc *movement.UseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *movement.UseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Post godoc
// @Summary      Registrar una entrada o salida
// @Description  Reenvía la fila a la hoja remota e invalida la instantánea. No espera confirmación.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PostMovementRequest  true  "direction, product_id, serial, quantity, date"
// @Success      202   {object}  dto.PostMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Post(c *fiber.Ctx) error {
	var in dto.PostMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Post(c.UserContext(), in, GetUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(out)
}
