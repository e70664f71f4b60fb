package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cmi-stock/internal/application/dto"
	"github.com/jhoicas/cmi-stock/pkg/jwt"
)

// Locals keys para Username y Role en Fiber.
const (
	LocalUsername = "username"
	LocalRole     = "role"
)

// AuthMiddleware valida el Bearer Token JWT y extrae Username y Role a c.Locals.
// Para /ws el token también se acepta en el query param "token" (los navegadores no envían headers).
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, code, msg := bearerToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
		}
		username, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUsername, username)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (token, code, msg string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		if q := strings.TrimSpace(c.Query("token")); q != "" {
			return q, "", ""
		}
		return "", "MISSING_TOKEN", "Authorization header requerido"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "INVALID_TOKEN", "formato: Bearer <token>"
	}
	token = strings.TrimSpace(parts[1])
	if token == "" {
		return "", "MISSING_TOKEN", "token vacío"
	}
	return token, "", ""
}

// GetUsername devuelve el usuario del contexto (después del middleware de auth).
func GetUsername(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUsername).(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
