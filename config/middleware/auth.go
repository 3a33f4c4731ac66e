package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"Gestion-Solicitudes/pkg/paseto"
)

func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Se requiere el header Authorization"})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "El header Authorization debe tener formato Bearer <token>"})
		}

		claims, err := paseto.ValidateToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token inválido o expirado", "details": err.Error()})
		}

		c.Locals("user", claims)

		return c.Next()
	}
}
