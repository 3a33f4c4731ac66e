package middleware

import (
	"github.com/gofiber/fiber/v2"

	"Gestion-Solicitudes/models"
)

func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("user").(*models.Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No autenticado o sesión corrupta"})
		}

		if claims.Role != "admin" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Acceso denegado. Se requiere rol de administrador"})
		}

		return c.Next()
	}
}
