package middleware

import (
	"github.com/gofiber/fiber/v2"

	"Sistem-Manajemen-Restoran/models"
)

// RoleMiddleware hanya meloloskan request dari pengguna dengan salah satu role yang diizinkan.
func RoleMiddleware(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("user").(*models.Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Tidak terautentikasi atau data sesi rusak"})
		}

		for _, role := range roles {
			if claims.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses ditolak. Hak akses tidak mencukupi"})
	}
}

func AdminMiddleware() fiber.Handler {
	return RoleMiddleware(models.RoleAdmin)
}

func ManagerMiddleware() fiber.Handler {
	return RoleMiddleware(models.RoleAdmin, models.RoleManager)
}
