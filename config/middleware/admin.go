package middleware

import (
	"github.com/gofiber/fiber/v2"

	"digi-hr-backend/models"
)

// AdminMiddleware harus dipasang setelah AuthMiddleware.
func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromCtx(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Tidak terautentikasi atau data sesi rusak"})
		}

		if claims.Role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses ditolak. Hak akses admin diperlukan"})
		}

		return c.Next()
	}
}
