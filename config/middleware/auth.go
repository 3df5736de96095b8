package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"digi-hr-backend/models"
	"digi-hr-backend/pkg/paseto"
)

// AuthMiddleware memverifikasi bearer token dan menaruh *models.Claims di
// c.Locals("user") untuk dibaca handler berikutnya.
func AuthMiddleware(maker *paseto.Maker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authorization header is required"})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authorization header format must be Bearer <token>"})
		}

		claims, err := maker.ValidateToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals("user", claims)

		return c.Next()
	}
}

// ClaimsFromCtx mengambil principal yang sudah di-set AuthMiddleware.
func ClaimsFromCtx(c *fiber.Ctx) (*models.Claims, bool) {
	claims, ok := c.Locals("user").(*models.Claims)
	return claims, ok
}
