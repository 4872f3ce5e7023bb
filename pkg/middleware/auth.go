package middleware

import (
	"strings"

	"vitrifiye-studio/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func bearerToken(c *fiber.Ctx) string {
	token := c.Get(fiber.HeaderAuthorization)
	return strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
}

func storeClaims(c *fiber.Ctx, claims *auth.Claims) {
	c.Locals("userID", claims.UserID)
	c.Locals("username", claims.Username)
	c.Locals("email", claims.Email)
	c.Locals("role", claims.Role)
}

// AuthMiddleware rejects requests without a valid access token.
func AuthMiddleware(jwtManager *auth.JWTManager, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			logger.Warn("Missing authorization token", zap.String("path", c.Path()))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization token required",
			})
		}

		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			logger.Warn("Invalid token", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		storeClaims(c, claims)
		return c.Next()
	}
}

// OptionalAuth resolves the user when a valid token is sent and lets
// anonymous requests through otherwise. A bad token is treated as anonymous.
func OptionalAuth(jwtManager *auth.JWTManager, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Next()
		}

		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			logger.Debug("Ignoring invalid token on optional auth route", zap.Error(err))
			return c.Next()
		}

		storeClaims(c, claims)
		return c.Next()
	}
}
