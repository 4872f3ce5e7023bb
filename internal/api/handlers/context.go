package handlers

import (
	"strconv"

	"vitrifiye-studio/internal/models"
	"vitrifiye-studio/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals("userID").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}

// optionalUserID returns nil for anonymous requests.
func optionalUserID(c *fiber.Ctx) *uuid.UUID {
	userID, err := getUserID(c)
	if err != nil {
		return nil
	}
	return &userID
}

func getActor(c *fiber.Ctx) (service.Actor, error) {
	userID, err := getUserID(c)
	if err != nil {
		return service.Actor{}, err
	}
	role, _ := c.Locals("role").(string)
	return service.Actor{UserID: userID, Role: models.UserRole(role)}, nil
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

func errorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}
