package handlers

import (
	"errors"

	"vitrifiye-studio/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	logger         *zap.Logger
}

func NewProfileHandler(profileService *service.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// Get godoc
// @Summary Current user's profile
// @Description User with saved designs and quiz history
// @Tags profile
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} map[string]string
// @Router /profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	resp, err := h.profileService.Get(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "User not found")
		}
		h.logger.Error("Failed to load profile", zap.String("user_id", userID.String()), zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to load profile")
	}
	return c.JSON(resp)
}
