package handlers

import (
	"errors"

	"vitrifiye-studio/internal/dto"
	"vitrifiye-studio/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ConfigurationHandler struct {
	configService *service.ConfigurationService
	logger        *zap.Logger
}

func NewConfigurationHandler(configService *service.ConfigurationService, logger *zap.Logger) *ConfigurationHandler {
	return &ConfigurationHandler{
		configService: configService,
		logger:        logger,
	}
}

func (h *ConfigurationHandler) fail(c *fiber.Ctx, err error, op string) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return errorResponse(c, fiber.StatusNotFound, "Configuration not found")
	case errors.Is(err, service.ErrForbidden):
		return errorResponse(c, fiber.StatusForbidden, "Not allowed to modify this configuration")
	}
	h.logger.Error("Configuration request failed", zap.String("op", op), zap.Error(err))
	return errorResponse(c, fiber.StatusInternalServerError, "Configuration request failed")
}

// Create godoc
// @Summary Save a room design
// @Description Anonymous designs get a session id; total price is computed from the catalog
// @Tags configurations
// @Accept json
// @Produce json
// @Param request body dto.CreateConfigurationRequest true "Design"
// @Success 201 {object} dto.ConfigurationResponse
// @Failure 400 {object} map[string]string
// @Router /configurations [post]
func (h *ConfigurationHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateConfigurationRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if msg := validateStruct(&req); msg != "" {
		return errorResponse(c, fiber.StatusBadRequest, msg)
	}

	resp, err := h.configService.Create(c.UserContext(), &req, optionalUserID(c))
	if err != nil {
		return h.fail(c, err, "create")
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update godoc
// @Summary Update a room design
// @Tags configurations
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Configuration ID"
// @Param request body dto.UpdateConfigurationRequest true "Changed fields"
// @Success 200 {object} dto.ConfigurationResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /configurations/{id} [put]
func (h *ConfigurationHandler) Update(c *fiber.Ctx) error {
	actor, err := getActor(c)
	if err != nil {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateConfigurationRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if msg := validateStruct(&req); msg != "" {
		return errorResponse(c, fiber.StatusBadRequest, msg)
	}

	resp, err := h.configService.Update(c.UserContext(), id, &req, actor)
	if err != nil {
		return h.fail(c, err, "update")
	}
	return c.JSON(resp)
}

// Get godoc
// @Summary Get a room design
// @Tags configurations
// @Produce json
// @Param id path int true "Configuration ID"
// @Success 200 {object} dto.ConfigurationResponse
// @Failure 404 {object} map[string]string
// @Router /configurations/{id} [get]
func (h *ConfigurationHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	resp, err := h.configService.Get(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err, "get")
	}
	return c.JSON(resp)
}

// ListMine godoc
// @Summary My room designs
// @Tags configurations
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.ConfigurationResponse
// @Router /configurations/mine [get]
func (h *ConfigurationHandler) ListMine(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	resp, err := h.configService.ListMine(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, err, "list_mine")
	}
	return c.JSON(resp)
}

// ListPublic godoc
// @Summary Public room designs
// @Tags configurations
// @Produce json
// @Param limit query int false "Max items (default 20)"
// @Success 200 {array} dto.ConfigurationResponse
// @Router /configurations/public [get]
func (h *ConfigurationHandler) ListPublic(c *fiber.Ctx) error {
	resp, err := h.configService.ListPublic(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return h.fail(c, err, "list_public")
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary Delete a room design
// @Tags configurations
// @Security Bearer
// @Param id path int true "Configuration ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /configurations/{id} [delete]
func (h *ConfigurationHandler) Delete(c *fiber.Ctx) error {
	actor, err := getActor(c)
	if err != nil {
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.configService.Delete(c.UserContext(), id, actor); err != nil {
		return h.fail(c, err, "delete")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
