package handlers

import (
	"errors"

	"vitrifiye-studio/internal/dto"
	"vitrifiye-studio/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler issues studio accounts and token pairs. Accounts are optional:
// quizzes and designs work anonymously, signing in only links them to a user.
type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// bindAuthRequest parses and validates the body, writing the 400 itself.
func bindAuthRequest(c *fiber.Ctx, req any) bool {
	if err := c.BodyParser(req); err != nil {
		_ = errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		return false
	}
	if msg := validateStruct(req); msg != "" {
		_ = errorResponse(c, fiber.StatusBadRequest, msg)
		return false
	}
	return true
}

// authFailure maps account errors to responses. Unknown errors are logged
// under action and hidden behind a 500.
func (h *AuthHandler) authFailure(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, service.ErrUserExists):
		return errorResponse(c, fiber.StatusConflict, "An account with this email already exists")
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUserNotFound):
		return errorResponse(c, fiber.StatusUnauthorized, "Email or password is incorrect")
	}
	h.logger.Error("Account request failed", zap.String("action", action), zap.Error(err))
	return errorResponse(c, fiber.StatusInternalServerError, "Could not complete "+action)
}

// Register godoc
// @Summary Create a studio account
// @Description Opens an account so quiz results and saved bathroom designs are kept in the profile. Returns a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Username, email and password"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if !bindAuthRequest(c, &req) {
		return nil
	}

	resp, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return h.authFailure(c, "registration", err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login godoc
// @Summary Sign in
// @Description Exchanges email and password for access and refresh tokens used by the profile and design endpoints
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Email and password"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if !bindAuthRequest(c, &req) {
		return nil
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return h.authFailure(c, "sign-in", err)
	}
	return c.JSON(resp)
}

// RefreshToken godoc
// @Summary Renew the session
// @Description Issues a fresh token pair from a refresh token. Access tokens cannot be used here.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if !bindAuthRequest(c, &req) {
		return nil
	}

	resp, err := h.authService.RefreshToken(c.UserContext(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrUserNotFound) {
			return errorResponse(c, fiber.StatusUnauthorized, "Session expired, please sign in again")
		}
		return h.authFailure(c, "session renewal", err)
	}
	return c.JSON(resp)
}
