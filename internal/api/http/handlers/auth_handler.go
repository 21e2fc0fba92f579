package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-portal/internal/api/dto"
	"github.com/spec-kit/hr-portal/internal/service"
	apperrors "github.com/spec-kit/hr-portal/pkg/util/errorutil"
)

// AuthHandler exposes HR login.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, token, expiresAt, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"email": user.Email,
			"auth":  dto.AuthResponse{Token: token, ExpiresAt: expiresAt},
		},
	})
}
