package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-portal/internal/api/dto"
	"github.com/spec-kit/hr-portal/internal/config"
)

// ConfigHandler hands browser clients the public connection parameters.
// Only the anon key ever leaves the server; service credentials stay in
// the Storage/Auth config sections and are never serialized here.
type ConfigHandler struct {
	client config.ClientConfig
}

// NewConfigHandler constructs handler.
func NewConfigHandler(client config.ClientConfig) *ConfigHandler {
	return &ConfigHandler{client: client}
}

// Get handles GET /api/config.
func (h *ConfigHandler) Get(c *fiber.Ctx) error {
	return c.JSON(dto.ClientConfigResponse{
		APIURL:  h.client.PublicAPIURL,
		AnonKey: h.client.AnonKey,
	})
}
