package handler

import (
	"context"

	"provafoco/internal/domain"
	"provafoco/internal/dto"
	"provafoco/internal/logger"
	"provafoco/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// SystemHandler serves the health probe and the sitemap.
type SystemHandler struct {
	db      Pinger
	cache   domain.Cache
	sitemap service.SitemapService
}

// NewSystemHandler builds the handler. cache may be nil when Redis is not configured.
func NewSystemHandler(db Pinger, cache domain.Cache, sitemap service.SitemapService) *SystemHandler {
	return &SystemHandler{db: db, cache: cache, sitemap: sitemap}
}

// Health godoc
// @Summary Health check
// @Description The service stays up without its stores; degraded components are reported.
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *SystemHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{Status: "ok", Database: "up", Cache: "disabled"}
	if err := h.db.PingContext(c.UserContext()); err != nil {
		resp.Database = "down"
		resp.Status = "degraded"
	}
	if h.cache != nil {
		resp.Cache = "up"
		if err := h.cache.Ping(c.UserContext()); err != nil {
			resp.Cache = "down"
			resp.Status = "degraded"
		}
	}
	return c.JSON(resp)
}

// Sitemap godoc
// @Summary XML sitemap
// @Tags system
// @Produce xml
// @Success 200 {string} string "sitemap document"
// @Failure 500 {string} string "plain text error"
// @Router /sitemap.xml [get]
func (h *SystemHandler) Sitemap(c *fiber.Ctx) error {
	body, err := h.sitemap.Render(c.UserContext())
	if err != nil {
		logger.Get().Error("Failed to render sitemap", zap.Error(err))
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(fiber.StatusInternalServerError).SendString("Error generating sitemap")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(body)
}
