package handler

import (
	"provafoco/internal/domain"
	"provafoco/internal/middleware"
	"provafoco/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GuestHandler exposes statistics for anonymous devices.
type GuestHandler struct {
	guests service.GuestService
}

func NewGuestHandler(guests service.GuestService) *GuestHandler {
	return &GuestHandler{guests: guests}
}

// GetGuestStats godoc
// @Summary Guest statistics for this device
// @Description Aggregates the answers logged under X-Guest-ID. Without the header the aggregate is empty.
// @Tags guest
// @Produce json
// @Param X-Guest-ID header string false "Anonymous device id"
// @Success 200 {object} domain.GuestStats
// @Router /guest/stats [get]
func (h *GuestHandler) GetGuestStats(c *fiber.Ctx) error {
	guestID := middleware.GuestID(c)
	if guestID == "" {
		return c.JSON(domain.ComputeGuestStats(nil))
	}
	stats, err := h.guests.Stats(c.UserContext(), guestID)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// ComputeGuestStats godoc
// @Summary Compute statistics from a client-held log
// @Description Accepts a JSON array of {questionId, isCorrect, categoryId, timestamp}. Unreadable input yields the empty aggregate.
// @Tags guest
// @Accept json
// @Produce json
// @Success 200 {object} domain.GuestStats
// @Router /guest/stats [post]
func (h *GuestHandler) ComputeGuestStats(c *fiber.Ctx) error {
	return c.JSON(h.guests.Compute(c.Body()))
}

// ClearGuestStats godoc
// @Summary Forget this device's answers
// @Tags guest
// @Param X-Guest-ID header string true "Anonymous device id"
// @Success 204
// @Router /guest/stats [delete]
func (h *GuestHandler) ClearGuestStats(c *fiber.Ctx) error {
	guestID := middleware.GuestID(c)
	if guestID == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("guestId")}
	}
	if err := h.guests.Clear(c.UserContext(), guestID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
