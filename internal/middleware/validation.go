package middleware

import (
	"strconv"
	"strings"

	"provafoco/internal/domain"
	"provafoco/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	GuestIDHeader = "X-Guest-ID"

	GuestIDKey       = "validated_guest_id"
	PlacementKey     = "validated_placement"
	maxGuestIDLength = 64
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(v *validation.Validator) *ValidationMiddleware {
	if v == nil {
		v = validation.NewValidator()
	}
	return &ValidationMiddleware{validator: v}
}

// ValidateIDParam checks a path identifier such as :id.
func (vm *ValidationMiddleware) ValidateIDParam(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errs := vm.validator.ValidateID(param, c.Params(param)); len(errs) > 0 {
			return errs
		}
		return c.Next()
	}
}

// ValidatePlacement parses the placement query parameter.
func (vm *ValidationMiddleware) ValidatePlacement() fiber.Handler {
	return func(c *fiber.Ctx) error {
		placement, errs := vm.validator.ValidatePlacement(c.Query("placement"))
		if len(errs) > 0 {
			return errs
		}
		c.Locals(PlacementKey, placement)
		return c.Next()
	}
}

// ValidateGuestID reads the optional device id header.
func (vm *ValidationMiddleware) ValidateGuestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		guestID := strings.TrimSpace(c.Get(GuestIDHeader))
		if guestID == "" {
			return c.Next()
		}
		if len(guestID) > maxGuestIDLength || strings.ContainsAny(guestID, ": \t") {
			return domain.ValidationErrors{domain.NewInvalidFormatError("guestId", guestID)}
		}
		c.Locals(GuestIDKey, guestID)
		return c.Next()
	}
}

// ValidateQuestionQuery rejects paging parameters that are not non-negative integers.
// Values above the maximum are clamped by the service.
func (vm *ValidationMiddleware) ValidateQuestionQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var errs domain.ValidationErrors
		for _, name := range []string{"limit", "offset", "count"} {
			raw := c.Query(name)
			if raw == "" {
				continue
			}
			if _, err := parseNonNegative(raw); err != nil {
				errs = append(errs, domain.NewInvalidFormatError(name, raw))
			}
		}
		if len(errs) > 0 {
			return errs
		}
		return c.Next()
	}
}

// GuestID returns the validated device id, or "".
func GuestID(c *fiber.Ctx) string {
	id, _ := c.Locals(GuestIDKey).(string)
	return id
}

func parseNonNegative(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
