package middleware

import (
	"context"
	"strings"

	"provafoco/internal/domain"
	"provafoco/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID"  // Key for storing UserID in fiber.Ctx locals
	SessionKey          = "session" // Key for storing *domain.Session in fiber.Ctx locals
)

// SessionValidator resolves a session token.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*domain.Session, error)
}

// Auth builds the three access tiers. The token is read from the session cookie
// first and from a Bearer Authorization header otherwise.
type Auth struct {
	validator  SessionValidator
	cookieName string
}

func NewAuth(validator SessionValidator, cookieName string) *Auth {
	if cookieName == "" {
		cookieName = "session_token"
	}
	return &Auth{validator: validator, cookieName: cookieName}
}

func (a *Auth) token(c *fiber.Ctx) string {
	if v := c.Cookies(a.cookieName); v != "" {
		return v
	}
	header := c.Get(AuthorizationHeader)
	if strings.HasPrefix(header, BearerSchema) {
		return strings.TrimSpace(strings.TrimPrefix(header, BearerSchema))
	}
	return ""
}

// resolve returns the request session, or nil for anonymous requests.
func (a *Auth) resolve(c *fiber.Ctx) (*domain.Session, error) {
	if s, ok := c.Locals(SessionKey).(*domain.Session); ok && s != nil {
		return s, nil
	}
	token := a.token(c)
	if token == "" {
		return nil, nil
	}
	session, err := a.validator.ValidateSession(c.UserContext(), token)
	if err != nil {
		return nil, err
	}
	c.Locals(SessionKey, session)
	c.Locals(UserIDKey, session.UserID)
	return session, nil
}

// OptionalAuth attaches the session when one is presented and valid, and otherwise
// lets the request through as anonymous.
func (a *Auth) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := a.resolve(c); err != nil {
			logger.Get().Debug("OptionalAuth: session rejected, proceeding as anonymous.", zap.Error(err))
		}
		return c.Next()
	}
}

// Protected requires a valid session.
func (a *Auth) Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := a.resolve(c)
		if err != nil {
			if domain.IsStoreUnavailable(err) {
				return err
			}
			return domain.NewUnauthorizedError("invalid or expired session")
		}
		if session == nil {
			return domain.NewUnauthorizedError("authentication required")
		}
		return c.Next()
	}
}

// AdminOnly requires a session whose current role is admin.
func (a *Auth) AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := a.resolve(c)
		if err != nil {
			if domain.IsStoreUnavailable(err) {
				return err
			}
			return domain.NewUnauthorizedError("invalid or expired session")
		}
		if session == nil {
			return domain.NewUnauthorizedError("authentication required")
		}
		if !session.IsAdmin() {
			logger.Get().Warn("Non-admin access to admin route", zap.String("userID", session.UserID), zap.String("path", c.Path()))
			return domain.NewForbiddenError("admin role required")
		}
		return c.Next()
	}
}

// SessionFrom returns the session attached by the auth middleware, or nil.
func SessionFrom(c *fiber.Ctx) *domain.Session {
	s, _ := c.Locals(SessionKey).(*domain.Session)
	return s
}
