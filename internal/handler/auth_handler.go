package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"provafoco/internal/config"
	"provafoco/internal/domain"
	"provafoco/internal/dto"
	"provafoco/internal/logger"
	"provafoco/internal/middleware"
	"provafoco/internal/service"
	"provafoco/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	oauthStateCookieName = "oauthstate"
	defaultCookieName    = "session_token"
	defaultSessionTTL    = 365 * 24 * time.Hour
)

type AuthHandler struct {
	authService service.AuthService
	appConfig   *config.Config
	validator   *validation.Validator
}

func NewAuthHandler(authService service.AuthService, appConfig *config.Config, v *validation.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		appConfig:   appConfig,
		validator:   v,
	}
}

// AdminLogin exchanges the operator password for an admin session.
// @Summary Admin login
// @Description Verifies the configured admin password and sets the session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.AdminLoginRequest true "Password"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} middleware.ErrorResponse "Wrong password"
// @Router /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	token, user, err := h.authService.AdminLogin(c.UserContext(), req.Password)
	if err != nil {
		return err
	}
	h.setSessionCookie(c, token)
	return c.JSON(dto.LoginResponse{Token: token, User: dto.NewUserResponse(user)})
}

// Me returns the signed-in user, or null for anonymous requests.
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse "null when not signed in"
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	session := middleware.SessionFrom(c)
	if session == nil {
		return c.JSON(nil)
	}
	user, err := h.authService.CurrentUser(c.UserContext(), session)
	if err != nil {
		if domain.IsNotFound(err) || domain.HasCode(err, domain.CodeUnauthorized) {
			return c.JSON(nil)
		}
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Logout clears the session cookie.
// @Summary Logout
// @Tags auth
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if session := middleware.SessionFrom(c); session != nil {
		logger.Get().Info("User logout request", zap.String("userID", session.UserID))
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName(),
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.appConfig.Auth.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.JSON(dto.MessageResponse{Message: "signed out"})
}

// GoogleLogin initiates the Google OAuth2 login flow.
// @Summary Initiate Google Login
// @Description Redirects the user to Google's OAuth2 consent page.
// @Tags auth
// @Success 307 {string} string "Redirects to Google"
// @Failure 404 {object} middleware.ErrorResponse "Google login not configured"
// @Router /auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	appLogger := logger.Get()
	if !h.authService.GoogleEnabled() {
		return fiber.NewError(fiber.StatusNotFound, service.ErrGoogleLoginDisabled.Error())
	}

	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		appLogger.Error("Failed to generate random state for OAuth", zap.Error(err))
		return domain.NewInternalError("could not generate oauth state", err)
	}
	state := base64.URLEncoding.EncodeToString(b)

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		Secure:   h.appConfig.Auth.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	return c.Redirect(h.authService.GetGoogleLoginURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback handles the callback from Google OAuth2.
// @Summary Google OAuth2 Callback
// @Description Signs the user in, sets the session cookie and redirects to the site root.
// @Tags auth
// @Param code query string true "Authorization code from Google"
// @Param state query string true "State string for CSRF protection"
// @Success 307 {string} string "Redirects to the site"
// @Failure 400 {object} middleware.ErrorResponse "Invalid state or code"
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	appLogger := logger.Get()
	code := c.Query("code")
	receivedState := c.Query("state")
	expectedState := c.Cookies(oauthStateCookieName)

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.appConfig.Auth.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	if code == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("code")}
	}

	token, user, err := h.authService.HandleGoogleCallback(c.UserContext(), code, receivedState, expectedState)
	if err != nil {
		appLogger.Warn("Google callback failed", zap.Error(err))
		switch {
		case errors.Is(err, service.ErrGoogleLoginDisabled):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidAuthState), errors.Is(err, service.ErrFailedToExchangeToken):
			return domain.NewInvalidInputError(err.Error())
		default:
			return err
		}
	}

	appLogger.Info("Google sign-in completed", zap.String("userID", user.ID))
	h.setSessionCookie(c, token)
	return c.Redirect("/", fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	ttl := h.appConfig.JWT.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName(),
		Value:    token,
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   h.appConfig.Auth.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

func (h *AuthHandler) cookieName() string {
	if h.appConfig.Auth.CookieName != "" {
		return h.appConfig.Auth.CookieName
	}
	return defaultCookieName
}
