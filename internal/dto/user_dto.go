package dto

import (
	"provafoco/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// GoogleUserInfo holds user information obtained from Google.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// AuthClaims defines the custom claims for the session JWT.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"` // always "session"
	jwt.RegisteredClaims
}

// AdminLoginRequest carries the shared operator secret.
// @Description Request body for the admin login
type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// UserResponse defines the structure for the signed-in user.
type UserResponse struct {
	ID          string `json:"id"`
	OpenID      string `json:"openId"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	LoginMethod string `json:"loginMethod,omitempty"`
	Role        string `json:"role"`
}

// MessageResponse represents a generic message response.
// @Description Generic message response
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse mirrors the error body written by the error handler, for API docs.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func NewUserResponse(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:          u.ID,
		OpenID:      u.OpenID,
		Name:        u.Name,
		Email:       u.Email,
		LoginMethod: u.LoginMethod,
		Role:        string(u.Role),
	}
}

// LoginResponse is returned after a successful sign-in. The token is also set as a cookie.
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// HealthResponse reports the reachability of the backing stores.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}
