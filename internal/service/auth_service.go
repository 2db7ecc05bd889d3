package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"provafoco/internal/config"
	"provafoco/internal/domain"
	"provafoco/internal/dto"
	"provafoco/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	tokenTypeSession  = "session"

	LoginMethodAdmin  = "admin"
	LoginMethodGoogle = "google"
)

var (
	ErrInvalidAuthState      = errors.New("invalid oauth state")
	ErrFailedToExchangeToken = errors.New("failed to exchange oauth token")
	ErrFailedToGetUserInfo   = errors.New("failed to get user info from google")
	ErrInvalidJWTToken       = errors.New("invalid jwt token")
	ErrGoogleLoginDisabled   = errors.New("google login is not configured")
)

// UserProfile is what an identity provider tells us about a user.
type UserProfile struct {
	OpenID      string
	Name        string
	Email       string
	LoginMethod string
}

// AuthService defines the interface for authentication operations.
type AuthService interface {
	AdminLogin(ctx context.Context, password string) (token string, user *domain.User, err error)
	GoogleEnabled() bool
	GetGoogleLoginURL(state string) string
	HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (token string, user *domain.User, err error)
	// UpsertUser creates or refreshes a user. The configured owner is always admin.
	UpsertUser(ctx context.Context, profile UserProfile) (*domain.User, error)
	CreateSessionToken(user *domain.User) (string, error)
	// ValidateSession resolves a token to a session with the role currently stored for the user.
	ValidateSession(ctx context.Context, token string) (*domain.Session, error)
	CurrentUser(ctx context.Context, session *domain.Session) (*domain.User, error)
}

type authServiceImpl struct {
	userRepo     domain.UserRepository
	oauth2Config *oauth2.Config
	appConfig    *config.Config
	userInfoURL  string
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo domain.UserRepository, appConfig *config.Config) (AuthService, error) {
	if len(appConfig.JWT.SecretKey) < 16 {
		return nil, errors.New("jwt secret key must be at least 16 bytes long")
	}
	return &authServiceImpl{
		userRepo: userRepo,
		oauth2Config: &oauth2.Config{
			ClientID:     appConfig.GoogleOAuth.ClientID,
			ClientSecret: appConfig.GoogleOAuth.ClientSecret,
			RedirectURL:  appConfig.GoogleOAuth.RedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		appConfig:   appConfig,
		userInfoURL: googleUserInfoURL,
	}, nil
}

func (s *authServiceImpl) AdminLogin(ctx context.Context, password string) (string, *domain.User, error) {
	if !s.checkAdminPassword(password) {
		logger.Get().Warn("Rejected admin login attempt")
		return "", nil, domain.NewUnauthorizedError("invalid credentials")
	}

	user, err := s.UpsertUser(ctx, UserProfile{
		OpenID:      s.appConfig.Admin.OpenID,
		Name:        s.appConfig.Admin.Name,
		LoginMethod: LoginMethodAdmin,
	})
	if err != nil {
		return "", nil, err
	}
	if user.Role != domain.RoleAdmin {
		user.Role = domain.RoleAdmin
		if err := s.userRepo.Update(ctx, user); err != nil {
			return "", nil, err
		}
	}

	token, err := s.CreateSessionToken(user)
	if err != nil {
		return "", nil, err
	}
	logger.Get().Info("Admin signed in", zap.String("userID", user.ID))
	return token, user, nil
}

// checkAdminPassword prefers the bcrypt hash and falls back to a constant-time compare.
func (s *authServiceImpl) checkAdminPassword(password string) bool {
	if password == "" {
		return false
	}
	if hash := s.appConfig.Admin.PasswordHash; hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	secret := s.appConfig.Admin.Password
	if secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(password)) == 1
}

func (s *authServiceImpl) GoogleEnabled() bool {
	return s.oauth2Config.ClientID != "" && s.oauth2Config.ClientSecret != ""
}

func (s *authServiceImpl) GetGoogleLoginURL(state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

func (s *authServiceImpl) HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (string, *domain.User, error) {
	if !s.GoogleEnabled() {
		return "", nil, ErrGoogleLoginDisabled
	}
	if receivedState == "" || receivedState != expectedState {
		return "", nil, ErrInvalidAuthState
	}

	googleToken, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrFailedToExchangeToken, err)
	}

	client := s.oauth2Config.Client(ctx, googleToken)
	resp, err := client.Get(s.userInfoURL)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrFailedToGetUserInfo, err)
	}
	defer resp.Body.Close()

	var userInfo dto.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return "", nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	if userInfo.ID == "" {
		return "", nil, errors.New("google user info is incomplete")
	}

	user, err := s.UpsertUser(ctx, UserProfile{
		OpenID:      userInfo.ID,
		Name:        userInfo.Name,
		Email:       userInfo.Email,
		LoginMethod: LoginMethodGoogle,
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.CreateSessionToken(user)
	if err != nil {
		return "", nil, err
	}
	logger.Get().Info("User signed in via Google OAuth", zap.String("userID", user.ID))
	return token, user, nil
}

func (s *authServiceImpl) UpsertUser(ctx context.Context, profile UserProfile) (*domain.User, error) {
	if profile.OpenID == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("openId")}
	}
	isOwner := s.appConfig.Auth.OwnerOpenID != "" && profile.OpenID == s.appConfig.Auth.OwnerOpenID
	now := time.Now()

	user, err := s.userRepo.GetByOpenID(ctx, profile.OpenID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &domain.User{
			OpenID:       profile.OpenID,
			Name:         profile.Name,
			Email:        profile.Email,
			LoginMethod:  profile.LoginMethod,
			Role:         domain.RoleUser,
			LastSignedIn: now,
		}
		if isOwner {
			user.Role = domain.RoleAdmin
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		logger.Get().Info("New user created", zap.String("userID", user.ID), zap.String("loginMethod", user.LoginMethod))
		return user, nil
	}

	if profile.Name != "" {
		user.Name = profile.Name
	}
	if profile.Email != "" {
		user.Email = profile.Email
	}
	if profile.LoginMethod != "" {
		user.LoginMethod = profile.LoginMethod
	}
	if isOwner {
		user.Role = domain.RoleAdmin
	}
	user.LastSignedIn = now
	user.UpdatedAt = now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authServiceImpl) CreateSessionToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    user.ID,
		Role:      string(user.Role),
		TokenType: tokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.appConfig.JWT.SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.appConfig.JWT.SecretKey))
}

func (s *authServiceImpl) parseToken(tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.appConfig.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJWTToken, err)
	}
	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid || claims.TokenType != tokenTypeSession || claims.UserID == "" {
		return nil, ErrInvalidJWTToken
	}
	return claims, nil
}

func (s *authServiceImpl) ValidateSession(ctx context.Context, tokenString string) (*domain.Session, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Debug("Session token expired")
		}
		return nil, domain.NewUnauthorizedError("invalid session")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if domain.IsStoreUnavailable(err) {
			logger.Get().Warn("Store unavailable, trusting session role", zap.String("userID", claims.UserID))
			return &domain.Session{UserID: claims.UserID, Role: domain.Role(claims.Role)}, nil
		}
		return nil, err
	}
	if user == nil {
		return nil, domain.NewUnauthorizedError("session user no longer exists")
	}
	return &domain.Session{UserID: user.ID, Role: user.Role}, nil
}

func (s *authServiceImpl) CurrentUser(ctx context.Context, session *domain.Session) (*domain.User, error) {
	if session == nil {
		return nil, nil
	}
	return s.userRepo.GetByID(ctx, session.UserID)
}
