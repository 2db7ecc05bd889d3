package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"provafoco/internal/config"
	"provafoco/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWT:   config.JWTConfig{SecretKey: "testsecretkeydontuseinproduction32bytes!", SessionTTL: time.Hour},
		Admin: config.AdminConfig{Password: "s3nha-forte", OpenID: "admin-user", Name: "Administrador"},
		Auth:  config.AuthConfig{OwnerOpenID: "owner-123"},
	}
}

func newAuthServiceForTest(t *testing.T, cfg *config.Config) (AuthService, *MockUserRepository) {
	t.Helper()
	repo := new(MockUserRepository)
	svc, err := NewAuthService(repo, cfg)
	require.NoError(t, err)
	return svc, repo
}

func TestNewAuthService_RequiresSecret(t *testing.T) {
	cfg := testAuthConfig()
	cfg.JWT.SecretKey = "short"
	_, err := NewAuthService(new(MockUserRepository), cfg)
	assert.Error(t, err)
}

func TestAuthService_AdminLogin_WrongPassword(t *testing.T) {
	svc, repo := newAuthServiceForTest(t, testAuthConfig())

	_, _, err := svc.AdminLogin(context.Background(), "errada")
	assert.True(t, domain.HasCode(err, domain.CodeUnauthorized))
	repo.AssertNotCalled(t, "GetByOpenID", mock.Anything, mock.Anything)
}

func TestAuthService_AdminLogin_CreatesAdminIdentity(t *testing.T) {
	svc, repo := newAuthServiceForTest(t, testAuthConfig())
	ctx := context.Background()

	repo.On("GetByOpenID", mock.Anything, "admin-user").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.OpenID == "admin-user" && u.LoginMethod == LoginMethodAdmin
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = "u-admin"
	}).Return(nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleAdmin
	})).Return(nil)

	token, user, err := svc.AdminLogin(ctx, "s3nha-forte")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, domain.RoleAdmin, user.Role)

	repo.On("GetByID", mock.Anything, "u-admin").Return(user, nil)
	session, err := svc.ValidateSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u-admin", session.UserID)
	assert.True(t, session.IsAdmin())
}

func TestAuthService_AdminLogin_BcryptHashWins(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-secret"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := testAuthConfig()
	cfg.Admin.PasswordHash = string(hash)
	svc, repo := newAuthServiceForTest(t, cfg)

	_, _, err = svc.AdminLogin(context.Background(), "s3nha-forte")
	assert.True(t, domain.HasCode(err, domain.CodeUnauthorized), "plain secret is ignored once a hash is configured")

	repo.On("GetByOpenID", mock.Anything, "admin-user").Return(&domain.User{ID: "u-admin", OpenID: "admin-user", Role: domain.RoleAdmin}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	_, user, err := svc.AdminLogin(context.Background(), "hashed-secret")
	require.NoError(t, err)
	assert.Equal(t, "u-admin", user.ID)
	repo.AssertNumberOfCalls(t, "Update", 1)
}

func TestAuthService_UpsertUser_OwnerElevation(t *testing.T) {
	svc, repo := newAuthServiceForTest(t, testAuthConfig())
	repo.On("GetByOpenID", mock.Anything, "owner-123").Return(nil, nil)
	repo.On("GetByOpenID", mock.Anything, "someone").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	owner, err := svc.UpsertUser(context.Background(), UserProfile{OpenID: "owner-123", LoginMethod: LoginMethodGoogle})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, owner.Role)

	user, err := svc.UpsertUser(context.Background(), UserProfile{OpenID: "someone", LoginMethod: LoginMethodGoogle})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
}

func TestAuthService_UpsertUser_UpdatesExisting(t *testing.T) {
	svc, repo := newAuthServiceForTest(t, testAuthConfig())
	existing := &domain.User{ID: "u1", OpenID: "g-1", Name: "Velho", Email: "a@b.c", Role: domain.RoleUser}
	repo.On("GetByOpenID", mock.Anything, "g-1").Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	user, err := svc.UpsertUser(context.Background(), UserProfile{OpenID: "g-1", Name: "Novo"})
	require.NoError(t, err)
	assert.Equal(t, "Novo", user.Name)
	assert.Equal(t, "a@b.c", user.Email)
	assert.False(t, user.LastSignedIn.IsZero())
}

func TestAuthService_ValidateSession(t *testing.T) {
	svc, repo := newAuthServiceForTest(t, testAuthConfig())
	ctx := context.Background()

	t.Run("Garbage token", func(t *testing.T) {
		_, err := svc.ValidateSession(ctx, "not-a-jwt")
		assert.True(t, domain.HasCode(err, domain.CodeUnauthorized))
	})

	t.Run("Role re-read from store", func(t *testing.T) {
		token, err := svc.CreateSessionToken(&domain.User{ID: "u2", Role: domain.RoleAdmin})
		require.NoError(t, err)
		repo.On("GetByID", mock.Anything, "u2").Return(&domain.User{ID: "u2", Role: domain.RoleUser}, nil).Once()

		session, err := svc.ValidateSession(ctx, token)
		require.NoError(t, err)
		assert.False(t, session.IsAdmin())
	})

	t.Run("Deleted user", func(t *testing.T) {
		token, err := svc.CreateSessionToken(&domain.User{ID: "u3", Role: domain.RoleUser})
		require.NoError(t, err)
		repo.On("GetByID", mock.Anything, "u3").Return(nil, nil).Once()

		_, err = svc.ValidateSession(ctx, token)
		assert.True(t, domain.HasCode(err, domain.CodeUnauthorized))
	})

	t.Run("Store outage trusts token role", func(t *testing.T) {
		token, err := svc.CreateSessionToken(&domain.User{ID: "u4", Role: domain.RoleUser})
		require.NoError(t, err)
		repo.On("GetByID", mock.Anything, "u4").Return(nil, domain.NewStoreUnavailableError("get user", errors.New("refused"))).Once()

		session, err := svc.ValidateSession(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, session.Role)
	})
}

func TestAuthService_ValidateSession_Expired(t *testing.T) {
	cfg := testAuthConfig()
	cfg.JWT.SessionTTL = -time.Minute
	svc, _ := newAuthServiceForTest(t, cfg)

	token, err := svc.CreateSessionToken(&domain.User{ID: "u1", Role: domain.RoleUser})
	require.NoError(t, err)
	_, err = svc.ValidateSession(context.Background(), token)
	assert.True(t, domain.HasCode(err, domain.CodeUnauthorized))
}

func TestAuthService_GoogleCallback_StateMismatch(t *testing.T) {
	cfg := testAuthConfig()
	cfg.GoogleOAuth = config.GoogleOAuthConfig{ClientID: "id", ClientSecret: "secret", RedirectURL: "http://localhost/cb"}
	svc, _ := newAuthServiceForTest(t, cfg)

	assert.True(t, svc.GoogleEnabled())
	assert.Contains(t, svc.GetGoogleLoginURL("st4te"), "state=st4te")

	_, _, err := svc.HandleGoogleCallback(context.Background(), "code", "a", "b")
	assert.ErrorIs(t, err, ErrInvalidAuthState)
}

func TestAuthService_GoogleCallback_Disabled(t *testing.T) {
	svc, _ := newAuthServiceForTest(t, testAuthConfig())
	assert.False(t, svc.GoogleEnabled())
	_, _, err := svc.HandleGoogleCallback(context.Background(), "code", "s", "s")
	assert.ErrorIs(t, err, ErrGoogleLoginDisabled)
}
