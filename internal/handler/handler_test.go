package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"provafoco/internal/config"
	"provafoco/internal/domain"
	"provafoco/internal/handler"
	"provafoco/internal/middleware"
	"provafoco/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type testDeps struct {
	cfg       *config.Config
	questions *MockQuestionService
	answers   *MockAnswerService
	guests    *MockGuestService
	auth      *MockAuthService
	taxonomy  *MockTaxonomyService
	ads       *MockAdService
	seo       *MockSeoService
	sitemap   *MockSitemapService
	db        *MockPinger
}

func newDeps() *testDeps {
	cfg := &config.Config{}
	cfg.Auth.CookieName = "session_token"
	return &testDeps{
		cfg:       cfg,
		questions: &MockQuestionService{},
		answers:   &MockAnswerService{},
		guests:    &MockGuestService{},
		auth: &MockAuthService{
			ValidateSessionFunc: func(ctx context.Context, token string) (*domain.Session, error) {
				switch token {
				case "user-token":
					return &domain.Session{UserID: "u1", Role: domain.RoleUser}, nil
				case "admin-token":
					return &domain.Session{UserID: "a1", Role: domain.RoleAdmin}, nil
				}
				return nil, domain.NewUnauthorizedError("invalid session")
			},
		},
		taxonomy: &MockTaxonomyService{},
		ads:      &MockAdService{},
		seo:      &MockSeoService{},
		sitemap:  &MockSitemapService{},
		db:       &MockPinger{},
	}
}

func (d *testDeps) app() *fiber.App {
	v := validation.NewValidator()
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	router := &handler.Router{
		Auth:       middleware.NewAuth(d.auth, d.cfg.Auth.CookieName),
		Validation: middleware.NewValidationMiddleware(v),
		System:     handler.NewSystemHandler(d.db, nil, d.sitemap),
		AuthH:      handler.NewAuthHandler(d.auth, d.cfg, v),
		Taxonomy:   handler.NewTaxonomyHandler(d.taxonomy, v),
		Questions:  handler.NewQuestionHandler(d.questions, v),
		Answers:    handler.NewAnswerHandler(d.answers, v),
		Guests:     handler.NewGuestHandler(d.guests),
		Content:    handler.NewContentHandler(d.ads, d.seo, v),
	}
	router.Register(app)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}, headers map[string]string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func decode(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}
