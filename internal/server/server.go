package server

import (
	"context"
	"time"

	"provafoco/internal/config"
	"provafoco/internal/domain"
	"provafoco/internal/handler"
	"provafoco/internal/logger"
	"provafoco/internal/middleware"
	"provafoco/internal/repository"
	"provafoco/internal/service"
	"provafoco/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Deps are the infrastructure handles. Cache and Explainer are optional.
type Deps struct {
	DB        *sqlx.DB
	Cache     domain.Cache
	Explainer domain.ExplanationGenerator
}

// New assembles repositories, services and handlers into a fiber app.
func New(cfg *config.Config, deps Deps) (*fiber.App, error) {
	db := deps.DB

	categoryRepo := repository.NewSQLXCategoryRepository(db)
	bankRepo := repository.NewSQLXBankRepository(db)
	difficultyRepo := repository.NewSQLXDifficultyLevelRepository(db)
	questionRepo := repository.NewSQLXQuestionRepository(db)
	userRepo := repository.NewSQLXUserRepository(db)
	answerRepo := repository.NewSQLXUserAnswerRepository(db)
	statsRepo := repository.NewSQLXStatsRepository(db)
	adRepo := repository.NewSQLXAdRepository(db)
	seoRepo := repository.NewSQLXSeoRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	questionService := service.NewQuestionService(
		questionRepo, categoryRepo, bankRepo, difficultyRepo,
		deps.Cache, deps.Explainer, cfg.Cache.FiltersTTL,
	)
	// renaming a category or bank changes the filter choices
	taxonomyService := service.NewTaxonomyService(
		categoryRepo, bankRepo, difficultyRepo, questionRepo, txManager,
		questionService.InvalidateFilters,
	)
	guestService := service.NewGuestService(deps.Cache, cfg.Cache.GuestLogTTL)
	answerService := service.NewAnswerService(questionRepo, answerRepo, statsRepo, txManager, guestService)
	adService := service.NewAdService(adRepo)
	seoService := service.NewSeoService(seoRepo)
	sitemapService := service.NewSitemapService(questionRepo, cfg.Site.BaseURL)

	authService, err := service.NewAuthService(userRepo, cfg)
	if err != nil {
		return nil, err
	}

	v := validation.NewValidator()
	router := &handler.Router{
		Auth:       middleware.NewAuth(authService, cfg.Auth.CookieName),
		Validation: middleware.NewValidationMiddleware(v),
		System:     handler.NewSystemHandler(db, deps.Cache, sitemapService),
		AuthH:      handler.NewAuthHandler(authService, cfg, v),
		Taxonomy:   handler.NewTaxonomyHandler(taxonomyService, v),
		Questions:  handler.NewQuestionHandler(questionService, v),
		Answers:    handler.NewAnswerHandler(answerService, v),
		Guests:     handler.NewGuestHandler(guestService),
		Content:    handler.NewContentHandler(adService, seoService, v),
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  timeoutOr(cfg.Server.ReadTimeout),
		WriteTimeout: timeoutOr(cfg.Server.WriteTimeout),
		IdleTimeout:  20 * time.Second,
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins(cfg.Server.AllowOrigins),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization," + middleware.GuestIDHeader,
		AllowCredentials: cfg.Server.AllowOrigins != "" && cfg.Server.AllowOrigins != "*",
		MaxAge:           300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	router.Register(app)

	go warmFilters(questionService.Filters)

	return app, nil
}

// warmFilters fills the filter choices cache ahead of the first request.
func warmFilters(load func(ctx context.Context) (*domain.FilterChoices, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := load(ctx); err != nil {
		logger.Get().Warn("Failed to warm filter choices cache", zap.Error(err))
	}
}

func timeoutOr(d time.Duration) time.Duration {
	if d <= 0 {
		return 20 * time.Second
	}
	return d
}

func allowOrigins(origins string) string {
	if origins == "" {
		return "*"
	}
	return origins
}
