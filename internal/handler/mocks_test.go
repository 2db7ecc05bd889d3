package handler_test

import (
	"context"

	"provafoco/internal/domain"
	"provafoco/internal/service"
)

// --- Manual Mocks ---

type MockQuestionService struct {
	ListFunc                func(ctx context.Context, filter domain.QuestionFilter) ([]*domain.Question, error)
	CountFunc               func(ctx context.Context, filter domain.QuestionFilter) (int, error)
	RandomFunc              func(ctx context.Context, count int, filter domain.QuestionFilter) ([]*domain.Question, error)
	GetByIDFunc             func(ctx context.Context, id string, includeInactive bool) (*domain.Question, error)
	FiltersFunc             func(ctx context.Context) (*domain.FilterChoices, error)
	CreateFunc              func(ctx context.Context, q *domain.Question) error
	UpdateFunc              func(ctx context.Context, id string, q *domain.Question) error
	DeleteFunc              func(ctx context.Context, id string) error
	GenerateExplanationFunc func(ctx context.Context, id string) (*domain.Question, error)
}

func (m *MockQuestionService) List(ctx context.Context, filter domain.QuestionFilter) ([]*domain.Question, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	panic("MockQuestionService.ListFunc not implemented")
}
func (m *MockQuestionService) Count(ctx context.Context, filter domain.QuestionFilter) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, filter)
	}
	panic("MockQuestionService.CountFunc not implemented")
}
func (m *MockQuestionService) Random(ctx context.Context, count int, filter domain.QuestionFilter) ([]*domain.Question, error) {
	if m.RandomFunc != nil {
		return m.RandomFunc(ctx, count, filter)
	}
	panic("MockQuestionService.RandomFunc not implemented")
}
func (m *MockQuestionService) GetByID(ctx context.Context, id string, includeInactive bool) (*domain.Question, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id, includeInactive)
	}
	panic("MockQuestionService.GetByIDFunc not implemented")
}
func (m *MockQuestionService) Filters(ctx context.Context) (*domain.FilterChoices, error) {
	if m.FiltersFunc != nil {
		return m.FiltersFunc(ctx)
	}
	panic("MockQuestionService.FiltersFunc not implemented")
}
func (m *MockQuestionService) InvalidateFilters(ctx context.Context) {}
func (m *MockQuestionService) Create(ctx context.Context, q *domain.Question) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, q)
	}
	panic("MockQuestionService.CreateFunc not implemented")
}
func (m *MockQuestionService) Update(ctx context.Context, id string, q *domain.Question) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, q)
	}
	panic("MockQuestionService.UpdateFunc not implemented")
}
func (m *MockQuestionService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	panic("MockQuestionService.DeleteFunc not implemented")
}
func (m *MockQuestionService) GenerateExplanation(ctx context.Context, id string) (*domain.Question, error) {
	if m.GenerateExplanationFunc != nil {
		return m.GenerateExplanationFunc(ctx, id)
	}
	panic("MockQuestionService.GenerateExplanationFunc not implemented")
}

type MockAnswerService struct {
	SubmitFunc        func(ctx context.Context, session *domain.Session, s service.AnswerSubmission) (*service.AnswerResult, error)
	HistoryFunc       func(ctx context.Context, userID string, limit int) ([]*domain.AnswerRecord, error)
	StatsFunc         func(ctx context.Context, userID string) (*domain.UserStats, error)
	CategoryStatsFunc func(ctx context.Context, userID string) ([]*domain.UserCategoryStats, error)
}

func (m *MockAnswerService) Submit(ctx context.Context, session *domain.Session, s service.AnswerSubmission) (*service.AnswerResult, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, session, s)
	}
	panic("MockAnswerService.SubmitFunc not implemented")
}
func (m *MockAnswerService) History(ctx context.Context, userID string, limit int) ([]*domain.AnswerRecord, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, userID, limit)
	}
	panic("MockAnswerService.HistoryFunc not implemented")
}
func (m *MockAnswerService) Stats(ctx context.Context, userID string) (*domain.UserStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, userID)
	}
	panic("MockAnswerService.StatsFunc not implemented")
}
func (m *MockAnswerService) CategoryStats(ctx context.Context, userID string) ([]*domain.UserCategoryStats, error) {
	if m.CategoryStatsFunc != nil {
		return m.CategoryStatsFunc(ctx, userID)
	}
	panic("MockAnswerService.CategoryStatsFunc not implemented")
}

type MockGuestService struct {
	StatsFunc func(ctx context.Context, guestID string) (domain.GuestStats, error)
	ClearFunc func(ctx context.Context, guestID string) error
}

func (m *MockGuestService) Log(ctx context.Context, guestID string) ([]domain.GuestAnswer, error) {
	panic("MockGuestService.Log not implemented")
}
func (m *MockGuestService) Append(ctx context.Context, guestID string, entry domain.GuestAnswer) error {
	panic("MockGuestService.Append not implemented")
}
func (m *MockGuestService) Clear(ctx context.Context, guestID string) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx, guestID)
	}
	panic("MockGuestService.ClearFunc not implemented")
}
func (m *MockGuestService) Stats(ctx context.Context, guestID string) (domain.GuestStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, guestID)
	}
	panic("MockGuestService.StatsFunc not implemented")
}
func (m *MockGuestService) Compute(raw []byte) domain.GuestStats {
	return domain.ComputeGuestStats(domain.ParseGuestLog(raw))
}

type MockAuthService struct {
	AdminLoginFunc           func(ctx context.Context, password string) (string, *domain.User, error)
	GoogleEnabledFunc        func() bool
	HandleGoogleCallbackFunc func(ctx context.Context, code, received, expected string) (string, *domain.User, error)
	ValidateSessionFunc      func(ctx context.Context, token string) (*domain.Session, error)
	CurrentUserFunc          func(ctx context.Context, session *domain.Session) (*domain.User, error)
}

func (m *MockAuthService) AdminLogin(ctx context.Context, password string) (string, *domain.User, error) {
	if m.AdminLoginFunc != nil {
		return m.AdminLoginFunc(ctx, password)
	}
	panic("MockAuthService.AdminLoginFunc not implemented")
}
func (m *MockAuthService) GoogleEnabled() bool {
	if m.GoogleEnabledFunc != nil {
		return m.GoogleEnabledFunc()
	}
	return false
}
func (m *MockAuthService) GetGoogleLoginURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}
func (m *MockAuthService) HandleGoogleCallback(ctx context.Context, code, received, expected string) (string, *domain.User, error) {
	if m.HandleGoogleCallbackFunc != nil {
		return m.HandleGoogleCallbackFunc(ctx, code, received, expected)
	}
	panic("MockAuthService.HandleGoogleCallbackFunc not implemented")
}
func (m *MockAuthService) UpsertUser(ctx context.Context, profile service.UserProfile) (*domain.User, error) {
	panic("MockAuthService.UpsertUser not implemented")
}
func (m *MockAuthService) CreateSessionToken(user *domain.User) (string, error) {
	panic("MockAuthService.CreateSessionToken not implemented")
}
func (m *MockAuthService) ValidateSession(ctx context.Context, token string) (*domain.Session, error) {
	if m.ValidateSessionFunc != nil {
		return m.ValidateSessionFunc(ctx, token)
	}
	return nil, domain.NewUnauthorizedError("invalid session")
}
func (m *MockAuthService) CurrentUser(ctx context.Context, session *domain.Session) (*domain.User, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx, session)
	}
	panic("MockAuthService.CurrentUserFunc not implemented")
}

type MockTaxonomyService struct {
	ListCategoriesFunc        func(ctx context.Context) ([]*domain.Category, error)
	GetCategoryFunc           func(ctx context.Context, id string) (*domain.Category, error)
	CreateCategoryFunc        func(ctx context.Context, c *domain.Category) error
	DeleteDifficultyLevelFunc func(ctx context.Context, id string) error
}

func (m *MockTaxonomyService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	if m.ListCategoriesFunc != nil {
		return m.ListCategoriesFunc(ctx)
	}
	panic("MockTaxonomyService.ListCategoriesFunc not implemented")
}
func (m *MockTaxonomyService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	if m.GetCategoryFunc != nil {
		return m.GetCategoryFunc(ctx, id)
	}
	panic("MockTaxonomyService.GetCategoryFunc not implemented")
}
func (m *MockTaxonomyService) CreateCategory(ctx context.Context, c *domain.Category) error {
	if m.CreateCategoryFunc != nil {
		return m.CreateCategoryFunc(ctx, c)
	}
	panic("MockTaxonomyService.CreateCategoryFunc not implemented")
}
func (m *MockTaxonomyService) UpdateCategory(ctx context.Context, id string, c *domain.Category) error {
	panic("not implemented")
}
func (m *MockTaxonomyService) DeleteCategory(ctx context.Context, id string) error {
	panic("not implemented")
}
func (m *MockTaxonomyService) ListBanks(ctx context.Context) ([]*domain.Bank, error) {
	return []*domain.Bank{}, nil
}
func (m *MockTaxonomyService) GetBank(ctx context.Context, id string) (*domain.Bank, error) {
	return nil, domain.NewNotFoundError("bank", id)
}
func (m *MockTaxonomyService) CreateBank(ctx context.Context, b *domain.Bank) error {
	panic("not implemented")
}
func (m *MockTaxonomyService) UpdateBank(ctx context.Context, id string, b *domain.Bank) error {
	panic("not implemented")
}
func (m *MockTaxonomyService) DeleteBank(ctx context.Context, id string) error {
	panic("not implemented")
}
func (m *MockTaxonomyService) ListDifficultyLevels(ctx context.Context) ([]*domain.DifficultyLevel, error) {
	return []*domain.DifficultyLevel{}, nil
}
func (m *MockTaxonomyService) CreateDifficultyLevel(ctx context.Context, l *domain.DifficultyLevel) error {
	panic("not implemented")
}
func (m *MockTaxonomyService) UpdateDifficultyLevel(ctx context.Context, id string, l *domain.DifficultyLevel) error {
	panic("not implemented")
}
func (m *MockTaxonomyService) DeleteDifficultyLevel(ctx context.Context, id string) error {
	if m.DeleteDifficultyLevelFunc != nil {
		return m.DeleteDifficultyLevelFunc(ctx, id)
	}
	panic("MockTaxonomyService.DeleteDifficultyLevelFunc not implemented")
}

type MockAdService struct {
	ActiveFunc func(ctx context.Context, placement domain.Placement) ([]*domain.Ad, error)
	CreateFunc func(ctx context.Context, ad *domain.Ad) error
}

func (m *MockAdService) Active(ctx context.Context, placement domain.Placement) ([]*domain.Ad, error) {
	if m.ActiveFunc != nil {
		return m.ActiveFunc(ctx, placement)
	}
	panic("MockAdService.ActiveFunc not implemented")
}
func (m *MockAdService) ListAll(ctx context.Context) ([]*domain.Ad, error) {
	return []*domain.Ad{}, nil
}
func (m *MockAdService) Create(ctx context.Context, ad *domain.Ad) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ad)
	}
	panic("MockAdService.CreateFunc not implemented")
}
func (m *MockAdService) Update(ctx context.Context, id string, ad *domain.Ad) error {
	panic("not implemented")
}
func (m *MockAdService) Delete(ctx context.Context, id string) error {
	panic("not implemented")
}

type MockSeoService struct {
	GetByPathFunc func(ctx context.Context, path string) (*domain.SeoMetadata, error)
	UpsertFunc    func(ctx context.Context, meta *domain.SeoMetadata) error
}

func (m *MockSeoService) GetByPath(ctx context.Context, path string) (*domain.SeoMetadata, error) {
	if m.GetByPathFunc != nil {
		return m.GetByPathFunc(ctx, path)
	}
	panic("MockSeoService.GetByPathFunc not implemented")
}
func (m *MockSeoService) List(ctx context.Context) ([]*domain.SeoMetadata, error) {
	return []*domain.SeoMetadata{}, nil
}
func (m *MockSeoService) Upsert(ctx context.Context, meta *domain.SeoMetadata) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, meta)
	}
	panic("MockSeoService.UpsertFunc not implemented")
}

type MockSitemapService struct {
	RenderFunc func(ctx context.Context) ([]byte, error)
}

func (m *MockSitemapService) Render(ctx context.Context) ([]byte, error) {
	if m.RenderFunc != nil {
		return m.RenderFunc(ctx)
	}
	panic("MockSitemapService.RenderFunc not implemented")
}

type MockPinger struct {
	Err error
}

func (m *MockPinger) PingContext(ctx context.Context) error { return m.Err }
