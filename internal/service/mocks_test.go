package service

import (
	"context"
	"time"

	"provafoco/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuestionRepository ---
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) List(ctx context.Context, filter domain.QuestionFilter) ([]*domain.Question, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) Count(ctx context.Context, filter domain.QuestionFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *domain.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) Update(ctx context.Context, question *domain.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionRepository) RenameTaxonomy(ctx context.Context, field domain.TaxonomyField, id, name string) error {
	return m.Called(ctx, field, id, name).Error(0)
}

func (m *MockQuestionRepository) DistinctValues(ctx context.Context, field domain.TaxonomyField) ([]string, error) {
	args := m.Called(ctx, field)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockQuestionRepository) ListRecent(ctx context.Context, limit int) ([]domain.QuestionRef, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuestionRef), args.Error(1)
}

func (m *MockQuestionRepository) SetExplanation(ctx context.Context, id, explanation string, generatedByLLM bool) error {
	args := m.Called(ctx, id, explanation, generatedByLLM)
	return args.Error(0)
}

// --- MockCategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) ListActive(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) SoftDelete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// --- MockBankRepository ---
type MockBankRepository struct {
	mock.Mock
}

func (m *MockBankRepository) ListActive(ctx context.Context) ([]*domain.Bank, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Bank), args.Error(1)
}

func (m *MockBankRepository) GetByID(ctx context.Context, id string) (*domain.Bank, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bank), args.Error(1)
}

func (m *MockBankRepository) GetByName(ctx context.Context, name string) (*domain.Bank, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bank), args.Error(1)
}

func (m *MockBankRepository) Create(ctx context.Context, bank *domain.Bank) error {
	return m.Called(ctx, bank).Error(0)
}

func (m *MockBankRepository) Update(ctx context.Context, bank *domain.Bank) error {
	return m.Called(ctx, bank).Error(0)
}

func (m *MockBankRepository) SoftDelete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// --- MockDifficultyLevelRepository ---
type MockDifficultyLevelRepository struct {
	mock.Mock
}

func (m *MockDifficultyLevelRepository) List(ctx context.Context) ([]*domain.DifficultyLevel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DifficultyLevel), args.Error(1)
}

func (m *MockDifficultyLevelRepository) GetByID(ctx context.Context, id string) (*domain.DifficultyLevel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DifficultyLevel), args.Error(1)
}

func (m *MockDifficultyLevelRepository) GetByName(ctx context.Context, name string) (*domain.DifficultyLevel, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DifficultyLevel), args.Error(1)
}

func (m *MockDifficultyLevelRepository) Create(ctx context.Context, level *domain.DifficultyLevel) error {
	return m.Called(ctx, level).Error(0)
}

func (m *MockDifficultyLevelRepository) Update(ctx context.Context, level *domain.DifficultyLevel) error {
	return m.Called(ctx, level).Error(0)
}

func (m *MockDifficultyLevelRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// --- MockUserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByOpenID(ctx context.Context, openID string) (*domain.User, error) {
	args := m.Called(ctx, openID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

// --- MockUserAnswerRepository ---
type MockUserAnswerRepository struct {
	mock.Mock
}

func (m *MockUserAnswerRepository) Create(ctx context.Context, answer *domain.UserAnswer) error {
	return m.Called(ctx, answer).Error(0)
}

func (m *MockUserAnswerRepository) CountAttempts(ctx context.Context, userID, questionID string) (int, error) {
	args := m.Called(ctx, userID, questionID)
	return args.Int(0), args.Error(1)
}

func (m *MockUserAnswerRepository) OutcomesByUser(ctx context.Context, userID string) ([]domain.AnswerOutcome, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AnswerOutcome), args.Error(1)
}

func (m *MockUserAnswerRepository) OutcomesByUserCategory(ctx context.Context, userID, categoryID string) ([]domain.AnswerOutcome, error) {
	args := m.Called(ctx, userID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AnswerOutcome), args.Error(1)
}

func (m *MockUserAnswerRepository) History(ctx context.Context, userID string, limit int) ([]*domain.AnswerRecord, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AnswerRecord), args.Error(1)
}

// --- MockStatsRepository ---
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetUserStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStats), args.Error(1)
}

func (m *MockStatsRepository) SaveUserStats(ctx context.Context, stats *domain.UserStats) error {
	return m.Called(ctx, stats).Error(0)
}

func (m *MockStatsRepository) ListCategoryStats(ctx context.Context, userID string) ([]*domain.UserCategoryStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UserCategoryStats), args.Error(1)
}

func (m *MockStatsRepository) SaveCategoryStats(ctx context.Context, stats *domain.UserCategoryStats) error {
	return m.Called(ctx, stats).Error(0)
}

// --- MockAdRepository ---
type MockAdRepository struct {
	mock.Mock
}

func (m *MockAdRepository) ListActive(ctx context.Context, placement domain.Placement) ([]*domain.Ad, error) {
	args := m.Called(ctx, placement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ad), args.Error(1)
}

func (m *MockAdRepository) ListAll(ctx context.Context) ([]*domain.Ad, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ad), args.Error(1)
}

func (m *MockAdRepository) GetByID(ctx context.Context, id string) (*domain.Ad, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ad), args.Error(1)
}

func (m *MockAdRepository) Create(ctx context.Context, ad *domain.Ad) error {
	return m.Called(ctx, ad).Error(0)
}

func (m *MockAdRepository) Update(ctx context.Context, ad *domain.Ad) error {
	return m.Called(ctx, ad).Error(0)
}

func (m *MockAdRepository) SoftDelete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// --- MockSeoRepository ---
type MockSeoRepository struct {
	mock.Mock
}

func (m *MockSeoRepository) GetByPath(ctx context.Context, path string) (*domain.SeoMetadata, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeoMetadata), args.Error(1)
}

func (m *MockSeoRepository) List(ctx context.Context) ([]*domain.SeoMetadata, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SeoMetadata), args.Error(1)
}

func (m *MockSeoRepository) Create(ctx context.Context, meta *domain.SeoMetadata) error {
	return m.Called(ctx, meta).Error(0)
}

func (m *MockSeoRepository) Update(ctx context.Context, meta *domain.SeoMetadata) error {
	return m.Called(ctx, meta).Error(0)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCache) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockCache) HAppend(ctx context.Context, key, field, value string, ttl time.Duration) error {
	return m.Called(ctx, key, field, value, ttl).Error(0)
}

// --- MockTransactionManager ---
// Runs fn directly and records the call.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Called(ctx)
	return fn(ctx)
}

// --- MockExplanationGenerator ---
type MockExplanationGenerator struct {
	mock.Mock
}

func (m *MockExplanationGenerator) GenerateExplanation(ctx context.Context, question *domain.Question) (string, error) {
	args := m.Called(ctx, question)
	return args.String(0), args.Error(1)
}

// --- MockGuestService ---
type MockGuestService struct {
	mock.Mock
}

func (m *MockGuestService) Log(ctx context.Context, guestID string) ([]domain.GuestAnswer, error) {
	args := m.Called(ctx, guestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GuestAnswer), args.Error(1)
}

func (m *MockGuestService) Append(ctx context.Context, guestID string, entry domain.GuestAnswer) error {
	return m.Called(ctx, guestID, entry).Error(0)
}

func (m *MockGuestService) Clear(ctx context.Context, guestID string) error {
	return m.Called(ctx, guestID).Error(0)
}

func (m *MockGuestService) Stats(ctx context.Context, guestID string) (domain.GuestStats, error) {
	args := m.Called(ctx, guestID)
	return args.Get(0).(domain.GuestStats), args.Error(1)
}

func (m *MockGuestService) Compute(raw []byte) domain.GuestStats {
	return m.Called(raw).Get(0).(domain.GuestStats)
}
