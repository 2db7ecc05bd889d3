package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"provafoco/internal/cache"
	"provafoco/internal/domain"
	"provafoco/internal/logger"
	"provafoco/internal/observability"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ErrExplainerNotConfigured is wrapped in an LLM service error when no model is set up.
var ErrExplainerNotConfigured = errors.New("explanation generator not configured")

// QuestionService defines the question catalogue operations.
type QuestionService interface {
	List(ctx context.Context, filter domain.QuestionFilter) ([]*domain.Question, error)
	Count(ctx context.Context, filter domain.QuestionFilter) (int, error)
	Random(ctx context.Context, count int, filter domain.QuestionFilter) ([]*domain.Question, error)
	// GetByID hides inactive questions unless includeInactive is set.
	GetByID(ctx context.Context, id string, includeInactive bool) (*domain.Question, error)
	Filters(ctx context.Context) (*domain.FilterChoices, error)
	InvalidateFilters(ctx context.Context)

	Create(ctx context.Context, question *domain.Question) error
	Update(ctx context.Context, id string, question *domain.Question) error
	Delete(ctx context.Context, id string) error
	GenerateExplanation(ctx context.Context, id string) (*domain.Question, error)
}

type questionService struct {
	repo         domain.QuestionRepository
	categories   domain.CategoryRepository
	banks        domain.BankRepository
	difficulties domain.DifficultyLevelRepository
	cache        domain.Cache
	explainer    domain.ExplanationGenerator
	filtersTTL   time.Duration
	group        singleflight.Group
}

// NewQuestionService creates a QuestionService. cache and explainer may be nil.
func NewQuestionService(
	repo domain.QuestionRepository,
	categories domain.CategoryRepository,
	banks domain.BankRepository,
	difficulties domain.DifficultyLevelRepository,
	cache domain.Cache,
	explainer domain.ExplanationGenerator,
	filtersTTL time.Duration,
) QuestionService {
	return &questionService{
		repo:         repo,
		categories:   categories,
		banks:        banks,
		difficulties: difficulties,
		cache:        cache,
		explainer:    explainer,
		filtersTTL:   filtersTTL,
	}
}

func (s *questionService) List(ctx context.Context, filter domain.QuestionFilter) ([]*domain.Question, error) {
	filter = filter.Normalize()
	ctx, span := observability.StartSpan(ctx, "QuestionService.List",
		"filter.category", filter.Category,
		"filter.bank", filter.Bank,
		"filter.limit", strconv.Itoa(filter.Limit))
	defer span.End()

	questions, err := s.repo.List(ctx, filter)
	return degradeList("list questions", questions, err)
}

func (s *questionService) Count(ctx context.Context, filter domain.QuestionFilter) (int, error) {
	count, err := s.repo.Count(ctx, filter.Normalize())
	if err != nil {
		if domain.IsStoreUnavailable(err) {
			logger.Get().Warn("Store unavailable, reporting zero questions", zap.Error(err))
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

func (s *questionService) Random(ctx context.Context, count int, filter domain.QuestionFilter) ([]*domain.Question, error) {
	if count <= 0 {
		count = domain.DefaultRandomCount
	}
	if count > domain.MaxRandomCount {
		count = domain.MaxRandomCount
	}
	filter.Limit = count
	filter.Offset = 0
	return s.List(ctx, filter)
}

func (s *questionService) GetByID(ctx context.Context, id string, includeInactive bool) (*domain.Question, error) {
	question, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if question == nil || (!question.IsActive && !includeInactive) {
		return nil, domain.NewNotFoundError("question", id)
	}
	return question, nil
}

// Filters returns the distinct taxonomy names present among active questions.
func (s *questionService) Filters(ctx context.Context) (*domain.FilterChoices, error) {
	key := cache.FilterChoicesKey()
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var choices domain.FilterChoices
			if jsonErr := json.Unmarshal([]byte(cached), &choices); jsonErr == nil {
				return &choices, nil
			}
			logger.Get().Warn("Discarding unreadable cached filter choices", zap.String("key", key))
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Filter choices cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.loadFilters(ctx)
	})
	if err != nil {
		if domain.IsStoreUnavailable(err) {
			logger.Get().Warn("Store unavailable, serving empty filter choices", zap.Error(err))
			return emptyFilterChoices(), nil
		}
		return nil, err
	}
	choices := v.(*domain.FilterChoices)

	if s.cache != nil {
		if data, jsonErr := json.Marshal(choices); jsonErr == nil {
			if setErr := s.cache.Set(ctx, key, string(data), s.filtersTTL); setErr != nil {
				logger.Get().Warn("Failed to cache filter choices", zap.Error(setErr))
			}
		}
	}
	return choices, nil
}

func (s *questionService) loadFilters(ctx context.Context) (*domain.FilterChoices, error) {
	choices := emptyFilterChoices()
	g, gctx := errgroup.WithContext(ctx)
	load := func(field domain.TaxonomyField, dst *[]string) {
		g.Go(func() error {
			values, err := s.repo.DistinctValues(gctx, field)
			if err != nil {
				return err
			}
			if values != nil {
				*dst = values
			}
			return nil
		})
	}
	load(domain.FieldCategory, &choices.Categories)
	load(domain.FieldBank, &choices.Banks)
	load(domain.FieldDifficulty, &choices.Difficulties)
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return choices, nil
}

func emptyFilterChoices() *domain.FilterChoices {
	return &domain.FilterChoices{Categories: []string{}, Banks: []string{}, Difficulties: []string{}}
}

func (s *questionService) InvalidateFilters(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.FilterChoicesKey()); err != nil {
		logger.Get().Warn("Failed to invalidate filter choices", zap.Error(err))
	}
}

func (s *questionService) Create(ctx context.Context, question *domain.Question) error {
	if err := s.prepare(ctx, question); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, question); err != nil {
		return err
	}
	logger.Get().Info("Question created", zap.String("id", question.ID), zap.String("category", question.Category))
	s.InvalidateFilters(ctx)
	return nil
}

func (s *questionService) Update(ctx context.Context, id string, question *domain.Question) error {
	existing, err := s.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	question.ID = existing.ID
	question.CreatedAt = existing.CreatedAt
	if question.Explanation == existing.Explanation {
		question.GeneratedByLLM = existing.GeneratedByLLM
	}
	if err := s.prepare(ctx, question); err != nil {
		return err
	}
	question.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, question); err != nil {
		return err
	}
	s.InvalidateFilters(ctx)
	return nil
}

func (s *questionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	logger.Get().Info("Question deactivated", zap.String("id", id))
	s.InvalidateFilters(ctx)
	return nil
}

// prepare validates the question and resolves its taxonomy to the canonical names.
func (s *questionService) prepare(ctx context.Context, q *domain.Question) error {
	q.Text = strings.TrimSpace(q.Text)
	q.Year = strings.TrimSpace(q.Year)
	if err := q.Validate(); err != nil {
		return err
	}

	var errs domain.ValidationErrors
	if err := s.resolveCategory(ctx, q, &errs); err != nil {
		return err
	}
	if err := s.resolveBank(ctx, q, &errs); err != nil {
		return err
	}
	if err := s.resolveDifficulty(ctx, q, &errs); err != nil {
		return err
	}
	return errs.OrNil()
}

func (s *questionService) resolveCategory(ctx context.Context, q *domain.Question, errs *domain.ValidationErrors) error {
	q.Category = strings.TrimSpace(q.Category)
	if q.CategoryID != "" {
		c, err := s.categories.GetByID(ctx, q.CategoryID)
		if err != nil {
			return err
		}
		if c == nil {
			*errs = append(*errs, domain.NewValidationError("categoryId", "category does not exist"))
			return nil
		}
		q.Category = c.Name
		return nil
	}
	if q.Category == "" {
		return nil
	}
	c, err := s.categories.GetByName(ctx, q.Category)
	if err != nil {
		return err
	}
	if c != nil {
		q.CategoryID = c.ID
	}
	return nil
}

func (s *questionService) resolveBank(ctx context.Context, q *domain.Question, errs *domain.ValidationErrors) error {
	q.Bank = strings.TrimSpace(q.Bank)
	if q.BankID != "" {
		b, err := s.banks.GetByID(ctx, q.BankID)
		if err != nil {
			return err
		}
		if b == nil {
			*errs = append(*errs, domain.NewValidationError("bankId", "bank does not exist"))
			return nil
		}
		q.Bank = b.Name
		return nil
	}
	if q.Bank == "" {
		return nil
	}
	b, err := s.banks.GetByName(ctx, q.Bank)
	if err != nil {
		return err
	}
	if b != nil {
		q.BankID = b.ID
	}
	return nil
}

func (s *questionService) resolveDifficulty(ctx context.Context, q *domain.Question, errs *domain.ValidationErrors) error {
	q.Difficulty = strings.TrimSpace(q.Difficulty)
	if q.DifficultyID != "" {
		d, err := s.difficulties.GetByID(ctx, q.DifficultyID)
		if err != nil {
			return err
		}
		if d == nil {
			*errs = append(*errs, domain.NewValidationError("difficultyId", "difficulty level does not exist"))
			return nil
		}
		q.Difficulty = d.Name
		return nil
	}
	if q.Difficulty == "" {
		return nil
	}
	d, err := s.difficulties.GetByName(ctx, q.Difficulty)
	if err != nil {
		return err
	}
	if d != nil {
		q.DifficultyID = d.ID
	}
	return nil
}

// GenerateExplanation asks the model for an explanation and stores it on the question.
func (s *questionService) GenerateExplanation(ctx context.Context, id string) (*domain.Question, error) {
	if s.explainer == nil {
		return nil, domain.NewLLMServiceError(ErrExplainerNotConfigured)
	}
	question, err := s.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}

	ctx, span := observability.StartSpan(ctx, "QuestionService.GenerateExplanation", "question.id", id)
	defer span.End()

	explanation, err := s.explainer.GenerateExplanation(ctx, question)
	if err != nil {
		logger.Get().Error("Explanation generation failed", zap.String("questionID", id), zap.Error(err))
		return nil, err
	}
	if err := s.repo.SetExplanation(ctx, id, explanation, true); err != nil {
		return nil, err
	}
	question.Explanation = explanation
	question.GeneratedByLLM = true
	return question, nil
}
