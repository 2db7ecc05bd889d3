package service

import (
	"context"
	"strings"
	"time"

	"provafoco/internal/domain"
	"provafoco/internal/logger"

	"go.uber.org/zap"
)

// TaxonomyService manages categories, banks and difficulty levels.
type TaxonomyService interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) error
	UpdateCategory(ctx context.Context, id string, category *domain.Category) error
	DeleteCategory(ctx context.Context, id string) error

	ListBanks(ctx context.Context) ([]*domain.Bank, error)
	GetBank(ctx context.Context, id string) (*domain.Bank, error)
	CreateBank(ctx context.Context, bank *domain.Bank) error
	UpdateBank(ctx context.Context, id string, bank *domain.Bank) error
	DeleteBank(ctx context.Context, id string) error

	ListDifficultyLevels(ctx context.Context) ([]*domain.DifficultyLevel, error)
	CreateDifficultyLevel(ctx context.Context, level *domain.DifficultyLevel) error
	UpdateDifficultyLevel(ctx context.Context, id string, level *domain.DifficultyLevel) error
	DeleteDifficultyLevel(ctx context.Context, id string) error
}

type taxonomyService struct {
	categories   domain.CategoryRepository
	banks        domain.BankRepository
	difficulties domain.DifficultyLevelRepository
	questions    domain.QuestionRepository
	tx           domain.TransactionManager
	onWrite      func(ctx context.Context)
}

// NewTaxonomyService creates a TaxonomyService. onWrite, when set, runs after every
// successful write so dependent caches can be dropped.
func NewTaxonomyService(
	categories domain.CategoryRepository,
	banks domain.BankRepository,
	difficulties domain.DifficultyLevelRepository,
	questions domain.QuestionRepository,
	tx domain.TransactionManager,
	onWrite func(ctx context.Context),
) TaxonomyService {
	return &taxonomyService{
		categories:   categories,
		banks:        banks,
		difficulties: difficulties,
		questions:    questions,
		tx:           tx,
		onWrite:      onWrite,
	}
}

func (s *taxonomyService) written(ctx context.Context) {
	if s.onWrite != nil {
		s.onWrite(ctx)
	}
}

// renamed updates a taxonomy row and, when its name changed, the copy of the name kept
// on each question, in one transaction.
func (s *taxonomyService) renamed(ctx context.Context, field domain.TaxonomyField, id, before, after string, update func(ctx context.Context) error) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := update(ctx); err != nil {
			return err
		}
		if before == after {
			return nil
		}
		if err := s.questions.RenameTaxonomy(ctx, field, id, after); err != nil {
			return err
		}
		logger.Get().Info("Taxonomy renamed", zap.String("field", string(field)), zap.String("id", id),
			zap.String("from", before), zap.String("to", after))
		return nil
	})
}

// degradeList turns a store outage into an empty result for public list reads.
func degradeList[T any](op string, items []T, err error) ([]T, error) {
	if err != nil {
		if domain.IsStoreUnavailable(err) {
			logger.Get().Warn("Store unavailable, serving empty list", zap.String("operation", op), zap.Error(err))
			return []T{}, nil
		}
		return nil, err
	}
	if items == nil {
		return []T{}, nil
	}
	return items, nil
}

func (s *taxonomyService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categories.ListActive(ctx)
	return degradeList("list categories", categories, err)
}

func (s *taxonomyService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.NewNotFoundError("category", id)
	}
	return category, nil
}

func (s *taxonomyService) CreateCategory(ctx context.Context, category *domain.Category) error {
	category.Name = strings.TrimSpace(category.Name)
	if err := category.Validate(); err != nil {
		return err
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return err
	}
	logger.Get().Info("Category created", zap.String("id", category.ID), zap.String("name", category.Name))
	s.written(ctx)
	return nil
}

func (s *taxonomyService) UpdateCategory(ctx context.Context, id string, category *domain.Category) error {
	existing, err := s.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	category.ID = existing.ID
	category.CreatedAt = existing.CreatedAt
	category.Name = strings.TrimSpace(category.Name)
	category.UpdatedAt = time.Now()
	if err := category.Validate(); err != nil {
		return err
	}
	err = s.renamed(ctx, domain.FieldCategory, id, existing.Name, category.Name, func(ctx context.Context) error {
		return s.categories.Update(ctx, category)
	})
	if err != nil {
		return err
	}
	s.written(ctx)
	return nil
}

func (s *taxonomyService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.SoftDelete(ctx, id); err != nil {
		return err
	}
	logger.Get().Info("Category deactivated", zap.String("id", id))
	s.written(ctx)
	return nil
}

func (s *taxonomyService) ListBanks(ctx context.Context) ([]*domain.Bank, error) {
	banks, err := s.banks.ListActive(ctx)
	return degradeList("list banks", banks, err)
}

func (s *taxonomyService) GetBank(ctx context.Context, id string) (*domain.Bank, error) {
	bank, err := s.banks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bank == nil {
		return nil, domain.NewNotFoundError("bank", id)
	}
	return bank, nil
}

func (s *taxonomyService) CreateBank(ctx context.Context, bank *domain.Bank) error {
	bank.Name = strings.TrimSpace(bank.Name)
	if err := bank.Validate(); err != nil {
		return err
	}
	if err := s.banks.Create(ctx, bank); err != nil {
		return err
	}
	logger.Get().Info("Bank created", zap.String("id", bank.ID), zap.String("name", bank.Name))
	s.written(ctx)
	return nil
}

func (s *taxonomyService) UpdateBank(ctx context.Context, id string, bank *domain.Bank) error {
	existing, err := s.GetBank(ctx, id)
	if err != nil {
		return err
	}
	bank.ID = existing.ID
	bank.CreatedAt = existing.CreatedAt
	bank.Name = strings.TrimSpace(bank.Name)
	bank.UpdatedAt = time.Now()
	if err := bank.Validate(); err != nil {
		return err
	}
	err = s.renamed(ctx, domain.FieldBank, id, existing.Name, bank.Name, func(ctx context.Context) error {
		return s.banks.Update(ctx, bank)
	})
	if err != nil {
		return err
	}
	s.written(ctx)
	return nil
}

func (s *taxonomyService) DeleteBank(ctx context.Context, id string) error {
	if err := s.banks.SoftDelete(ctx, id); err != nil {
		return err
	}
	logger.Get().Info("Bank deactivated", zap.String("id", id))
	s.written(ctx)
	return nil
}

func (s *taxonomyService) ListDifficultyLevels(ctx context.Context) ([]*domain.DifficultyLevel, error) {
	levels, err := s.difficulties.List(ctx)
	return degradeList("list difficulty levels", levels, err)
}

func (s *taxonomyService) CreateDifficultyLevel(ctx context.Context, level *domain.DifficultyLevel) error {
	level.Name = strings.TrimSpace(level.Name)
	if err := level.Validate(); err != nil {
		return err
	}
	if err := s.difficulties.Create(ctx, level); err != nil {
		return err
	}
	s.written(ctx)
	return nil
}

func (s *taxonomyService) UpdateDifficultyLevel(ctx context.Context, id string, level *domain.DifficultyLevel) error {
	existing, err := s.difficulties.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.NewNotFoundError("difficulty level", id)
	}
	level.ID = existing.ID
	level.CreatedAt = existing.CreatedAt
	level.Name = strings.TrimSpace(level.Name)
	if err := level.Validate(); err != nil {
		return err
	}
	err = s.renamed(ctx, domain.FieldDifficulty, id, existing.Name, level.Name, func(ctx context.Context) error {
		return s.difficulties.Update(ctx, level)
	})
	if err != nil {
		return err
	}
	s.written(ctx)
	return nil
}

// DeleteDifficultyLevel hard-deletes a level that no question references, active or not.
func (s *taxonomyService) DeleteDifficultyLevel(ctx context.Context, id string) error {
	inUse, err := s.questions.Count(ctx, domain.QuestionFilter{DifficultyID: id, IncludeInactive: true})
	if err != nil {
		return err
	}
	if inUse > 0 {
		return domain.ValidationErrors{
			domain.NewValidationError("id", "difficulty level is referenced by existing questions"),
		}
	}
	if err := s.difficulties.Delete(ctx, id); err != nil {
		return err
	}
	logger.Get().Info("Difficulty level deleted", zap.String("id", id))
	s.written(ctx)
	return nil
}
