package service

import (
	"context"
	"strings"
	"time"

	"provafoco/internal/domain"
	"provafoco/internal/logger"

	"go.uber.org/zap"
)

// AdService selects ads for layout slots and manages them for the admin panel.
type AdService interface {
	Active(ctx context.Context, placement domain.Placement) ([]*domain.Ad, error)
	ListAll(ctx context.Context) ([]*domain.Ad, error)
	Create(ctx context.Context, ad *domain.Ad) error
	Update(ctx context.Context, id string, ad *domain.Ad) error
	Delete(ctx context.Context, id string) error
}

type adService struct {
	repo domain.AdRepository
	now  func() time.Time
}

func NewAdService(repo domain.AdRepository) AdService {
	return &adService{repo: repo, now: time.Now}
}

// Active returns the ads currently shown in placement, highest priority first.
func (s *adService) Active(ctx context.Context, placement domain.Placement) ([]*domain.Ad, error) {
	if _, ok := domain.ParsePlacement(string(placement)); !ok {
		return nil, domain.ValidationErrors{domain.NewInvalidFormatError("placement", placement)}
	}
	now := s.now()
	ads, err := s.repo.ListActive(ctx, placement)
	ads, err = degradeList("active ads", ads, err)
	if err != nil {
		return nil, err
	}
	shown := ads[:0]
	for _, ad := range ads {
		if ad.ActiveAt(now) {
			shown = append(shown, ad)
		}
	}
	return shown, nil
}

func (s *adService) ListAll(ctx context.Context) ([]*domain.Ad, error) {
	ads, err := s.repo.ListAll(ctx)
	return degradeList("list ads", ads, err)
}

func (s *adService) Create(ctx context.Context, ad *domain.Ad) error {
	ad.Name = strings.TrimSpace(ad.Name)
	if err := ad.Validate(); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, ad); err != nil {
		return err
	}
	logger.Get().Info("Ad created", zap.String("id", ad.ID), zap.String("placement", string(ad.Placement)))
	return nil
}

func (s *adService) Update(ctx context.Context, id string, ad *domain.Ad) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.NewNotFoundError("ad", id)
	}
	ad.ID = existing.ID
	ad.CreatedAt = existing.CreatedAt
	ad.Name = strings.TrimSpace(ad.Name)
	if err := ad.Validate(); err != nil {
		return err
	}
	ad.UpdatedAt = s.now()
	return s.repo.Update(ctx, ad)
}

func (s *adService) Delete(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}

// SeoService serves per-route metadata.
type SeoService interface {
	GetByPath(ctx context.Context, path string) (*domain.SeoMetadata, error)
	List(ctx context.Context) ([]*domain.SeoMetadata, error)
	// Upsert creates the entry for meta.Path or replaces the existing one.
	Upsert(ctx context.Context, meta *domain.SeoMetadata) error
}

type seoService struct {
	repo domain.SeoRepository
}

func NewSeoService(repo domain.SeoRepository) SeoService {
	return &seoService{repo: repo}
}

func (s *seoService) GetByPath(ctx context.Context, path string) (*domain.SeoMetadata, error) {
	meta, err := s.repo.GetByPath(ctx, path)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, domain.NewNotFoundError("seo metadata", path)
	}
	return meta, nil
}

func (s *seoService) List(ctx context.Context) ([]*domain.SeoMetadata, error) {
	list, err := s.repo.List(ctx)
	return degradeList("list seo metadata", list, err)
}

func (s *seoService) Upsert(ctx context.Context, meta *domain.SeoMetadata) error {
	meta.Path = strings.TrimSpace(meta.Path)
	if err := meta.Validate(); err != nil {
		return err
	}
	existing, err := s.repo.GetByPath(ctx, meta.Path)
	if err != nil {
		return err
	}
	if existing == nil {
		return s.repo.Create(ctx, meta)
	}
	meta.ID = existing.ID
	meta.CreatedAt = existing.CreatedAt
	meta.UpdatedAt = time.Now()
	return s.repo.Update(ctx, meta)
}
