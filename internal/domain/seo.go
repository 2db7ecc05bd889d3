package domain

import (
	"context"
	"strings"
	"time"
)

// SeoMetadata is keyed by route path.
type SeoMetadata struct {
	ID            string
	Path          string
	Title         string
	Description   string
	Keywords      string
	OgImage       string
	OgTitle       string
	OgDescription string
	CanonicalURL  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (m *SeoMetadata) Validate() error {
	var errs ValidationErrors
	if !strings.HasPrefix(m.Path, "/") {
		errs = append(errs, NewInvalidFormatError("path", m.Path))
	}
	if strings.TrimSpace(m.Title) == "" {
		errs = append(errs, NewMissingFieldError("title"))
	}
	return errs.OrNil()
}

type SeoRepository interface {
	GetByPath(ctx context.Context, path string) (*SeoMetadata, error)
	List(ctx context.Context) ([]*SeoMetadata, error)
	Create(ctx context.Context, meta *SeoMetadata) error
	Update(ctx context.Context, meta *SeoMetadata) error
}
