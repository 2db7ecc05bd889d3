package domain

import (
	"context"
	"strings"
	"time"
)

// Category is a subject or discipline questions are grouped under.
type Category struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Color       string
	SortOrder   int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory creates an active category
func NewCategory(name string, sortOrder int) *Category {
	now := time.Now()
	return &Category{
		Name:      strings.TrimSpace(name),
		SortOrder: sortOrder,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Category) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, NewMissingFieldError("name"))
	}
	if len(c.Name) > 120 {
		errs = append(errs, NewOutOfRangeError("name", len(c.Name), 1, 120))
	}
	return errs.OrNil()
}

// Bank is an examining board that authors the source exams.
type Bank struct {
	ID          string
	Name        string
	Description string
	Logo        string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewBank(name string) *Bank {
	now := time.Now()
	return &Bank{
		Name:      strings.TrimSpace(name),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *Bank) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(b.Name) == "" {
		errs = append(errs, NewMissingFieldError("name"))
	}
	if len(b.Name) > 120 {
		errs = append(errs, NewOutOfRangeError("name", len(b.Name), 1, 120))
	}
	return errs.OrNil()
}

// DifficultyLevel orders questions by Level, not by insertion.
type DifficultyLevel struct {
	ID          string
	Name        string
	Level       int
	Color       string
	Description string
	CreatedAt   time.Time
}

func (d *DifficultyLevel) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, NewMissingFieldError("name"))
	}
	if d.Level < 0 || d.Level > 100 {
		errs = append(errs, NewOutOfRangeError("level", d.Level, 0, 100))
	}
	return errs.OrNil()
}

// Lookups return (nil, nil) when the row does not exist.
type CategoryRepository interface {
	ListActive(ctx context.Context) ([]*Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	SoftDelete(ctx context.Context, id string) error
}

type BankRepository interface {
	ListActive(ctx context.Context) ([]*Bank, error)
	GetByID(ctx context.Context, id string) (*Bank, error)
	GetByName(ctx context.Context, name string) (*Bank, error)
	Create(ctx context.Context, bank *Bank) error
	Update(ctx context.Context, bank *Bank) error
	SoftDelete(ctx context.Context, id string) error
}

type DifficultyLevelRepository interface {
	List(ctx context.Context) ([]*DifficultyLevel, error)
	GetByID(ctx context.Context, id string) (*DifficultyLevel, error)
	GetByName(ctx context.Context, name string) (*DifficultyLevel, error)
	Create(ctx context.Context, level *DifficultyLevel) error
	Update(ctx context.Context, level *DifficultyLevel) error
	Delete(ctx context.Context, id string) error
}
