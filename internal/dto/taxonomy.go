package dto

import (
	"time"

	"provafoco/internal/domain"
)

// CategoryResponse represents a category in the API response
// @Description Category information
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
	Order       int    `json:"order"`
	IsActive    bool   `json:"isActive"`
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=500"`
	Icon        string `json:"icon" validate:"max=64"`
	Color       string `json:"color" validate:"max=32"`
	Order       int    `json:"order" validate:"min=0"`
	IsActive    *bool  `json:"isActive"`
}

type BankResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Logo        string `json:"logo,omitempty"`
	IsActive    bool   `json:"isActive"`
}

type BankRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=500"`
	Logo        string `json:"logo" validate:"max=255"`
	IsActive    *bool  `json:"isActive"`
}

type DifficultyLevelResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Level       int       `json:"level"`
	Color       string    `json:"color,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type DifficultyLevelRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Level       int    `json:"level" validate:"min=0,max=100"`
	Color       string `json:"color" validate:"max=32"`
	Description string `json:"description" validate:"max=500"`
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func (r *CategoryRequest) ToDomain() *domain.Category {
	c := domain.NewCategory(r.Name, r.Order)
	c.Description = r.Description
	c.Icon = r.Icon
	c.Color = r.Color
	c.IsActive = boolOr(r.IsActive, true)
	return c
}

func (r *BankRequest) ToDomain() *domain.Bank {
	b := domain.NewBank(r.Name)
	b.Description = r.Description
	b.Logo = r.Logo
	b.IsActive = boolOr(r.IsActive, true)
	return b
}

func (r *DifficultyLevelRequest) ToDomain() *domain.DifficultyLevel {
	return &domain.DifficultyLevel{Name: r.Name, Level: r.Level, Color: r.Color, Description: r.Description}
}

func NewCategoryResponses(categories []*domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = NewCategoryResponse(c)
	}
	return out
}

func NewCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
		Color:       c.Color,
		Order:       c.SortOrder,
		IsActive:    c.IsActive,
	}
}

func NewBankResponses(banks []*domain.Bank) []BankResponse {
	out := make([]BankResponse, len(banks))
	for i, b := range banks {
		out[i] = NewBankResponse(b)
	}
	return out
}

func NewBankResponse(b *domain.Bank) BankResponse {
	return BankResponse{ID: b.ID, Name: b.Name, Description: b.Description, Logo: b.Logo, IsActive: b.IsActive}
}

func NewDifficultyLevelResponses(levels []*domain.DifficultyLevel) []DifficultyLevelResponse {
	out := make([]DifficultyLevelResponse, len(levels))
	for i, l := range levels {
		out[i] = NewDifficultyLevelResponse(l)
	}
	return out
}

func NewDifficultyLevelResponse(l *domain.DifficultyLevel) DifficultyLevelResponse {
	return DifficultyLevelResponse{
		ID:          l.ID,
		Name:        l.Name,
		Level:       l.Level,
		Color:       l.Color,
		Description: l.Description,
		CreatedAt:   l.CreatedAt,
	}
}
