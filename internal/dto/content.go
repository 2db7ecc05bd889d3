package dto

import (
	"time"

	"provafoco/internal/domain"
)

// AdResponse carries the raw ad markup; it is rendered unescaped by the client.
type AdResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Placement string     `json:"placement"`
	AdCode    string     `json:"adCode"`
	Priority  int        `json:"priority"`
	IsActive  bool       `json:"isActive"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

type AdRequest struct {
	Name      string     `json:"name" validate:"required,max=120"`
	Placement string     `json:"placement" validate:"required,oneof=header_banner sidebar_top sidebar_middle sidebar_bottom between_questions footer"`
	AdCode    string     `json:"adCode" validate:"required"`
	Priority  int        `json:"priority" validate:"min=0,max=1000"`
	IsActive  *bool      `json:"isActive"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

func (r *AdRequest) ToDomain() *domain.Ad {
	return &domain.Ad{
		Name:      r.Name,
		Placement: domain.Placement(r.Placement),
		AdCode:    r.AdCode,
		Priority:  r.Priority,
		IsActive:  boolOr(r.IsActive, true),
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
}

func NewAdResponses(ads []*domain.Ad) []AdResponse {
	out := make([]AdResponse, len(ads))
	for i, a := range ads {
		out[i] = NewAdResponse(a)
	}
	return out
}

func NewAdResponse(a *domain.Ad) AdResponse {
	return AdResponse{
		ID:        a.ID,
		Name:      a.Name,
		Placement: string(a.Placement),
		AdCode:    a.AdCode,
		Priority:  a.Priority,
		IsActive:  a.IsActive,
		StartDate: a.StartDate,
		EndDate:   a.EndDate,
	}
}

type SeoResponse struct {
	Path          string `json:"path"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Keywords      string `json:"keywords,omitempty"`
	OgImage       string `json:"ogImage,omitempty"`
	OgTitle       string `json:"ogTitle,omitempty"`
	OgDescription string `json:"ogDescription,omitempty"`
	CanonicalURL  string `json:"canonicalUrl,omitempty"`
}

type SeoRequest struct {
	Path          string `json:"path" validate:"required,startswith=/,max=255"`
	Title         string `json:"title" validate:"required,max=255"`
	Description   string `json:"description" validate:"max=500"`
	Keywords      string `json:"keywords" validate:"max=500"`
	OgImage       string `json:"ogImage" validate:"omitempty,url"`
	OgTitle       string `json:"ogTitle" validate:"max=255"`
	OgDescription string `json:"ogDescription" validate:"max=500"`
	CanonicalURL  string `json:"canonicalUrl" validate:"omitempty,url"`
}

func (r *SeoRequest) ToDomain() *domain.SeoMetadata {
	return &domain.SeoMetadata{
		Path:          r.Path,
		Title:         r.Title,
		Description:   r.Description,
		Keywords:      r.Keywords,
		OgImage:       r.OgImage,
		OgTitle:       r.OgTitle,
		OgDescription: r.OgDescription,
		CanonicalURL:  r.CanonicalURL,
	}
}

func NewSeoResponse(m *domain.SeoMetadata) SeoResponse {
	return SeoResponse{
		Path:          m.Path,
		Title:         m.Title,
		Description:   m.Description,
		Keywords:      m.Keywords,
		OgImage:       m.OgImage,
		OgTitle:       m.OgTitle,
		OgDescription: m.OgDescription,
		CanonicalURL:  m.CanonicalURL,
	}
}

func NewSeoResponses(list []*domain.SeoMetadata) []SeoResponse {
	out := make([]SeoResponse, len(list))
	for i, m := range list {
		out[i] = NewSeoResponse(m)
	}
	return out
}
