package domain

import (
	"context"
	"strings"
	"time"
)

// Placement is a named layout slot.
type Placement string

const (
	PlacementHeaderBanner     Placement = "header_banner"
	PlacementSidebarTop       Placement = "sidebar_top"
	PlacementSidebarMiddle    Placement = "sidebar_middle"
	PlacementSidebarBottom    Placement = "sidebar_bottom"
	PlacementBetweenQuestions Placement = "between_questions"
	PlacementFooter           Placement = "footer"
)

var Placements = []Placement{
	PlacementHeaderBanner,
	PlacementSidebarTop,
	PlacementSidebarMiddle,
	PlacementSidebarBottom,
	PlacementBetweenQuestions,
	PlacementFooter,
}

func ParsePlacement(s string) (Placement, bool) {
	for _, p := range Placements {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// Ad holds operator-authored markup that is served verbatim.
type Ad struct {
	ID        string
	Name      string
	Placement Placement
	AdCode    string
	Priority  int
	IsActive  bool
	StartDate *time.Time
	EndDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveAt reports whether the ad may be shown at now.
func (a *Ad) ActiveAt(now time.Time) bool {
	if !a.IsActive {
		return false
	}
	if a.StartDate != nil && a.StartDate.After(now) {
		return false
	}
	if a.EndDate != nil && a.EndDate.Before(now) {
		return false
	}
	return true
}

func (a *Ad) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(a.Name) == "" {
		errs = append(errs, NewMissingFieldError("name"))
	}
	if _, ok := ParsePlacement(string(a.Placement)); !ok {
		errs = append(errs, NewInvalidFormatError("placement", a.Placement))
	}
	if strings.TrimSpace(a.AdCode) == "" {
		errs = append(errs, NewMissingFieldError("adCode"))
	}
	if a.StartDate != nil && a.EndDate != nil && a.EndDate.Before(*a.StartDate) {
		errs = append(errs, NewValidationError("endDate", "endDate must not be before startDate"))
	}
	return errs.OrNil()
}

type AdRepository interface {
	// ListActive returns the enabled ads of placement, highest priority first.
	// The date window is left to Ad.ActiveAt.
	ListActive(ctx context.Context, placement Placement) ([]*Ad, error)
	ListAll(ctx context.Context) ([]*Ad, error)
	GetByID(ctx context.Context, id string) (*Ad, error)
	Create(ctx context.Context, ad *Ad) error
	Update(ctx context.Context, ad *Ad) error
	SoftDelete(ctx context.Context, id string) error
}
