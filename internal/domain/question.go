package domain

import (
	"context"
	"strings"
	"time"
)

const (
	DefaultQuestionLimit = 20
	MaxQuestionLimit     = 100
	DefaultRandomCount   = 10
	MaxRandomCount       = 50
	SitemapQuestionLimit = 5000
)

// Alternatives holds the answer options. E is optional.
type Alternatives struct {
	A string `json:"a"`
	B string `json:"b"`
	C string `json:"c"`
	D string `json:"d"`
	E string `json:"e,omitempty"`
}

// Get returns the text of the alternative for letter and whether it is present.
func (a Alternatives) Get(letter string) (string, bool) {
	var text string
	switch letter {
	case "a":
		text = a.A
	case "b":
		text = a.B
	case "c":
		text = a.C
	case "d":
		text = a.D
	case "e":
		text = a.E
	default:
		return "", false
	}
	return text, strings.TrimSpace(text) != ""
}

// IsAnswerLetter reports whether s is one of the five option letters.
func IsAnswerLetter(s string) bool {
	switch s {
	case "a", "b", "c", "d", "e":
		return true
	}
	return false
}

// Question carries its taxonomy as resolved names. The *ID fields are optional
// back-references used only for joins and id-based filters.
type Question struct {
	ID             string
	CategoryID     string
	BankID         string
	DifficultyID   string
	Category       string
	Bank           string
	Difficulty     string
	Year           string
	Text           string
	Alternatives   Alternatives
	CorrectAnswer  string
	Explanation    string
	Source         string
	IsActive       bool
	GeneratedByLLM bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (q *Question) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(q.Text) == "" {
		errs = append(errs, NewMissingFieldError("questionText"))
	}
	for _, letter := range []string{"a", "b", "c", "d"} {
		if _, ok := q.Alternatives.Get(letter); !ok {
			errs = append(errs, NewMissingFieldError("alternatives."+letter))
		}
	}
	if !IsAnswerLetter(q.CorrectAnswer) {
		errs = append(errs, NewInvalidFormatError("correctAnswer", q.CorrectAnswer))
	} else if _, ok := q.Alternatives.Get(q.CorrectAnswer); !ok {
		errs = append(errs, NewValidationError("correctAnswer", "correctAnswer must reference a non-empty alternative"))
	}
	if len(q.Year) > 16 {
		errs = append(errs, NewOutOfRangeError("year", len(q.Year), 0, 16))
	}
	return errs.OrNil()
}

// QuestionFilter is a conjunction of optional predicates.
type QuestionFilter struct {
	CategoryID      string
	Category        string
	BankID          string
	Bank            string
	DifficultyID    string
	Difficulty      string
	Year            string
	Search          string
	Limit           int
	Offset          int
	IncludeInactive bool
}

// Normalize applies the paging defaults and bounds.
func (f QuestionFilter) Normalize() QuestionFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultQuestionLimit
	}
	if f.Limit > MaxQuestionLimit {
		f.Limit = MaxQuestionLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	f.Search = strings.TrimSpace(f.Search)
	return f
}

// TaxonomyField names one of the free-text classification columns.
type TaxonomyField string

const (
	FieldCategory   TaxonomyField = "category"
	FieldBank       TaxonomyField = "bank"
	FieldDifficulty TaxonomyField = "difficulty"
)

// FilterChoices are the distinct values present among active questions.
type FilterChoices struct {
	Categories   []string `json:"categories"`
	Banks        []string `json:"banks"`
	Difficulties []string `json:"difficulties"`
}

// QuestionRef is the minimal projection used by the sitemap feed.
type QuestionRef struct {
	ID        string
	UpdatedAt time.Time
}

type QuestionRepository interface {
	// List returns matching questions in random order.
	List(ctx context.Context, filter QuestionFilter) ([]*Question, error)
	Count(ctx context.Context, filter QuestionFilter) (int, error)
	GetByID(ctx context.Context, id string) (*Question, error)
	Create(ctx context.Context, question *Question) error
	Update(ctx context.Context, question *Question) error
	SoftDelete(ctx context.Context, id string) error
	DistinctValues(ctx context.Context, field TaxonomyField) ([]string, error)
	// RenameTaxonomy rewrites the stored name on every question, active or not, that references id.
	RenameTaxonomy(ctx context.Context, field TaxonomyField, id, name string) error
	ListRecent(ctx context.Context, limit int) ([]QuestionRef, error)
	SetExplanation(ctx context.Context, id, explanation string, generatedByLLM bool) error
}
