package dto

import (
	"time"

	"provafoco/internal/domain"
)

// AlternativesDTO carries the answer options a..e.
type AlternativesDTO struct {
	A string `json:"a" validate:"required"`
	B string `json:"b" validate:"required"`
	C string `json:"c" validate:"required"`
	D string `json:"d" validate:"required"`
	E string `json:"e,omitempty"`
}

// QuestionResponse represents a question in public API responses.
// The correct answer is only revealed by submitting an answer.
// @Description Question information
type QuestionResponse struct {
	ID           string          `json:"id"`
	CategoryID   string          `json:"categoryId,omitempty"`
	BankID       string          `json:"bankId,omitempty"`
	DifficultyID string          `json:"difficultyId,omitempty"`
	Category     string          `json:"category,omitempty"`
	Bank         string          `json:"bank,omitempty"`
	Difficulty   string          `json:"difficulty,omitempty"`
	Year         string          `json:"year,omitempty"`
	QuestionText string          `json:"questionText"`
	Alternatives AlternativesDTO `json:"alternatives"`
	Source       string          `json:"source,omitempty"`
}

// AdminQuestionResponse adds the answer key and bookkeeping fields for the admin panel.
type AdminQuestionResponse struct {
	QuestionResponse
	CorrectAnswer  string    `json:"correctAnswer"`
	Explanation    string    `json:"explanation,omitempty"`
	IsActive       bool      `json:"isActive"`
	GeneratedByLLM bool      `json:"generatedByLlm"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// QuestionListResponse is a page of questions.
type QuestionListResponse struct {
	Questions []QuestionResponse `json:"questions"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

type CountResponse struct {
	Count int `json:"count"`
}

// QuestionRequest is the admin create/update body. Taxonomy may be given by id or by name.
// @Description Request body for creating or updating a question
type QuestionRequest struct {
	CategoryID    string          `json:"categoryId"`
	BankID        string          `json:"bankId"`
	DifficultyID  string          `json:"difficultyId"`
	Category      string          `json:"category" validate:"max=120"`
	Bank          string          `json:"bank" validate:"max=120"`
	Difficulty    string          `json:"difficulty" validate:"max=120"`
	Year          string          `json:"year" validate:"max=16"`
	QuestionText  string          `json:"questionText" validate:"required"`
	Alternatives  AlternativesDTO `json:"alternatives"`
	CorrectAnswer string          `json:"correctAnswer" validate:"required,oneof=a b c d e"`
	Explanation   string          `json:"explanation"`
	Source        string          `json:"source" validate:"max=255"`
	IsActive      *bool           `json:"isActive"`
}

// ToDomain builds a question from the request; IsActive defaults to true.
func (r *QuestionRequest) ToDomain() *domain.Question {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &domain.Question{
		CategoryID:   r.CategoryID,
		BankID:       r.BankID,
		DifficultyID: r.DifficultyID,
		Category:     r.Category,
		Bank:         r.Bank,
		Difficulty:   r.Difficulty,
		Year:         r.Year,
		Text:         r.QuestionText,
		Alternatives: domain.Alternatives{
			A: r.Alternatives.A,
			B: r.Alternatives.B,
			C: r.Alternatives.C,
			D: r.Alternatives.D,
			E: r.Alternatives.E,
		},
		CorrectAnswer: r.CorrectAnswer,
		Explanation:   r.Explanation,
		Source:        r.Source,
		IsActive:      active,
	}
}

func NewQuestionResponse(q *domain.Question) QuestionResponse {
	return QuestionResponse{
		ID:           q.ID,
		CategoryID:   q.CategoryID,
		BankID:       q.BankID,
		DifficultyID: q.DifficultyID,
		Category:     q.Category,
		Bank:         q.Bank,
		Difficulty:   q.Difficulty,
		Year:         q.Year,
		QuestionText: q.Text,
		Alternatives: AlternativesDTO{
			A: q.Alternatives.A,
			B: q.Alternatives.B,
			C: q.Alternatives.C,
			D: q.Alternatives.D,
			E: q.Alternatives.E,
		},
		Source: q.Source,
	}
}

func NewQuestionResponses(questions []*domain.Question) []QuestionResponse {
	out := make([]QuestionResponse, len(questions))
	for i, q := range questions {
		out[i] = NewQuestionResponse(q)
	}
	return out
}

func NewAdminQuestionResponse(q *domain.Question) AdminQuestionResponse {
	return AdminQuestionResponse{
		QuestionResponse: NewQuestionResponse(q),
		CorrectAnswer:    q.CorrectAnswer,
		Explanation:      q.Explanation,
		IsActive:         q.IsActive,
		GeneratedByLLM:   q.GeneratedByLLM,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
}
