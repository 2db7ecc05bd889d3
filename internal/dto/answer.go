package dto

import (
	"time"

	"provafoco/internal/domain"
)

// SubmitAnswerRequest represents one answer attempt.
// @Description Request body for submitting an answer
type SubmitAnswerRequest struct {
	QuestionID     string `json:"questionId" validate:"required"`
	SelectedAnswer string `json:"selectedAnswer" validate:"required,oneof=a b c d e"`
	TimeSpent      *int   `json:"timeSpent,omitempty" validate:"omitempty,min=0,max=86400"`
}

// SubmitAnswerResponse reveals the answer key; explanation only when one exists.
type SubmitAnswerResponse struct {
	IsCorrect     bool   `json:"isCorrect"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation,omitempty"`
}

type AnswerHistoryItem struct {
	ID             string    `json:"id"`
	QuestionID     string    `json:"questionId"`
	QuestionText   string    `json:"questionText"`
	Category       string    `json:"category,omitempty"`
	SelectedAnswer string    `json:"selectedAnswer"`
	IsCorrect      bool      `json:"isCorrect"`
	TimeSpent      *int      `json:"timeSpent,omitempty"`
	AttemptNumber  int       `json:"attemptNumber"`
	CreatedAt      time.Time `json:"createdAt"`
}

type UserStatsResponse struct {
	TotalAnswered  int        `json:"totalAnswered"`
	TotalCorrect   int        `json:"totalCorrect"`
	TotalIncorrect int        `json:"totalIncorrect"`
	Accuracy       int        `json:"accuracy"`
	CurrentStreak  int        `json:"currentStreak"`
	BestStreak     int        `json:"bestStreak"`
	TotalTimeSpent int        `json:"totalTimeSpent"`
	LastActivityAt *time.Time `json:"lastActivityAt,omitempty"`
}

type CategoryStatsResponse struct {
	CategoryID     string     `json:"categoryId"`
	CategoryName   string     `json:"categoryName,omitempty"`
	TotalAnswered  int        `json:"totalAnswered"`
	TotalCorrect   int        `json:"totalCorrect"`
	TotalIncorrect int        `json:"totalIncorrect"`
	Accuracy       int        `json:"accuracy"`
	LastAnsweredAt *time.Time `json:"lastAnsweredAt,omitempty"`
}

func NewAnswerHistory(records []*domain.AnswerRecord) []AnswerHistoryItem {
	out := make([]AnswerHistoryItem, len(records))
	for i, r := range records {
		out[i] = AnswerHistoryItem{
			ID:             r.ID,
			QuestionID:     r.QuestionID,
			QuestionText:   r.QuestionText,
			Category:       r.Category,
			SelectedAnswer: r.SelectedAnswer,
			IsCorrect:      r.IsCorrect,
			TimeSpent:      r.TimeSpent,
			AttemptNumber:  r.AttemptNumber,
			CreatedAt:      r.CreatedAt,
		}
	}
	return out
}

func NewUserStatsResponse(s *domain.UserStats) UserStatsResponse {
	return UserStatsResponse{
		TotalAnswered:  s.TotalAnswered,
		TotalCorrect:   s.TotalCorrect,
		TotalIncorrect: s.TotalIncorrect,
		Accuracy:       s.Accuracy,
		CurrentStreak:  s.CurrentStreak,
		BestStreak:     s.BestStreak,
		TotalTimeSpent: s.TotalTimeSpent,
		LastActivityAt: s.LastActivityAt,
	}
}

func NewCategoryStatsResponses(stats []*domain.UserCategoryStats) []CategoryStatsResponse {
	out := make([]CategoryStatsResponse, len(stats))
	for i, s := range stats {
		out[i] = CategoryStatsResponse{
			CategoryID:     s.CategoryID,
			CategoryName:   s.CategoryName,
			TotalAnswered:  s.TotalAnswered,
			TotalCorrect:   s.TotalCorrect,
			TotalIncorrect: s.TotalIncorrect(),
			Accuracy:       s.Accuracy,
			LastAnsweredAt: s.LastAnsweredAt,
		}
	}
	return out
}
