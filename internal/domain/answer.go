package domain

import (
	"context"
	"math"
	"time"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// UserAnswer is one immutable attempt. Repeated attempts on a question are separate rows.
type UserAnswer struct {
	ID             string
	UserID         string
	QuestionID     string
	SelectedAnswer string
	IsCorrect      bool
	TimeSpent      *int
	AttemptNumber  int
	CreatedAt      time.Time
}

// AnswerRecord is a history row joined with its question.
type AnswerRecord struct {
	UserAnswer
	QuestionText string
	Category     string
}

// AnswerOutcome is the part of an attempt the aggregates are derived from.
type AnswerOutcome struct {
	IsCorrect  bool
	TimeSpent  int
	AnsweredAt time.Time
}

// Tally is the aggregate of an answer log.
type Tally struct {
	TotalAnswered  int
	TotalCorrect   int
	TotalIncorrect int
	Accuracy       int
	CurrentStreak  int
	BestStreak     int
	TotalTimeSpent int
	LastAnsweredAt *time.Time
}

// Accuracy is round(correct/total*100), or 0 without answers.
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// TallyOutcomes recomputes the aggregate from the full log, oldest first.
func TallyOutcomes(outcomes []AnswerOutcome) Tally {
	var t Tally
	run := 0
	for i := range outcomes {
		o := outcomes[i]
		t.TotalAnswered++
		t.TotalTimeSpent += o.TimeSpent
		if o.IsCorrect {
			t.TotalCorrect++
			run++
			if run > t.BestStreak {
				t.BestStreak = run
			}
		} else {
			run = 0
		}
		if !o.AnsweredAt.IsZero() && (t.LastAnsweredAt == nil || o.AnsweredAt.After(*t.LastAnsweredAt)) {
			at := o.AnsweredAt
			t.LastAnsweredAt = &at
		}
	}
	t.CurrentStreak = run
	t.TotalIncorrect = t.TotalAnswered - t.TotalCorrect
	t.Accuracy = Accuracy(t.TotalCorrect, t.TotalAnswered)
	return t
}

// UserStats is a materialized view over a user's answer log.
type UserStats struct {
	ID             string
	UserID         string
	TotalAnswered  int
	TotalCorrect   int
	TotalIncorrect int
	Accuracy       int
	CurrentStreak  int
	BestStreak     int
	TotalTimeSpent int
	LastActivityAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Apply overwrites every derived field with t.
func (s *UserStats) Apply(t Tally) {
	s.TotalAnswered = t.TotalAnswered
	s.TotalCorrect = t.TotalCorrect
	s.TotalIncorrect = t.TotalIncorrect
	s.Accuracy = t.Accuracy
	s.CurrentStreak = t.CurrentStreak
	s.BestStreak = t.BestStreak
	s.TotalTimeSpent = t.TotalTimeSpent
	s.LastActivityAt = t.LastAnsweredAt
}

// UserCategoryStats is the per-category view, unique per (UserID, CategoryID).
type UserCategoryStats struct {
	ID             string
	UserID         string
	CategoryID     string
	CategoryName   string
	TotalAnswered  int
	TotalCorrect   int
	Accuracy       int
	LastAnsweredAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (s *UserCategoryStats) Apply(t Tally) {
	s.TotalAnswered = t.TotalAnswered
	s.TotalCorrect = t.TotalCorrect
	s.Accuracy = t.Accuracy
	s.LastAnsweredAt = t.LastAnsweredAt
}

// TotalIncorrect is derived, never stored for categories.
func (s *UserCategoryStats) TotalIncorrect() int {
	return s.TotalAnswered - s.TotalCorrect
}

type UserAnswerRepository interface {
	Create(ctx context.Context, answer *UserAnswer) error
	CountAttempts(ctx context.Context, userID, questionID string) (int, error)
	OutcomesByUser(ctx context.Context, userID string) ([]AnswerOutcome, error)
	OutcomesByUserCategory(ctx context.Context, userID, categoryID string) ([]AnswerOutcome, error)
	History(ctx context.Context, userID string, limit int) ([]*AnswerRecord, error)
}

// StatsRepository upserts: Save updates the existing row or inserts a new one.
type StatsRepository interface {
	GetUserStats(ctx context.Context, userID string) (*UserStats, error)
	SaveUserStats(ctx context.Context, stats *UserStats) error
	ListCategoryStats(ctx context.Context, userID string) ([]*UserCategoryStats, error)
	SaveCategoryStats(ctx context.Context, stats *UserCategoryStats) error
}
