package models

import (
	"database/sql"
	"time"
)

// User represents a user in the system.
type User struct {
	ID           string         `db:"id"`
	OpenID       string         `db:"open_id"`
	Name         sql.NullString `db:"name"`
	Email        sql.NullString `db:"email"`
	LoginMethod  sql.NullString `db:"login_method"`
	Role         string         `db:"role"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	LastSignedIn time.Time      `db:"last_signed_in"`
}

// UserAnswer is one row of the append-only answer log.
type UserAnswer struct {
	ID             string        `db:"id"`
	UserID         string        `db:"user_id"`
	QuestionID     string        `db:"question_id"`
	SelectedAnswer string        `db:"selected_answer"`
	IsCorrect      bool          `db:"is_correct"`
	TimeSpent      sql.NullInt64 `db:"time_spent"`
	AttemptNumber  int           `db:"attempt_number"`
	CreatedAt      time.Time     `db:"created_at"`
}

// AnswerRecord is a history row joined with its question.
type AnswerRecord struct {
	UserAnswer
	QuestionText string         `db:"question_text"`
	CategoryName sql.NullString `db:"category_name"`
}

// AnswerOutcome is the projection the stats are recomputed from.
type AnswerOutcome struct {
	IsCorrect bool          `db:"is_correct"`
	TimeSpent sql.NullInt64 `db:"time_spent"`
	CreatedAt time.Time     `db:"created_at"`
}

type UserStats struct {
	ID             string       `db:"id"`
	UserID         string       `db:"user_id"`
	TotalAnswered  int          `db:"total_answered"`
	TotalCorrect   int          `db:"total_correct"`
	TotalIncorrect int          `db:"total_incorrect"`
	Accuracy       int          `db:"accuracy"`
	CurrentStreak  int          `db:"current_streak"`
	BestStreak     int          `db:"best_streak"`
	TotalTimeSpent int          `db:"total_time_spent"`
	LastActivityAt sql.NullTime `db:"last_activity_at"`
	CreatedAt      time.Time    `db:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
}

type UserCategoryStats struct {
	ID             string         `db:"id"`
	UserID         string         `db:"user_id"`
	CategoryID     string         `db:"category_id"`
	CategoryName   sql.NullString `db:"category_name"`
	TotalAnswered  int            `db:"total_answered"`
	TotalCorrect   int            `db:"total_correct"`
	Accuracy       int            `db:"accuracy"`
	LastAnsweredAt sql.NullTime   `db:"last_answered_at"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}
