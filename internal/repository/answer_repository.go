package repository

import (
	"context"
	"time"

	"provafoco/internal/domain"
	"provafoco/internal/repository/models"
	"provafoco/internal/util"

	"github.com/jmoiron/sqlx"
)

type sqlxUserAnswerRepository struct {
	base
}

// NewSQLXUserAnswerRepository creates the append-only answer log repository.
func NewSQLXUserAnswerRepository(db *sqlx.DB) domain.UserAnswerRepository {
	return &sqlxUserAnswerRepository{base: newBase(db)}
}

func toDomainUserAnswer(m *models.UserAnswer) domain.UserAnswer {
	return domain.UserAnswer{
		ID:             m.ID,
		UserID:         m.UserID,
		QuestionID:     m.QuestionID,
		SelectedAnswer: m.SelectedAnswer,
		IsCorrect:      m.IsCorrect,
		TimeSpent:      util.NullInt64ToIntPtr(m.TimeSpent),
		AttemptNumber:  m.AttemptNumber,
		CreatedAt:      m.CreatedAt,
	}
}

func toDomainOutcomes(rows []models.AnswerOutcome) []domain.AnswerOutcome {
	out := make([]domain.AnswerOutcome, len(rows))
	for i, row := range rows {
		out[i] = domain.AnswerOutcome{
			IsCorrect:  row.IsCorrect,
			TimeSpent:  int(row.TimeSpent.Int64),
			AnsweredAt: row.CreatedAt,
		}
	}
	return out
}

// Create appends one attempt. Rows are never updated or deleted afterwards.
func (r *sqlxUserAnswerRepository) Create(ctx context.Context, answer *domain.UserAnswer) error {
	if answer.ID == "" {
		answer.ID = util.NewULID()
	}
	if answer.CreatedAt.IsZero() {
		answer.CreatedAt = time.Now()
	}
	if answer.AttemptNumber <= 0 {
		answer.AttemptNumber = 1
	}

	exec := r.exec(ctx)
	query := exec.Rebind(`INSERT INTO user_answers (id, user_id, question_id, selected_answer, is_correct, time_spent, attempt_number, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := exec.ExecContext(ctx, query, answer.ID, answer.UserID, answer.QuestionID, answer.SelectedAnswer,
		util.BoolToInt(answer.IsCorrect), util.IntPtrToNullInt64(answer.TimeSpent), answer.AttemptNumber, answer.CreatedAt)
	return storeErr("create user answer", err)
}

func (r *sqlxUserAnswerRepository) CountAttempts(ctx context.Context, userID, questionID string) (int, error) {
	exec := r.exec(ctx)
	var count int
	query := exec.Rebind("SELECT COUNT(*) FROM user_answers WHERE user_id = ? AND question_id = ?")
	if err := exec.GetContext(ctx, &count, query, userID, questionID); err != nil {
		return 0, storeErr("count attempts", err)
	}
	return count, nil
}

// OutcomesByUser returns every attempt of the user, oldest first.
func (r *sqlxUserAnswerRepository) OutcomesByUser(ctx context.Context, userID string) ([]domain.AnswerOutcome, error) {
	exec := r.exec(ctx)
	var rows []models.AnswerOutcome
	query := exec.Rebind(`SELECT is_correct, time_spent, created_at FROM user_answers
		WHERE user_id = ? ORDER BY created_at ASC, id ASC`)
	if err := exec.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, storeErr("load user outcomes", err)
	}
	return toDomainOutcomes(rows), nil
}

// OutcomesByUserCategory scopes the log to answers whose question belongs to categoryID.
func (r *sqlxUserAnswerRepository) OutcomesByUserCategory(ctx context.Context, userID, categoryID string) ([]domain.AnswerOutcome, error) {
	exec := r.exec(ctx)
	var rows []models.AnswerOutcome
	query := exec.Rebind(`SELECT ua.is_correct, ua.time_spent, ua.created_at FROM user_answers ua
		JOIN questions q ON q.id = ua.question_id
		WHERE ua.user_id = ? AND q.category_id = ? ORDER BY ua.created_at ASC, ua.id ASC`)
	if err := exec.SelectContext(ctx, &rows, query, userID, categoryID); err != nil {
		return nil, storeErr("load user category outcomes", err)
	}
	return toDomainOutcomes(rows), nil
}

// History returns the latest attempts, newest first, joined with their question.
func (r *sqlxUserAnswerRepository) History(ctx context.Context, userID string, limit int) ([]*domain.AnswerRecord, error) {
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}
	if limit > domain.MaxHistoryLimit {
		limit = domain.MaxHistoryLimit
	}
	query, args := r.dialect.Limit(`SELECT ua.id, ua.user_id, ua.question_id, ua.selected_answer, ua.is_correct, ua.time_spent,
		ua.attempt_number, ua.created_at, q.question_text, q.category_name
		FROM user_answers ua JOIN questions q ON q.id = ua.question_id
		WHERE ua.user_id = ? ORDER BY ua.created_at DESC, ua.id DESC`, []interface{}{userID}, limit)

	exec := r.exec(ctx)
	var rows []models.AnswerRecord
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), args...); err != nil {
		return nil, storeErr("load answer history", err)
	}
	out := make([]*domain.AnswerRecord, len(rows))
	for i := range rows {
		out[i] = &domain.AnswerRecord{
			UserAnswer:   toDomainUserAnswer(&rows[i].UserAnswer),
			QuestionText: rows[i].QuestionText,
			Category:     rows[i].CategoryName.String,
		}
	}
	return out, nil
}
