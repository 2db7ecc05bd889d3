package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"provafoco/internal/domain"
	"provafoco/internal/repository/models"
	"provafoco/internal/util"

	"github.com/jmoiron/sqlx"
)

const userStatsColumns = `id, user_id, total_answered, total_correct, total_incorrect, accuracy, current_streak, best_streak,
	total_time_spent, last_activity_at, created_at, updated_at`

type sqlxStatsRepository struct {
	base
}

// NewSQLXStatsRepository stores the derived per-user and per-category aggregates.
func NewSQLXStatsRepository(db *sqlx.DB) domain.StatsRepository {
	return &sqlxStatsRepository{base: newBase(db)}
}

func toDomainUserStats(m *models.UserStats) *domain.UserStats {
	return &domain.UserStats{
		ID:             m.ID,
		UserID:         m.UserID,
		TotalAnswered:  m.TotalAnswered,
		TotalCorrect:   m.TotalCorrect,
		TotalIncorrect: m.TotalIncorrect,
		Accuracy:       m.Accuracy,
		CurrentStreak:  m.CurrentStreak,
		BestStreak:     m.BestStreak,
		TotalTimeSpent: m.TotalTimeSpent,
		LastActivityAt: util.NullTimeToPtr(m.LastActivityAt),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toDomainCategoryStats(m *models.UserCategoryStats) *domain.UserCategoryStats {
	return &domain.UserCategoryStats{
		ID:             m.ID,
		UserID:         m.UserID,
		CategoryID:     m.CategoryID,
		CategoryName:   m.CategoryName.String,
		TotalAnswered:  m.TotalAnswered,
		TotalCorrect:   m.TotalCorrect,
		Accuracy:       m.Accuracy,
		LastAnsweredAt: util.NullTimeToPtr(m.LastAnsweredAt),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// GetUserStats returns (nil, nil) when the user has no stats row yet.
func (r *sqlxStatsRepository) GetUserStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	exec := r.exec(ctx)
	var row models.UserStats
	if err := exec.GetContext(ctx, &row, exec.Rebind("SELECT "+userStatsColumns+" FROM user_stats WHERE user_id = ?"), userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get user stats", err)
	}
	return toDomainUserStats(&row), nil
}

// SaveUserStats overwrites the row for stats.UserID, inserting it on first use.
func (r *sqlxStatsRepository) SaveUserStats(ctx context.Context, stats *domain.UserStats) error {
	now := time.Now()
	stats.UpdatedAt = now
	exec := r.exec(ctx)

	update := exec.Rebind(`UPDATE user_stats SET total_answered = ?, total_correct = ?, total_incorrect = ?, accuracy = ?,
		current_streak = ?, best_streak = ?, total_time_spent = ?, last_activity_at = ?, updated_at = ? WHERE user_id = ?`)
	insert := exec.Rebind(`INSERT INTO user_stats (id, user_id, total_answered, total_correct, total_incorrect, accuracy,
		current_streak, best_streak, total_time_spent, last_activity_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	return updateOrInsert("user stats",
		func() (sql.Result, error) {
			return exec.ExecContext(ctx, update, stats.TotalAnswered, stats.TotalCorrect, stats.TotalIncorrect, stats.Accuracy,
				stats.CurrentStreak, stats.BestStreak, stats.TotalTimeSpent, util.TimePtrToNullTime(stats.LastActivityAt), now, stats.UserID)
		},
		func() error {
			if stats.ID == "" {
				stats.ID = util.NewULID()
			}
			stats.CreatedAt = now
			_, err := exec.ExecContext(ctx, insert, stats.ID, stats.UserID, stats.TotalAnswered, stats.TotalCorrect, stats.TotalIncorrect,
				stats.Accuracy, stats.CurrentStreak, stats.BestStreak, stats.TotalTimeSpent, util.TimePtrToNullTime(stats.LastActivityAt), now, now)
			return err
		})
}

// updateOrInsert runs update and falls back to insert when no row matched. If a concurrent
// writer inserted the row first, the update runs once more so the last writer wins.
func updateOrInsert(entity string, update func() (sql.Result, error), insert func() error) error {
	updated, err := affectedRows(update)
	if err != nil || updated {
		return storeErr("update "+entity, err)
	}
	err = insert()
	if !isUniqueViolation(err) {
		return storeErr("insert "+entity, err)
	}
	_, err = affectedRows(update)
	return storeErr("update "+entity, err)
}

func affectedRows(update func() (sql.Result, error)) (bool, error) {
	result, err := update()
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return err == nil && n > 0, nil
}

// ListCategoryStats returns the user's category aggregates, best accuracy first.
func (r *sqlxStatsRepository) ListCategoryStats(ctx context.Context, userID string) ([]*domain.UserCategoryStats, error) {
	exec := r.exec(ctx)
	var rows []models.UserCategoryStats
	query := exec.Rebind(`SELECT s.id, s.user_id, s.category_id, c.name AS category_name, s.total_answered, s.total_correct,
		s.accuracy, s.last_answered_at, s.created_at, s.updated_at
		FROM user_category_stats s LEFT JOIN categories c ON c.id = s.category_id
		WHERE s.user_id = ? ORDER BY s.accuracy DESC, s.total_answered DESC`)
	if err := exec.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, storeErr("list category stats", err)
	}
	out := make([]*domain.UserCategoryStats, len(rows))
	for i := range rows {
		out[i] = toDomainCategoryStats(&rows[i])
	}
	return out, nil
}

// SaveCategoryStats overwrites the (user, category) row, inserting it on first use.
func (r *sqlxStatsRepository) SaveCategoryStats(ctx context.Context, stats *domain.UserCategoryStats) error {
	now := time.Now()
	stats.UpdatedAt = now
	exec := r.exec(ctx)

	update := exec.Rebind(`UPDATE user_category_stats SET total_answered = ?, total_correct = ?, accuracy = ?, last_answered_at = ?,
		updated_at = ? WHERE user_id = ? AND category_id = ?`)
	insert := exec.Rebind(`INSERT INTO user_category_stats (id, user_id, category_id, total_answered, total_correct, accuracy,
		last_answered_at, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	return updateOrInsert("category stats",
		func() (sql.Result, error) {
			return exec.ExecContext(ctx, update, stats.TotalAnswered, stats.TotalCorrect, stats.Accuracy,
				util.TimePtrToNullTime(stats.LastAnsweredAt), now, stats.UserID, stats.CategoryID)
		},
		func() error {
			if stats.ID == "" {
				stats.ID = util.NewULID()
			}
			stats.CreatedAt = now
			_, err := exec.ExecContext(ctx, insert, stats.ID, stats.UserID, stats.CategoryID, stats.TotalAnswered, stats.TotalCorrect,
				stats.Accuracy, util.TimePtrToNullTime(stats.LastAnsweredAt), now, now)
			return err
		})
}
