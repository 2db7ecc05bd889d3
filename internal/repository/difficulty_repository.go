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

const difficultyColumns = "id, name, level_no, color, description, created_at"

type sqlxDifficultyLevelRepository struct {
	base
}

func NewSQLXDifficultyLevelRepository(db *sqlx.DB) domain.DifficultyLevelRepository {
	return &sqlxDifficultyLevelRepository{base: newBase(db)}
}

func toDomainDifficultyLevel(m *models.DifficultyLevel) *domain.DifficultyLevel {
	return &domain.DifficultyLevel{
		ID:          m.ID,
		Name:        m.Name,
		Level:       m.Level,
		Color:       m.Color.String,
		Description: m.Description.String,
		CreatedAt:   m.CreatedAt,
	}
}

// List orders by level, not insertion.
func (r *sqlxDifficultyLevelRepository) List(ctx context.Context) ([]*domain.DifficultyLevel, error) {
	var rows []models.DifficultyLevel
	query := "SELECT " + difficultyColumns + " FROM difficulty_levels ORDER BY level_no ASC, name ASC"
	if err := r.exec(ctx).SelectContext(ctx, &rows, query); err != nil {
		return nil, storeErr("list difficulty levels", err)
	}
	out := make([]*domain.DifficultyLevel, len(rows))
	for i := range rows {
		out[i] = toDomainDifficultyLevel(&rows[i])
	}
	return out, nil
}

func (r *sqlxDifficultyLevelRepository) GetByID(ctx context.Context, id string) (*domain.DifficultyLevel, error) {
	return r.getOne(ctx, "get difficulty level by id", "id = ?", id)
}

func (r *sqlxDifficultyLevelRepository) GetByName(ctx context.Context, name string) (*domain.DifficultyLevel, error) {
	return r.getOne(ctx, "get difficulty level by name", "name = ?", name)
}

func (r *sqlxDifficultyLevelRepository) getOne(ctx context.Context, op, where string, arg interface{}) (*domain.DifficultyLevel, error) {
	exec := r.exec(ctx)
	var row models.DifficultyLevel
	if err := exec.GetContext(ctx, &row, exec.Rebind("SELECT "+difficultyColumns+" FROM difficulty_levels WHERE "+where), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr(op, err)
	}
	return toDomainDifficultyLevel(&row), nil
}

func (r *sqlxDifficultyLevelRepository) Create(ctx context.Context, level *domain.DifficultyLevel) error {
	if level.ID == "" {
		level.ID = util.NewULID()
	}
	level.CreatedAt = time.Now()

	exec := r.exec(ctx)
	query := exec.Rebind("INSERT INTO difficulty_levels (id, name, level_no, color, description, created_at) VALUES (?, ?, ?, ?, ?, ?)")
	_, err := exec.ExecContext(ctx, query, level.ID, level.Name, level.Level,
		util.StringToNullString(level.Color), util.StringToNullString(level.Description), level.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ValidationErrors{domain.NewDuplicateError("name", level.Name)}
	}
	return storeErr("create difficulty level", err)
}

func (r *sqlxDifficultyLevelRepository) Update(ctx context.Context, level *domain.DifficultyLevel) error {
	exec := r.exec(ctx)
	query := exec.Rebind("UPDATE difficulty_levels SET name = ?, level_no = ?, color = ?, description = ? WHERE id = ?")
	result, err := exec.ExecContext(ctx, query, level.Name, level.Level,
		util.StringToNullString(level.Color), util.StringToNullString(level.Description), level.ID)
	if isUniqueViolation(err) {
		return domain.ValidationErrors{domain.NewDuplicateError("name", level.Name)}
	}
	if err != nil {
		return storeErr("update difficulty level", err)
	}
	return notFoundIfNone(result, "difficulty level", level.ID)
}

// Delete removes the row; callers check that no question references it.
func (r *sqlxDifficultyLevelRepository) Delete(ctx context.Context, id string) error {
	exec := r.exec(ctx)
	result, err := exec.ExecContext(ctx, exec.Rebind("DELETE FROM difficulty_levels WHERE id = ?"), id)
	if err != nil {
		return storeErr("delete difficulty level", err)
	}
	return notFoundIfNone(result, "difficulty level", id)
}
