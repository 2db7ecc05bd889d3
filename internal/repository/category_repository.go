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

const categoryColumns = "id, name, description, icon, color, sort_order, is_active, created_at, updated_at"

type sqlxCategoryRepository struct {
	base
}

// NewSQLXCategoryRepository creates a category repository backed by sqlx.
func NewSQLXCategoryRepository(db *sqlx.DB) domain.CategoryRepository {
	return &sqlxCategoryRepository{base: newBase(db)}
}

func toDomainCategory(m *models.Category) *domain.Category {
	if m == nil {
		return nil
	}
	return &domain.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description.String,
		Icon:        m.Icon.String,
		Color:       m.Color.String,
		SortOrder:   m.SortOrder,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromDomainCategory(c *domain.Category) *models.Category {
	if c == nil {
		return nil
	}
	return &models.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: util.StringToNullString(c.Description),
		Icon:        util.StringToNullString(c.Icon),
		Color:       util.StringToNullString(c.Color),
		SortOrder:   c.SortOrder,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ListActive returns active categories ordered by their display order.
func (r *sqlxCategoryRepository) ListActive(ctx context.Context) ([]*domain.Category, error) {
	var rows []models.Category
	query := "SELECT " + categoryColumns + " FROM categories WHERE is_active = 1 ORDER BY sort_order ASC, name ASC"
	if err := r.exec(ctx).SelectContext(ctx, &rows, query); err != nil {
		return nil, storeErr("list categories", err)
	}
	out := make([]*domain.Category, len(rows))
	for i := range rows {
		out[i] = toDomainCategory(&rows[i])
	}
	return out, nil
}

func (r *sqlxCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	return r.getOne(ctx, "get category by id", "id = ?", id)
}

func (r *sqlxCategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	return r.getOne(ctx, "get category by name", "name = ?", name)
}

func (r *sqlxCategoryRepository) getOne(ctx context.Context, op, where string, arg interface{}) (*domain.Category, error) {
	exec := r.exec(ctx)
	var row models.Category
	query := exec.Rebind("SELECT " + categoryColumns + " FROM categories WHERE " + where)
	if err := exec.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr(op, err)
	}
	return toDomainCategory(&row), nil
}

func (r *sqlxCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if category.ID == "" {
		category.ID = util.NewULID()
	}
	now := time.Now()
	category.CreatedAt, category.UpdatedAt = now, now
	m := fromDomainCategory(category)

	exec := r.exec(ctx)
	query := exec.Rebind(`INSERT INTO categories (id, name, description, icon, color, sort_order, is_active, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := exec.ExecContext(ctx, query, m.ID, m.Name, m.Description, m.Icon, m.Color, m.SortOrder, util.BoolToInt(m.IsActive), m.CreatedAt, m.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ValidationErrors{domain.NewDuplicateError("name", category.Name)}
	}
	return storeErr("create category", err)
}

func (r *sqlxCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	category.UpdatedAt = time.Now()
	m := fromDomainCategory(category)

	exec := r.exec(ctx)
	query := exec.Rebind(`UPDATE categories SET name = ?, description = ?, icon = ?, color = ?, sort_order = ?, is_active = ?, updated_at = ?
	          WHERE id = ?`)
	result, err := exec.ExecContext(ctx, query, m.Name, m.Description, m.Icon, m.Color, m.SortOrder, util.BoolToInt(m.IsActive), m.UpdatedAt, m.ID)
	if isUniqueViolation(err) {
		return domain.ValidationErrors{domain.NewDuplicateError("name", category.Name)}
	}
	if err != nil {
		return storeErr("update category", err)
	}
	return notFoundIfNone(result, "category", category.ID)
}

// SoftDelete hides the category; answers and stats referencing it remain.
func (r *sqlxCategoryRepository) SoftDelete(ctx context.Context, id string) error {
	exec := r.exec(ctx)
	query := exec.Rebind("UPDATE categories SET is_active = 0, updated_at = ? WHERE id = ?")
	result, err := exec.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return storeErr("delete category", err)
	}
	return notFoundIfNone(result, "category", id)
}
