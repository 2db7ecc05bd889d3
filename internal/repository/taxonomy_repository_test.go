package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"provafoco/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLXCategoryRepository_ListActive(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXCategoryRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "name", "description", "icon", "color", "sort_order", "is_active", "created_at", "updated_at"}).
		AddRow("c1", "Português", "Gramática", nil, "#ff0000", 1, 1, now, now).
		AddRow("c2", "Direito", nil, nil, nil, 2, 1, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM categories WHERE is_active = 1 ORDER BY sort_order ASC, name ASC")).
		WillReturnRows(rows)

	categories, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Português", categories[0].Name)
	assert.Equal(t, "Gramática", categories[0].Description)
	assert.Equal(t, "", categories[1].Color)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXCategoryRepository_GetByName_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXCategoryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM categories WHERE name = ?")).
		WithArgs("Inexistente").
		WillReturnError(sql.ErrNoRows)

	category, err := repo.GetByName(context.Background(), "Inexistente")
	assert.NoError(t, err)
	assert.Nil(t, category)
}

func TestSQLXCategoryRepository_CreateAndSoftDelete(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXCategoryRepository(db)

	category := domain.NewCategory("Matemática", 3)
	mock.ExpectExec("INSERT INTO categories").
		WithArgs(sqlmock.AnyArg(), "Matemática", nil, nil, nil, 3, 1, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Create(context.Background(), category))
	assert.NotEmpty(t, category.ID)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE categories SET is_active = 0, updated_at = ? WHERE id = ?")).
		WithArgs(sqlmock.AnyArg(), category.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SoftDelete(context.Background(), category.ID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXCategoryRepository_Create_Duplicate(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXCategoryRepository(db)

	mock.ExpectExec("INSERT INTO categories").WillReturnError(uniqueErr{})
	err := repo.Create(context.Background(), domain.NewCategory("Português", 1))

	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "name", verrs[0].Field)
}

func TestSQLXBankRepository_UpdateNotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXBankRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE banks SET name = ?")).
		WithArgs("FGV", nil, nil, 1, sqlmock.AnyArg(), "b-missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.Bank{ID: "b-missing", Name: "FGV", IsActive: true})
	assert.True(t, domain.IsNotFound(err))
}

func TestSQLXBankRepository_ListActive(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXBankRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM banks WHERE is_active = 1 ORDER BY name ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "logo", "is_active", "created_at", "updated_at"}).
			AddRow("b1", "Cespe", nil, "cespe.png", 1, now, now))

	banks, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, banks, 1)
	assert.Equal(t, "cespe.png", banks[0].Logo)
}

func TestSQLXDifficultyLevelRepository_List(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXDifficultyLevelRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM difficulty_levels ORDER BY level_no ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "level_no", "color", "description", "created_at"}).
			AddRow("d1", "Fácil", 1, "green", nil, now).
			AddRow("d3", "Difícil", 3, "red", nil, now))

	levels, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, 1, levels[0].Level)
	assert.Equal(t, 3, levels[1].Level)
}

func TestSQLXDifficultyLevelRepository_Delete(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXDifficultyLevelRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM difficulty_levels WHERE id = ?")).
		WithArgs("d1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(context.Background(), "d1"))
}
