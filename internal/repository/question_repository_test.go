package repository

import (
	"context"
	"errors"
	"net"
	"regexp"
	"testing"
	"time"

	"provafoco/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var questionRowColumns = []string{
	"id", "category_id", "bank_id", "difficulty_id", "category_name", "bank_name", "difficulty_name",
	"exam_year", "question_text", "alternatives", "correct_answer", "explanation", "source", "is_active", "generated_by_llm",
	"created_at", "updated_at",
}

func questionRow(rows *sqlmock.Rows, id string, now time.Time) *sqlmock.Rows {
	return rows.AddRow(id, "cat-1", nil, nil, "Português", "FGV", nil,
		"2023", "Qual a crase correta?", `{"a":"um","b":"dois","c":"três","d":"quatro"}`, "b", "", nil, 1, 0, now, now)
}

func TestFilterClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    domain.QuestionFilter
		wantWhere string
		wantArgs  []interface{}
	}{
		{
			name:      "Only active by default",
			filter:    domain.QuestionFilter{},
			wantWhere: " WHERE is_active = 1",
		},
		{
			name:      "Id wins over name",
			filter:    domain.QuestionFilter{CategoryID: "c1", Category: "Direito", Bank: "FGV"},
			wantWhere: " WHERE is_active = 1 AND category_id = ? AND bank_name = ?",
			wantArgs:  []interface{}{"c1", "FGV"},
		},
		{
			name:      "Search is lowercased",
			filter:    domain.QuestionFilter{DifficultyID: "d1", Year: "2022", Search: "Crase"},
			wantWhere: " WHERE is_active = 1 AND difficulty_id = ? AND exam_year = ? AND LOWER(question_text) LIKE ? ESCAPE '\\'",
			wantArgs:  []interface{}{"d1", "2022", "%crase%"},
		},
		{
			name:      "Search wildcards match literally",
			filter:    domain.QuestionFilter{Search: `50% do_total \ X`},
			wantWhere: " WHERE is_active = 1 AND LOWER(question_text) LIKE ? ESCAPE '\\'",
			wantArgs:  []interface{}{`%50\% do\_total \\ x%`},
		},
		{
			name:      "Include inactive without predicates",
			filter:    domain.QuestionFilter{IncludeInactive: true},
			wantWhere: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := filterClause(tt.filter)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, len(tt.wantArgs), len(args))
			for i := range tt.wantArgs {
				assert.Equal(t, tt.wantArgs[i], args[i])
			}
		})
	}
}

func TestSQLXQuestionRepository_List(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXQuestionRepository(db)
	now := time.Now()

	rows := questionRow(sqlmock.NewRows(questionRowColumns), "q1", now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM questions WHERE is_active = 1 AND category_id = ? ORDER BY RANDOM() LIMIT ? OFFSET ?")).
		WithArgs("cat-1", domain.DefaultQuestionLimit, 0).
		WillReturnRows(rows)

	questions, err := repo.List(context.Background(), domain.QuestionFilter{CategoryID: "cat-1"})
	require.NoError(t, err)
	require.Len(t, questions, 1)
	q := questions[0]
	assert.Equal(t, "q1", q.ID)
	assert.Equal(t, "Português", q.Category)
	assert.Equal(t, "FGV", q.Bank)
	assert.Equal(t, "", q.Difficulty)
	assert.Equal(t, "dois", q.Alternatives.B)
	assert.Equal(t, "", q.Alternatives.E)
	assert.True(t, q.IsActive)
	assert.False(t, q.GeneratedByLLM)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXQuestionRepository_List_UnknownCategoryIsEmpty(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXQuestionRepository(db)

	mock.ExpectQuery("FROM questions WHERE is_active = 1 AND category_id = ").
		WithArgs("nope", 5, 10).
		WillReturnRows(sqlmock.NewRows(questionRowColumns))

	questions, err := repo.List(context.Background(), domain.QuestionFilter{CategoryID: "nope", Limit: 5, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestSQLXQuestionRepository_StoreUnavailable(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXQuestionRepository(db)

	mock.ExpectQuery("FROM questions").WillReturnError(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})
	_, err := repo.List(context.Background(), domain.QuestionFilter{})
	assert.True(t, domain.IsStoreUnavailable(err))

	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("syntax error"))
	_, err = repo.Count(context.Background(), domain.QuestionFilter{})
	require.Error(t, err)
	assert.False(t, domain.IsStoreUnavailable(err))
}

func TestSQLXQuestionRepository_Count(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXQuestionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM questions WHERE is_active = 1 AND bank_name = ?")).
		WithArgs("Cespe").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.Count(context.Background(), domain.QuestionFilter{Bank: "Cespe"})
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestSQLXQuestionRepository_GetByID(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXQuestionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM questions WHERE id = ?")).
		WithArgs("q1").
		WillReturnRows(questionRow(sqlmock.NewRows(questionRowColumns), "q1", time.Now()))
	q, err := repo.GetByID(context.Background(), "q1")
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, "b", q.CorrectAnswer)

	mock.ExpectQuery(regexp.QuoteMeta("FROM questions WHERE id = ?")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(questionRowColumns))
	q, err = repo.GetByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, q)
}

func TestSQLXQuestionRepository_Create(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXQuestionRepository(db)

	q := &domain.Question{
		Category:      "Direito",
		Text:          "Texto",
		Alternatives:  domain.Alternatives{A: "1", B: "2", C: "3", D: "4"},
		CorrectAnswer: "a",
		IsActive:      true,
	}
	mock.ExpectExec("INSERT INTO questions").
		WithArgs(sqlmock.AnyArg(), nil, nil, nil, "Direito", nil, nil, nil, "Texto",
			`{"a":"1","b":"2","c":"3","d":"4"}`, "a", nil, nil, 1, 0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), q))
	assert.NotEmpty(t, q.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXQuestionRepository_SoftDelete(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXQuestionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE questions SET is_active = 0, updated_at = ? WHERE id = ?")).
		WithArgs(sqlmock.AnyArg(), "q1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.SoftDelete(context.Background(), "q1"))

	mock.ExpectExec("UPDATE questions SET is_active = 0").
		WithArgs(sqlmock.AnyArg(), "q2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.True(t, domain.IsNotFound(repo.SoftDelete(context.Background(), "q2")))
}

func TestSQLXQuestionRepository_DistinctValues(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXQuestionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT bank_name FROM questions")).
		WillReturnRows(sqlmock.NewRows([]string{"bank_name"}).AddRow("Cespe").AddRow("FGV"))

	values, err := repo.DistinctValues(context.Background(), domain.FieldBank)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cespe", "FGV"}, values)

	_, err = repo.DistinctValues(context.Background(), domain.TaxonomyField("year"))
	assert.Error(t, err)
}

func TestSQLXQuestionRepository_RenameTaxonomy(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXQuestionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE questions SET category_name = ? WHERE category_id = ?")).
		WithArgs("Direito Administrativo", "c1").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE questions SET difficulty_name = ? WHERE difficulty_id = ?")).
		WithArgs("Difícil", "d3").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.RenameTaxonomy(context.Background(), domain.FieldCategory, "c1", "Direito Administrativo"))
	require.NoError(t, repo.RenameTaxonomy(context.Background(), domain.FieldDifficulty, "d3", "Difícil"))
	assert.Error(t, repo.RenameTaxonomy(context.Background(), domain.TaxonomyField("year"), "x", "y"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXQuestionRepository_ListRecent(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXQuestionRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, updated_at FROM questions WHERE is_active = 1 ORDER BY updated_at DESC LIMIT ?")).
		WithArgs(domain.SitemapQuestionLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "updated_at"}).AddRow("q1", now).AddRow("q2", now))

	refs, err := repo.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "q2", refs[1].ID)
}

func TestSQLXQuestionRepository_SetExplanation(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXQuestionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE questions SET explanation = ?, generated_by_llm = ?, updated_at = ? WHERE id = ?")).
		WithArgs("Porque sim.", 1, sqlmock.AnyArg(), "q1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.SetExplanation(context.Background(), "q1", "Porque sim.", true))
	assert.NoError(t, mock.ExpectationsWereMet())
}
