package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"provafoco/internal/domain"
	"provafoco/internal/repository/models"
	"provafoco/internal/util"

	"github.com/jmoiron/sqlx"
)

const questionColumns = `id, category_id, bank_id, difficulty_id, category_name, bank_name, difficulty_name,
	exam_year, question_text, alternatives, correct_answer, explanation, source, is_active, generated_by_llm,
	created_at, updated_at`

type sqlxQuestionRepository struct {
	base
}

// NewSQLXQuestionRepository creates a question repository backed by sqlx.
func NewSQLXQuestionRepository(db *sqlx.DB) domain.QuestionRepository {
	return &sqlxQuestionRepository{base: newBase(db)}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:           m.ID,
		CategoryID:   m.CategoryID.String,
		BankID:       m.BankID.String,
		DifficultyID: m.DifficultyID.String,
		Category:     m.CategoryName.String,
		Bank:         m.BankName.String,
		Difficulty:   m.DifficultyName.String,
		Year:         m.ExamYear.String,
		Text:         m.QuestionText,
		Alternatives: domain.Alternatives{
			A: m.Alternatives.A,
			B: m.Alternatives.B,
			C: m.Alternatives.C,
			D: m.Alternatives.D,
			E: m.Alternatives.E,
		},
		CorrectAnswer:  m.CorrectAnswer,
		Explanation:    m.Explanation.String,
		Source:         m.Source.String,
		IsActive:       m.IsActive,
		GeneratedByLLM: m.GeneratedByLLM,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func fromDomainQuestion(q *domain.Question) *models.Question {
	if q == nil {
		return nil
	}
	return &models.Question{
		ID:             q.ID,
		CategoryID:     util.StringToNullString(q.CategoryID),
		BankID:         util.StringToNullString(q.BankID),
		DifficultyID:   util.StringToNullString(q.DifficultyID),
		CategoryName:   util.StringToNullString(q.Category),
		BankName:       util.StringToNullString(q.Bank),
		DifficultyName: util.StringToNullString(q.Difficulty),
		ExamYear:       util.StringToNullString(q.Year),
		QuestionText:   q.Text,
		Alternatives: models.AlternativesJSON{
			A: q.Alternatives.A,
			B: q.Alternatives.B,
			C: q.Alternatives.C,
			D: q.Alternatives.D,
			E: q.Alternatives.E,
		},
		CorrectAnswer:  q.CorrectAnswer,
		Explanation:    util.StringToNullString(q.Explanation),
		Source:         util.StringToNullString(q.Source),
		IsActive:       q.IsActive,
		GeneratedByLLM: q.GeneratedByLLM,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
}

// filterClause builds the WHERE clause shared by List and Count.
// An id predicate takes precedence over the matching free-text one.
// likeEscaper makes LIKE wildcards in user search text match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func filterClause(f domain.QuestionFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}
	if !f.IncludeInactive {
		conds = append(conds, "is_active = 1")
	}
	add := func(cond string, arg interface{}) {
		conds = append(conds, cond)
		args = append(args, arg)
	}
	switch {
	case f.CategoryID != "":
		add("category_id = ?", f.CategoryID)
	case f.Category != "":
		add("category_name = ?", f.Category)
	}
	switch {
	case f.BankID != "":
		add("bank_id = ?", f.BankID)
	case f.Bank != "":
		add("bank_name = ?", f.Bank)
	}
	switch {
	case f.DifficultyID != "":
		add("difficulty_id = ?", f.DifficultyID)
	case f.Difficulty != "":
		add("difficulty_name = ?", f.Difficulty)
	}
	if f.Year != "" {
		add("exam_year = ?", f.Year)
	}
	if f.Search != "" {
		add(`LOWER(question_text) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(f.Search))+"%")
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns matching questions in random order.
func (r *sqlxQuestionRepository) List(ctx context.Context, filter domain.QuestionFilter) ([]*domain.Question, error) {
	filter = filter.Normalize()
	where, args := filterClause(filter)
	query := "SELECT " + questionColumns + " FROM questions" + where + " ORDER BY " + r.dialect.RandomOrder()
	query, args = r.dialect.Paginate(query, args, filter.Limit, filter.Offset)

	exec := r.exec(ctx)
	var rows []models.Question
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), args...); err != nil {
		return nil, storeErr("list questions", err)
	}
	out := make([]*domain.Question, len(rows))
	for i := range rows {
		out[i] = toDomainQuestion(&rows[i])
	}
	return out, nil
}

func (r *sqlxQuestionRepository) Count(ctx context.Context, filter domain.QuestionFilter) (int, error) {
	where, args := filterClause(filter.Normalize())
	exec := r.exec(ctx)
	var count int
	if err := exec.GetContext(ctx, &count, exec.Rebind("SELECT COUNT(*) FROM questions"+where), args...); err != nil {
		return 0, storeErr("count questions", err)
	}
	return count, nil
}

// GetByID returns the question regardless of its active flag, or nil when absent.
func (r *sqlxQuestionRepository) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	exec := r.exec(ctx)
	var row models.Question
	if err := exec.GetContext(ctx, &row, exec.Rebind("SELECT "+questionColumns+" FROM questions WHERE id = ?"), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get question by id", err)
	}
	return toDomainQuestion(&row), nil
}

func (r *sqlxQuestionRepository) Create(ctx context.Context, question *domain.Question) error {
	if question.ID == "" {
		question.ID = util.NewULID()
	}
	now := time.Now()
	question.CreatedAt, question.UpdatedAt = now, now
	m := fromDomainQuestion(question)

	exec := r.exec(ctx)
	query := exec.Rebind(`INSERT INTO questions (id, category_id, bank_id, difficulty_id, category_name, bank_name, difficulty_name,
		exam_year, question_text, alternatives, correct_answer, explanation, source, is_active, generated_by_llm, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := exec.ExecContext(ctx, query,
		m.ID, m.CategoryID, m.BankID, m.DifficultyID, m.CategoryName, m.BankName, m.DifficultyName,
		m.ExamYear, m.QuestionText, m.Alternatives, m.CorrectAnswer, m.Explanation, m.Source,
		util.BoolToInt(m.IsActive), util.BoolToInt(m.GeneratedByLLM), m.CreatedAt, m.UpdatedAt)
	return storeErr("create question", err)
}

func (r *sqlxQuestionRepository) Update(ctx context.Context, question *domain.Question) error {
	question.UpdatedAt = time.Now()
	m := fromDomainQuestion(question)

	exec := r.exec(ctx)
	query := exec.Rebind(`UPDATE questions SET category_id = ?, bank_id = ?, difficulty_id = ?, category_name = ?, bank_name = ?,
		difficulty_name = ?, exam_year = ?, question_text = ?, alternatives = ?, correct_answer = ?, explanation = ?, source = ?,
		is_active = ?, generated_by_llm = ?, updated_at = ? WHERE id = ?`)
	result, err := exec.ExecContext(ctx, query,
		m.CategoryID, m.BankID, m.DifficultyID, m.CategoryName, m.BankName, m.DifficultyName,
		m.ExamYear, m.QuestionText, m.Alternatives, m.CorrectAnswer, m.Explanation, m.Source,
		util.BoolToInt(m.IsActive), util.BoolToInt(m.GeneratedByLLM), m.UpdatedAt, m.ID)
	if err != nil {
		return storeErr("update question", err)
	}
	return notFoundIfNone(result, "question", question.ID)
}

func (r *sqlxQuestionRepository) SoftDelete(ctx context.Context, id string) error {
	exec := r.exec(ctx)
	result, err := exec.ExecContext(ctx, exec.Rebind("UPDATE questions SET is_active = 0, updated_at = ? WHERE id = ?"), time.Now(), id)
	if err != nil {
		return storeErr("delete question", err)
	}
	return notFoundIfNone(result, "question", id)
}

var distinctColumns = map[domain.TaxonomyField]string{
	domain.FieldCategory:   "category_name",
	domain.FieldBank:       "bank_name",
	domain.FieldDifficulty: "difficulty_name",
}

// DistinctValues lists the non-empty taxonomy names present among active questions.
func (r *sqlxQuestionRepository) DistinctValues(ctx context.Context, field domain.TaxonomyField) ([]string, error) {
	column, ok := distinctColumns[field]
	if !ok {
		return nil, fmt.Errorf("unknown taxonomy field %q", field)
	}
	query := fmt.Sprintf(`SELECT DISTINCT %[1]s FROM questions
		WHERE is_active = 1 AND %[1]s IS NOT NULL AND %[1]s <> '' ORDER BY %[1]s ASC`, column)
	values := []string{}
	if err := r.exec(ctx).SelectContext(ctx, &values, query); err != nil {
		return nil, storeErr("list distinct "+string(field)+" values", err)
	}
	return values, nil
}

var taxonomyIDColumns = map[domain.TaxonomyField]string{
	domain.FieldCategory:   "category_id",
	domain.FieldBank:       "bank_id",
	domain.FieldDifficulty: "difficulty_id",
}

func (r *sqlxQuestionRepository) RenameTaxonomy(ctx context.Context, field domain.TaxonomyField, id, name string) error {
	column, ok := distinctColumns[field]
	if !ok {
		return fmt.Errorf("unknown taxonomy field %q", field)
	}
	exec := r.exec(ctx)
	query := exec.Rebind(fmt.Sprintf("UPDATE questions SET %s = ? WHERE %s = ?", column, taxonomyIDColumns[field]))
	if _, err := exec.ExecContext(ctx, query, name, id); err != nil {
		return storeErr("rename question "+string(field), err)
	}
	return nil
}

// ListRecent returns the most recently updated active questions for the sitemap.
func (r *sqlxQuestionRepository) ListRecent(ctx context.Context, limit int) ([]domain.QuestionRef, error) {
	if limit <= 0 || limit > domain.SitemapQuestionLimit {
		limit = domain.SitemapQuestionLimit
	}
	query, args := r.dialect.Limit("SELECT id, updated_at FROM questions WHERE is_active = 1 ORDER BY updated_at DESC", nil, limit)

	exec := r.exec(ctx)
	var rows []models.QuestionRef
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), args...); err != nil {
		return nil, storeErr("list recent questions", err)
	}
	refs := make([]domain.QuestionRef, len(rows))
	for i, row := range rows {
		refs[i] = domain.QuestionRef{ID: row.ID, UpdatedAt: row.UpdatedAt}
	}
	return refs, nil
}

func (r *sqlxQuestionRepository) SetExplanation(ctx context.Context, id, explanation string, generatedByLLM bool) error {
	exec := r.exec(ctx)
	query := exec.Rebind("UPDATE questions SET explanation = ?, generated_by_llm = ?, updated_at = ? WHERE id = ?")
	result, err := exec.ExecContext(ctx, query, util.StringToNullString(explanation), util.BoolToInt(generatedByLLM), time.Now(), id)
	if err != nil {
		return storeErr("set question explanation", err)
	}
	return notFoundIfNone(result, "question", id)
}
