package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// AlternativesJSON stores the answer options as a JSON object in a text column.
type AlternativesJSON struct {
	A string `json:"a"`
	B string `json:"b"`
	C string `json:"c"`
	D string `json:"d"`
	E string `json:"e,omitempty"`
}

// Value implements the driver.Valuer interface
func (a AlternativesJSON) Value() (driver.Value, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (a *AlternativesJSON) Scan(value interface{}) error {
	if value == nil {
		*a = AlternativesJSON{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("AlternativesJSON Scan: unsupported type " + fmt.Sprintf("%T", value))
	}
	if len(data) == 0 || string(data) == "null" {
		*a = AlternativesJSON{}
		return nil
	}
	return json.Unmarshal(data, a)
}

// Question row of the questions table.
type Question struct {
	ID             string           `db:"id"`
	CategoryID     sql.NullString   `db:"category_id"`
	BankID         sql.NullString   `db:"bank_id"`
	DifficultyID   sql.NullString   `db:"difficulty_id"`
	CategoryName   sql.NullString   `db:"category_name"`
	BankName       sql.NullString   `db:"bank_name"`
	DifficultyName sql.NullString   `db:"difficulty_name"`
	ExamYear       sql.NullString   `db:"exam_year"`
	QuestionText   string           `db:"question_text"`
	Alternatives   AlternativesJSON `db:"alternatives"`
	CorrectAnswer  string           `db:"correct_answer"`
	Explanation    sql.NullString   `db:"explanation"`
	Source         sql.NullString   `db:"source"`
	IsActive       bool             `db:"is_active"`
	GeneratedByLLM bool             `db:"generated_by_llm"`
	CreatedAt      time.Time        `db:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at"`
}

// QuestionRef is the sitemap projection.
type QuestionRef struct {
	ID        string    `db:"id"`
	UpdatedAt time.Time `db:"updated_at"`
}
