package seedmodels

import (
	"encoding/json"
	"fmt"
	"strings"

	"provafoco/internal/domain"
)

// SeedQuestion defines a question in the JSON seed file. Taxonomy is referenced by name.
type SeedQuestion struct {
	Category      string            `json:"category"`
	Bank          string            `json:"bank"`
	Difficulty    string            `json:"difficulty"`
	Year          string            `json:"year"`
	QuestionText  string            `json:"questionText"`
	Alternatives  map[string]string `json:"alternatives"`
	CorrectAnswer string            `json:"correctAnswer"`
	Explanation   string            `json:"explanation"`
	Source        string            `json:"source"`
}

// SeedCategory defines the structure for a category in the JSON seed file.
type SeedCategory struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Order       int    `json:"order"`
}

type SeedBank struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type SeedDifficulty struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
	Color string `json:"color"`
}

// SeedFile is the top-level document.
type SeedFile struct {
	Categories       []SeedCategory   `json:"categories"`
	Banks            []SeedBank       `json:"banks"`
	DifficultyLevels []SeedDifficulty `json:"difficultyLevels"`
	Questions        []SeedQuestion   `json:"questions"`
}

// Parse decodes a seed document and rejects questions that could never be stored.
func Parse(raw []byte) (*SeedFile, error) {
	var f SeedFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	for i, q := range f.Questions {
		if err := q.ToDomain().Validate(); err != nil {
			return nil, fmt.Errorf("question %d (%q): %w", i, firstN(q.QuestionText, 40), err)
		}
	}
	return &f, nil
}

// ToDomain maps the seed entry to a question; ids are resolved from the names on save.
func (q SeedQuestion) ToDomain() *domain.Question {
	alt := make(map[string]string, len(q.Alternatives))
	for k, v := range q.Alternatives {
		alt[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &domain.Question{
		Category:   q.Category,
		Bank:       q.Bank,
		Difficulty: q.Difficulty,
		Year:       q.Year,
		Text:       q.QuestionText,
		Alternatives: domain.Alternatives{
			A: alt["a"],
			B: alt["b"],
			C: alt["c"],
			D: alt["d"],
			E: alt["e"],
		},
		CorrectAnswer: strings.ToLower(strings.TrimSpace(q.CorrectAnswer)),
		Explanation:   q.Explanation,
		Source:        q.Source,
		IsActive:      true,
	}
}

func firstN(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
