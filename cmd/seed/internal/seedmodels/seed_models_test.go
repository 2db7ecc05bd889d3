package seedmodels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	raw := []byte(`{
		"categories": [{"name": "Direito Constitucional", "order": 1}],
		"banks": [{"name": "CESPE"}],
		"difficultyLevels": [{"name": "Médio", "level": 2}],
		"questions": [{
			"category": "Direito Constitucional",
			"bank": "CESPE",
			"difficulty": "Médio",
			"year": "2022",
			"questionText": "A Constituição de 1988 é classificada como:",
			"alternatives": {"A": "outorgada", "B": "promulgada", "C": "cesarista", "D": "semântica"},
			"correctAnswer": "B"
		}]
	}`)

	f, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, f.Questions, 1)

	q := f.Questions[0].ToDomain()
	assert.Equal(t, "b", q.CorrectAnswer)
	assert.Equal(t, "promulgada", q.Alternatives.B)
	assert.Empty(t, q.Alternatives.E)
	assert.True(t, q.IsActive)
	assert.Equal(t, 1, f.Categories[0].Order)
}

func TestParse_RejectsInvalidQuestion(t *testing.T) {
	raw := []byte(`{"questions": [{"questionText": "Sem alternativa E", "alternatives": {"a": "1", "b": "2", "c": "3", "d": "4"}, "correctAnswer": "e"}]}`)
	_, err := Parse(raw)
	assert.Error(t, err)

	_, err = Parse([]byte(`not json`))
	assert.Error(t, err)
}
