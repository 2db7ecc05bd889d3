package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGuestLog(t *testing.T) {
	t.Run("Valid log with mixed id encodings", func(t *testing.T) {
		raw := `[{"questionId":"q1","isCorrect":true,"categoryId":"cat-1","timestamp":1700000000000},
		         {"questionId":42,"isCorrect":false,"categoryId":7,"timestamp":1700000001000},
		         {"questionId":"q3","isCorrect":true,"timestamp":1700000002000}]`
		entries := ParseGuestLog([]byte(raw))
		require.Len(t, entries, 3)
		assert.Equal(t, "q1", entries[0].QuestionID)
		assert.Equal(t, "42", entries[1].QuestionID)
		assert.Equal(t, "7", entries[1].CategoryID)
		assert.Equal(t, "", entries[2].CategoryID)
	})

	t.Run("Corrupted log is empty", func(t *testing.T) {
		assert.Empty(t, ParseGuestLog([]byte(`{not json`)))
		assert.NotNil(t, ParseGuestLog([]byte(`{not json`)))
	})

	t.Run("Missing log is empty", func(t *testing.T) {
		assert.Empty(t, ParseGuestLog(nil))
		assert.Empty(t, ParseGuestLog([]byte("null")))
	})
}

func TestComputeGuestStats(t *testing.T) {
	t.Run("Three correct two incorrect", func(t *testing.T) {
		entries := []GuestAnswer{
			{QuestionID: "q1", IsCorrect: true, CategoryID: "math", Timestamp: 1},
			{QuestionID: "q2", IsCorrect: true, CategoryID: "math", Timestamp: 2},
			{QuestionID: "q3", IsCorrect: false, CategoryID: "law", Timestamp: 3},
			{QuestionID: "q4", IsCorrect: true, Timestamp: 4},
			{QuestionID: "q5", IsCorrect: false, Timestamp: 5},
		}
		stats := ComputeGuestStats(entries)
		assert.Equal(t, 5, stats.TotalAnswered)
		assert.Equal(t, 3, stats.TotalCorrect)
		assert.Equal(t, 2, stats.TotalIncorrect)
		assert.Equal(t, 60, stats.Accuracy)

		require.Len(t, stats.ByCategory, 3)
		assert.Equal(t, GuestDefaultCategory, stats.ByCategory[0].CategoryID)
		assert.Equal(t, 2, stats.ByCategory[0].TotalAnswered)
		assert.Equal(t, 1, stats.ByCategory[0].TotalCorrect)
		assert.Equal(t, "law", stats.ByCategory[1].CategoryID)
		assert.Equal(t, 0, stats.ByCategory[1].Accuracy)
		assert.Equal(t, "math", stats.ByCategory[2].CategoryID)
		assert.Equal(t, 100, stats.ByCategory[2].Accuracy)
	})

	t.Run("Same shape as authenticated tally", func(t *testing.T) {
		entries := []GuestAnswer{
			{QuestionID: "q1", IsCorrect: false, Timestamp: 30},
			{QuestionID: "q1", IsCorrect: true, Timestamp: 10},
			{QuestionID: "q2", IsCorrect: true, Timestamp: 20},
		}
		stats := ComputeGuestStats(entries)
		tally := TallyOutcomes([]AnswerOutcome{{IsCorrect: true}, {IsCorrect: true}, {IsCorrect: false}})
		assert.Equal(t, tally.TotalAnswered, stats.TotalAnswered)
		assert.Equal(t, tally.TotalCorrect, stats.TotalCorrect)
		assert.Equal(t, tally.TotalIncorrect, stats.TotalIncorrect)
		assert.Equal(t, tally.Accuracy, stats.Accuracy)
		// ordered by timestamp, the wrong answer is last
		assert.Equal(t, 0, stats.CurrentStreak)
		assert.Equal(t, 2, stats.BestStreak)
	})

	t.Run("Empty log", func(t *testing.T) {
		stats := ComputeGuestStats(nil)
		assert.Equal(t, 0, stats.TotalAnswered)
		assert.Equal(t, 0, stats.Accuracy)
		assert.NotNil(t, stats.ByCategory)
		assert.Empty(t, stats.ByCategory)
	})
}
