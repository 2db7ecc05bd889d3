package explainer

import (
	"context"
	"errors"
	"testing"
	"time"

	"provafoco/internal/config"
	"provafoco/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// MockModel is a mock type for the llms.Model interface
type MockModel struct {
	mock.Mock
}

func (m *MockModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	args := m.Called(ctx, messages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llms.ContentResponse), args.Error(1)
}

func (m *MockModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func sampleQuestion() *domain.Question {
	return &domain.Question{
		ID:            "q1",
		Text:          "Qual é a capital do Brasil?",
		Alternatives:  domain.Alternatives{A: "Rio de Janeiro", B: "Brasília", C: "São Paulo", D: "Salvador"},
		CorrectAnswer: "b",
	}
}

func response(text string) *llms.ContentResponse {
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: text}}}
}

func TestNewOllamaExplainer_Validation(t *testing.T) {
	_, err := NewOllamaExplainer(config.LLMConfig{Model: "llama3"})
	assert.ErrorContains(t, err, "server URL cannot be empty")

	_, err = NewOllamaExplainer(config.LLMConfig{Server: "http://localhost:11434"})
	assert.ErrorContains(t, err, "model name cannot be empty")
}

func TestGenerateExplanation(t *testing.T) {
	ctx := context.Background()

	t.Run("success strips thinking block", func(t *testing.T) {
		model := new(MockModel)
		model.On("GenerateContent", mock.Anything, mock.MatchedBy(func(msgs []llms.MessageContent) bool {
			return len(msgs) == 1
		})).Return(response("<think>hmm</think>\n Brasília é a capital desde 1960. "), nil).Once()

		explanation, err := NewLLMExplainer(model, time.Second).GenerateExplanation(ctx, sampleQuestion())
		require.NoError(t, err)
		assert.Equal(t, "Brasília é a capital desde 1960.", explanation)
		model.AssertExpectations(t)
	})

	t.Run("model error is an LLM service error", func(t *testing.T) {
		model := new(MockModel)
		model.On("GenerateContent", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset")).Once()

		_, err := NewLLMExplainer(model, time.Second).GenerateExplanation(ctx, sampleQuestion())
		assert.True(t, domain.HasCode(err, domain.CodeLLMServiceError))
	})

	t.Run("empty answer", func(t *testing.T) {
		model := new(MockModel)
		model.On("GenerateContent", mock.Anything, mock.Anything).Return(response("  "), nil).Once()

		_, err := NewLLMExplainer(model, 0).GenerateExplanation(ctx, sampleQuestion())
		assert.True(t, domain.HasCode(err, domain.CodeLLMServiceError))
	})

	t.Run("question without valid correct alternative", func(t *testing.T) {
		q := sampleQuestion()
		q.CorrectAnswer = "e"
		_, err := NewLLMExplainer(new(MockModel), 0).GenerateExplanation(ctx, q)
		assert.True(t, domain.HasCode(err, domain.CodeInvalidInput))
	})
}

func TestFormatAlternatives(t *testing.T) {
	got := formatAlternatives(domain.Alternatives{A: "x", B: "y", C: "z", D: "w", E: "v"})
	assert.Equal(t, "a) x\nb) y\nc) z\nd) w\ne) v", got)
}
