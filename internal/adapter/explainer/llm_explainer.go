package explainer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"provafoco/internal/config"
	"provafoco/internal/domain"
	"provafoco/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

const promptTemplate = `Você é um professor que prepara candidatos para concursos públicos.
Explique em português, em no máximo 120 palavras, por que a alternativa correta da questão abaixo está certa.
Responda apenas com a explicação, sem repetir o enunciado.

Questão: %s
%s
Alternativa correta: %s) %s`

// llmExplainer implements domain.ExplanationGenerator
type llmExplainer struct {
	model   llms.Model
	timeout time.Duration
}

// NewLLMExplainer wraps any langchaingo model.
func NewLLMExplainer(model llms.Model, timeout time.Duration) domain.ExplanationGenerator {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &llmExplainer{model: model, timeout: timeout}
}

// NewOllamaExplainer connects to the configured Ollama server.
func NewOllamaExplainer(cfg config.LLMConfig) (domain.ExplanationGenerator, error) {
	if cfg.Server == "" {
		return nil, errors.New("ollama server URL cannot be empty")
	}
	if cfg.Model == "" {
		return nil, errors.New("ollama model name cannot be empty")
	}
	llm, err := ollama.New(ollama.WithServerURL(cfg.Server), ollama.WithModel(cfg.Model))
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return NewLLMExplainer(llm, cfg.Timeout), nil
}

// GenerateExplanation implements domain.ExplanationGenerator
func (e *llmExplainer) GenerateExplanation(ctx context.Context, question *domain.Question) (string, error) {
	l := logger.Get()
	correct, ok := question.Alternatives.Get(question.CorrectAnswer)
	if !ok {
		return "", domain.NewInvalidInputError("question has no usable correct alternative")
	}

	prompt := fmt.Sprintf(promptTemplate, question.Text, formatAlternatives(question.Alternatives), question.CorrectAnswer, correct)

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	l.Info("Requesting explanation from LLM", zap.String("question_id", question.ID))
	raw, err := llms.GenerateFromSinglePrompt(ctx, e.model, prompt, llms.WithTemperature(0.2))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("LLM request timed out", zap.Error(err), zap.String("question_id", question.ID))
			return "", domain.NewLLMServiceError(fmt.Errorf("LLM request timed out: %w", err))
		}
		l.Error("Failed to get response from LLM", zap.Error(err), zap.String("question_id", question.ID))
		return "", domain.NewLLMServiceError(err)
	}

	explanation := stripThinking(raw)
	if explanation == "" {
		return "", domain.NewLLMServiceError(errors.New("empty explanation returned by LLM"))
	}
	l.Debug("LLM explanation received", zap.String("question_id", question.ID), zap.Int("length", len(explanation)))
	return explanation, nil
}

func formatAlternatives(a domain.Alternatives) string {
	var b strings.Builder
	for _, letter := range []string{"a", "b", "c", "d", "e"} {
		if text, ok := a.Get(letter); ok {
			fmt.Fprintf(&b, "%s) %s\n", letter, text)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// stripThinking drops a leading <think>...</think> block emitted by reasoning models.
func stripThinking(s string) string {
	s = strings.TrimSpace(s)
	if start := strings.Index(s, "<think>"); start != -1 {
		if end := strings.Index(s, "</think>"); end > start {
			s = s[:start] + s[end+len("</think>"):]
		}
	}
	return strings.TrimSpace(s)
}
