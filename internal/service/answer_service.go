package service

import (
	"context"
	"time"

	"provafoco/internal/domain"
	"provafoco/internal/logger"
	"provafoco/internal/observability"

	"go.uber.org/zap"
)

// AnswerSubmission is one attempt at a question. GuestID is only used without a session.
type AnswerSubmission struct {
	QuestionID     string
	SelectedAnswer string
	TimeSpent      *int
	GuestID        string
}

// AnswerResult reveals the answer key for the submitted question.
type AnswerResult struct {
	IsCorrect     bool
	CorrectAnswer string
	Explanation   string
}

// AnswerService evaluates answers and maintains the per-user aggregates.
type AnswerService interface {
	Submit(ctx context.Context, session *domain.Session, submission AnswerSubmission) (*AnswerResult, error)
	History(ctx context.Context, userID string, limit int) ([]*domain.AnswerRecord, error)
	Stats(ctx context.Context, userID string) (*domain.UserStats, error)
	CategoryStats(ctx context.Context, userID string) ([]*domain.UserCategoryStats, error)
}

type answerService struct {
	questions domain.QuestionRepository
	answers   domain.UserAnswerRepository
	stats     domain.StatsRepository
	tx        domain.TransactionManager
	guests    GuestService
}

func NewAnswerService(
	questions domain.QuestionRepository,
	answers domain.UserAnswerRepository,
	stats domain.StatsRepository,
	tx domain.TransactionManager,
	guests GuestService,
) AnswerService {
	return &answerService{
		questions: questions,
		answers:   answers,
		stats:     stats,
		tx:        tx,
		guests:    guests,
	}
}

func (s *answerService) Submit(ctx context.Context, session *domain.Session, submission AnswerSubmission) (*AnswerResult, error) {
	ctx, span := observability.StartSpan(ctx, "AnswerService.Submit", "question.id", submission.QuestionID)
	defer span.End()

	// graded by exact match; "B" or " b" is not an option letter
	selected := submission.SelectedAnswer
	if !domain.IsAnswerLetter(selected) {
		return nil, domain.ValidationErrors{domain.NewInvalidFormatError("selectedAnswer", submission.SelectedAnswer)}
	}

	question, err := s.questions.GetByID(ctx, submission.QuestionID)
	if err != nil {
		return nil, err
	}
	if question == nil || !question.IsActive {
		return nil, domain.NewNotFoundError("question", submission.QuestionID)
	}

	result := &AnswerResult{
		IsCorrect:     selected == question.CorrectAnswer,
		CorrectAnswer: question.CorrectAnswer,
		Explanation:   question.Explanation,
	}

	switch {
	case session != nil:
		if err := s.record(ctx, session.UserID, question, selected, result.IsCorrect, submission.TimeSpent); err != nil {
			return nil, err
		}
	case submission.GuestID != "":
		entry := domain.GuestAnswer{
			QuestionID: question.ID,
			IsCorrect:  result.IsCorrect,
			CategoryID: question.CategoryID,
			Timestamp:  time.Now().UnixMilli(),
		}
		if err := s.guests.Append(ctx, submission.GuestID, entry); err != nil {
			logger.Get().Warn("Failed to append guest answer", zap.String("guestID", submission.GuestID), zap.Error(err))
		}
	}
	return result, nil
}

// record appends the attempt and recomputes the aggregates in one transaction.
func (s *answerService) record(ctx context.Context, userID string, question *domain.Question, selected string, correct bool, timeSpent *int) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		previous, err := s.answers.CountAttempts(ctx, userID, question.ID)
		if err != nil {
			return err
		}
		answer := &domain.UserAnswer{
			UserID:         userID,
			QuestionID:     question.ID,
			SelectedAnswer: selected,
			IsCorrect:      correct,
			TimeSpent:      timeSpent,
			AttemptNumber:  previous + 1,
			CreatedAt:      time.Now(),
		}
		if err := s.answers.Create(ctx, answer); err != nil {
			return err
		}
		if err := s.recomputeUserStats(ctx, userID); err != nil {
			return err
		}
		if question.CategoryID != "" {
			if err := s.recomputeCategoryStats(ctx, userID, question.CategoryID); err != nil {
				return err
			}
		}
		logger.Get().Debug("Answer recorded",
			zap.String("userID", userID),
			zap.String("questionID", question.ID),
			zap.Int("attempt", answer.AttemptNumber),
			zap.Bool("correct", correct))
		return nil
	})
}

func (s *answerService) recomputeUserStats(ctx context.Context, userID string) error {
	ctx, span := observability.StartSpan(ctx, "AnswerService.recomputeUserStats", "user.id", userID)
	defer span.End()

	outcomes, err := s.answers.OutcomesByUser(ctx, userID)
	if err != nil {
		return err
	}
	stats, err := s.stats.GetUserStats(ctx, userID)
	if err != nil {
		return err
	}
	if stats == nil {
		stats = &domain.UserStats{UserID: userID}
	}
	stats.Apply(domain.TallyOutcomes(outcomes))
	return s.stats.SaveUserStats(ctx, stats)
}

func (s *answerService) recomputeCategoryStats(ctx context.Context, userID, categoryID string) error {
	outcomes, err := s.answers.OutcomesByUserCategory(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	stats := &domain.UserCategoryStats{UserID: userID, CategoryID: categoryID}
	stats.Apply(domain.TallyOutcomes(outcomes))
	return s.stats.SaveCategoryStats(ctx, stats)
}

func (s *answerService) History(ctx context.Context, userID string, limit int) ([]*domain.AnswerRecord, error) {
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}
	if limit > domain.MaxHistoryLimit {
		limit = domain.MaxHistoryLimit
	}
	records, err := s.answers.History(ctx, userID, limit)
	return degradeList("answer history", records, err)
}

// Stats returns the user's aggregate, creating a zeroed row on first access.
func (s *answerService) Stats(ctx context.Context, userID string) (*domain.UserStats, error) {
	stats, err := s.stats.GetUserStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stats != nil {
		return stats, nil
	}
	stats = &domain.UserStats{UserID: userID}
	if err := s.stats.SaveUserStats(ctx, stats); err != nil {
		logger.Get().Warn("Failed to create empty user stats", zap.String("userID", userID), zap.Error(err))
	}
	return stats, nil
}

func (s *answerService) CategoryStats(ctx context.Context, userID string) ([]*domain.UserCategoryStats, error) {
	stats, err := s.stats.ListCategoryStats(ctx, userID)
	return degradeList("category stats", stats, err)
}
