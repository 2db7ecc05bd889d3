package handler

import (
	"provafoco/internal/domain"
	"provafoco/internal/dto"
	"provafoco/internal/middleware"
	"provafoco/internal/service"
	"provafoco/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AnswerHandler records answers and serves the per-user aggregates.
type AnswerHandler struct {
	answers   service.AnswerService
	validator *validation.Validator
}

func NewAnswerHandler(answers service.AnswerService, v *validation.Validator) *AnswerHandler {
	return &AnswerHandler{answers: answers, validator: v}
}

// SubmitAnswer godoc
// @Summary Submit an answer
// @Description Grades the selected alternative. Signed-in users get their history and stats updated;
// @Description anonymous devices sending X-Guest-ID get the attempt appended to their guest log.
// @Tags answers
// @Accept json
// @Produce json
// @Param X-Guest-ID header string false "Anonymous device id"
// @Param body body dto.SubmitAnswerRequest true "Answer"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /answers [post]
func (h *AnswerHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req dto.SubmitAnswerRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}

	result, err := h.answers.Submit(c.UserContext(), middleware.SessionFrom(c), service.AnswerSubmission{
		QuestionID:     req.QuestionID,
		SelectedAnswer: req.SelectedAnswer,
		TimeSpent:      req.TimeSpent,
		GuestID:        middleware.GuestID(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.SubmitAnswerResponse{
		IsCorrect:     result.IsCorrect,
		CorrectAnswer: result.CorrectAnswer,
		Explanation:   result.Explanation,
	})
}

// GetHistory godoc
// @Summary My answer history
// @Description Most recent answers first
// @Tags answers
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Number of entries (default 50, max 200)"
// @Success 200 {array} dto.AnswerHistoryItem
// @Failure 401 {object} middleware.ErrorResponse
// @Router /answers/history [get]
func (h *AnswerHandler) GetHistory(c *fiber.Ctx) error {
	session := middleware.SessionFrom(c)
	if session == nil {
		return domain.NewUnauthorizedError("authentication required")
	}
	records, err := h.answers.History(c.UserContext(), session.UserID, c.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAnswerHistory(records))
}

// GetStats godoc
// @Summary My statistics
// @Tags stats
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserStatsResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /stats [get]
func (h *AnswerHandler) GetStats(c *fiber.Ctx) error {
	session := middleware.SessionFrom(c)
	if session == nil {
		return domain.NewUnauthorizedError("authentication required")
	}
	stats, err := h.answers.Stats(c.UserContext(), session.UserID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserStatsResponse(stats))
}

// GetCategoryStats godoc
// @Summary My statistics per category
// @Description Ordered by accuracy, best first
// @Tags stats
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.CategoryStatsResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /stats/categories [get]
func (h *AnswerHandler) GetCategoryStats(c *fiber.Ctx) error {
	session := middleware.SessionFrom(c)
	if session == nil {
		return domain.NewUnauthorizedError("authentication required")
	}
	stats, err := h.answers.CategoryStats(c.UserContext(), session.UserID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCategoryStatsResponses(stats))
}
