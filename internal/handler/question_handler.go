package handler

import (
	"provafoco/internal/domain"
	"provafoco/internal/dto"
	"provafoco/internal/logger"
	"provafoco/internal/service"
	"provafoco/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuestionHandler handles question browsing and the admin question bank.
type QuestionHandler struct {
	service   service.QuestionService
	validator *validation.Validator
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(service service.QuestionService, v *validation.Validator) *QuestionHandler {
	return &QuestionHandler{service: service, validator: v}
}

// ListQuestions godoc
// @Summary List questions
// @Description Returns a random-ordered page of active questions matching every given filter
// @Tags questions
// @Produce json
// @Param categoryId query string false "Category ID"
// @Param category query string false "Category name"
// @Param bankId query string false "Exam bank ID"
// @Param bank query string false "Exam bank name"
// @Param difficultyId query string false "Difficulty level ID"
// @Param difficulty query string false "Difficulty name"
// @Param year query string false "Exam year"
// @Param search query string false "Case-insensitive text search"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.QuestionListResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /questions [get]
func (h *QuestionHandler) ListQuestions(c *fiber.Ctx) error {
	filter := questionFilterFromQuery(c).Normalize()
	questions, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.QuestionListResponse{
		Questions: dto.NewQuestionResponses(questions),
		Limit:     filter.Limit,
		Offset:    filter.Offset,
	})
}

// CountQuestions godoc
// @Summary Count questions
// @Description Number of active questions matching the filters
// @Tags questions
// @Produce json
// @Success 200 {object} dto.CountResponse
// @Router /questions/count [get]
func (h *QuestionHandler) CountQuestions(c *fiber.Ctx) error {
	count, err := h.service.Count(c.UserContext(), questionFilterFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.CountResponse{Count: count})
}

// RandomQuestions godoc
// @Summary Random questions
// @Description Returns up to count random active questions (default 10, max 50)
// @Tags questions
// @Produce json
// @Param count query int false "Number of questions"
// @Success 200 {array} dto.QuestionResponse
// @Router /questions/random [get]
func (h *QuestionHandler) RandomQuestions(c *fiber.Ctx) error {
	questions, err := h.service.Random(c.UserContext(), c.QueryInt("count", 0), questionFilterFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuestionResponses(questions))
}

// FilterChoices godoc
// @Summary Filter choices
// @Description Distinct category, bank and difficulty names present among active questions
// @Tags questions
// @Produce json
// @Success 200 {object} domain.FilterChoices
// @Router /questions/filters [get]
func (h *QuestionHandler) FilterChoices(c *fiber.Ctx) error {
	choices, err := h.service.Filters(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(choices)
}

// GetQuestion godoc
// @Summary Get a question
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/{id} [get]
func (h *QuestionHandler) GetQuestion(c *fiber.Ctx) error {
	question, err := h.service.GetByID(c.UserContext(), c.Params("id"), false)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuestionResponse(question))
}

// AdminListQuestions godoc
// @Summary List questions including inactive ones
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.AdminQuestionResponse
// @Router /admin/questions [get]
func (h *QuestionHandler) AdminListQuestions(c *fiber.Ctx) error {
	filter := questionFilterFromQuery(c)
	filter.IncludeInactive = true
	questions, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	out := make([]dto.AdminQuestionResponse, len(questions))
	for i, q := range questions {
		out[i] = dto.NewAdminQuestionResponse(q)
	}
	return c.JSON(out)
}

// AdminGetQuestion godoc
// @Summary Get a question with its answer key
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.AdminQuestionResponse
// @Router /admin/questions/{id} [get]
func (h *QuestionHandler) AdminGetQuestion(c *fiber.Ctx) error {
	question, err := h.service.GetByID(c.UserContext(), c.Params("id"), true)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAdminQuestionResponse(question))
}

// CreateQuestion godoc
// @Summary Create a question
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.QuestionRequest true "Question"
// @Success 201 {object} dto.AdminQuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /admin/questions [post]
func (h *QuestionHandler) CreateQuestion(c *fiber.Ctx) error {
	var req dto.QuestionRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	question := req.ToDomain()
	if err := h.service.Create(c.UserContext(), question); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewAdminQuestionResponse(question))
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param body body dto.QuestionRequest true "Question"
// @Success 200 {object} dto.AdminQuestionResponse
// @Router /admin/questions/{id} [put]
func (h *QuestionHandler) UpdateQuestion(c *fiber.Ctx) error {
	var req dto.QuestionRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	question := req.ToDomain()
	if err := h.service.Update(c.UserContext(), c.Params("id"), question); err != nil {
		return err
	}
	return c.JSON(dto.NewAdminQuestionResponse(question))
}

// DeleteQuestion godoc
// @Summary Deactivate a question
// @Tags admin
// @Security ApiKeyAuth
// @Param id path string true "Question ID"
// @Success 204
// @Router /admin/questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GenerateExplanation godoc
// @Summary Generate an explanation with the LLM
// @Description Asks the configured model to explain the correct alternative and stores the result
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.AdminQuestionResponse
// @Failure 503 {object} middleware.ErrorResponse "LLM unavailable"
// @Router /admin/questions/{id}/explanation [post]
func (h *QuestionHandler) GenerateExplanation(c *fiber.Ctx) error {
	question, err := h.service.GenerateExplanation(c.UserContext(), c.Params("id"))
	if err != nil {
		if domain.HasCode(err, domain.CodeLLMServiceError) {
			logger.Get().Warn("Explanation generation failed", zap.String("question_id", c.Params("id")), zap.Error(err))
		}
		return err
	}
	return c.JSON(dto.NewAdminQuestionResponse(question))
}
