package handler

import (
	"provafoco/internal/dto"
	"provafoco/internal/service"
	"provafoco/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// TaxonomyHandler serves categories, exam banks and difficulty levels.
type TaxonomyHandler struct {
	service   service.TaxonomyService
	validator *validation.Validator
}

func NewTaxonomyHandler(service service.TaxonomyService, v *validation.Validator) *TaxonomyHandler {
	return &TaxonomyHandler{service: service, validator: v}
}

// ListCategories godoc
// @Summary List categories
// @Description Returns active categories ordered by display order and name
// @Tags taxonomy
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Router /categories [get]
func (h *TaxonomyHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCategoryResponses(categories))
}

// GetCategory godoc
// @Summary Get a category
// @Tags taxonomy
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /categories/{id} [get]
func (h *TaxonomyHandler) GetCategory(c *fiber.Ctx) error {
	category, err := h.service.GetCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCategoryResponse(category))
}

// CreateCategory godoc
// @Summary Create a category
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.CategoryRequest true "Category"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /admin/categories [post]
func (h *TaxonomyHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	category := req.ToDomain()
	if err := h.service.CreateCategory(c.UserContext(), category); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCategoryResponse(category))
}

// UpdateCategory godoc
// @Summary Update a category
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param body body dto.CategoryRequest true "Category"
// @Success 200 {object} dto.CategoryResponse
// @Router /admin/categories/{id} [put]
func (h *TaxonomyHandler) UpdateCategory(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	category := req.ToDomain()
	if err := h.service.UpdateCategory(c.UserContext(), c.Params("id"), category); err != nil {
		return err
	}
	return c.JSON(dto.NewCategoryResponse(category))
}

// DeleteCategory godoc
// @Summary Deactivate a category
// @Tags admin
// @Security ApiKeyAuth
// @Param id path string true "Category ID"
// @Success 204
// @Router /admin/categories/{id} [delete]
func (h *TaxonomyHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.service.DeleteCategory(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListBanks godoc
// @Summary List exam banks
// @Tags taxonomy
// @Produce json
// @Success 200 {array} dto.BankResponse
// @Router /banks [get]
func (h *TaxonomyHandler) ListBanks(c *fiber.Ctx) error {
	banks, err := h.service.ListBanks(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBankResponses(banks))
}

// GetBank godoc
// @Summary Get an exam bank
// @Tags taxonomy
// @Produce json
// @Param id path string true "Bank ID"
// @Success 200 {object} dto.BankResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /banks/{id} [get]
func (h *TaxonomyHandler) GetBank(c *fiber.Ctx) error {
	bank, err := h.service.GetBank(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBankResponse(bank))
}

// CreateBank godoc
// @Summary Create an exam bank
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.BankRequest true "Bank"
// @Success 201 {object} dto.BankResponse
// @Router /admin/banks [post]
func (h *TaxonomyHandler) CreateBank(c *fiber.Ctx) error {
	var req dto.BankRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	bank := req.ToDomain()
	if err := h.service.CreateBank(c.UserContext(), bank); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewBankResponse(bank))
}

// UpdateBank godoc
// @Summary Update an exam bank
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Bank ID"
// @Param body body dto.BankRequest true "Bank"
// @Success 200 {object} dto.BankResponse
// @Router /admin/banks/{id} [put]
func (h *TaxonomyHandler) UpdateBank(c *fiber.Ctx) error {
	var req dto.BankRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	bank := req.ToDomain()
	if err := h.service.UpdateBank(c.UserContext(), c.Params("id"), bank); err != nil {
		return err
	}
	return c.JSON(dto.NewBankResponse(bank))
}

// DeleteBank godoc
// @Summary Deactivate an exam bank
// @Tags admin
// @Security ApiKeyAuth
// @Param id path string true "Bank ID"
// @Success 204
// @Router /admin/banks/{id} [delete]
func (h *TaxonomyHandler) DeleteBank(c *fiber.Ctx) error {
	if err := h.service.DeleteBank(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListDifficultyLevels godoc
// @Summary List difficulty levels
// @Tags taxonomy
// @Produce json
// @Success 200 {array} dto.DifficultyLevelResponse
// @Router /difficulty-levels [get]
func (h *TaxonomyHandler) ListDifficultyLevels(c *fiber.Ctx) error {
	levels, err := h.service.ListDifficultyLevels(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDifficultyLevelResponses(levels))
}

// CreateDifficultyLevel godoc
// @Summary Create a difficulty level
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.DifficultyLevelRequest true "Difficulty level"
// @Success 201 {object} dto.DifficultyLevelResponse
// @Router /admin/difficulty-levels [post]
func (h *TaxonomyHandler) CreateDifficultyLevel(c *fiber.Ctx) error {
	var req dto.DifficultyLevelRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	level := req.ToDomain()
	if err := h.service.CreateDifficultyLevel(c.UserContext(), level); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewDifficultyLevelResponse(level))
}

// UpdateDifficultyLevel godoc
// @Summary Update a difficulty level
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Difficulty level ID"
// @Param body body dto.DifficultyLevelRequest true "Difficulty level"
// @Success 200 {object} dto.DifficultyLevelResponse
// @Router /admin/difficulty-levels/{id} [put]
func (h *TaxonomyHandler) UpdateDifficultyLevel(c *fiber.Ctx) error {
	var req dto.DifficultyLevelRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	level := req.ToDomain()
	if err := h.service.UpdateDifficultyLevel(c.UserContext(), c.Params("id"), level); err != nil {
		return err
	}
	return c.JSON(dto.NewDifficultyLevelResponse(level))
}

// DeleteDifficultyLevel godoc
// @Summary Delete an unused difficulty level
// @Tags admin
// @Security ApiKeyAuth
// @Param id path string true "Difficulty level ID"
// @Success 204
// @Failure 400 {object} middleware.ValidationErrorResponse "Level still referenced by questions"
// @Router /admin/difficulty-levels/{id} [delete]
func (h *TaxonomyHandler) DeleteDifficultyLevel(c *fiber.Ctx) error {
	if err := h.service.DeleteDifficultyLevel(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
