package handler

import (
	"provafoco/internal/domain"
	"provafoco/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// bindJSON parses the request body into dst and runs struct validation on it.
func bindJSON(c *fiber.Ctx, v *validation.Validator, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	return v.Struct(dst)
}

// questionFilterFromQuery reads the public filter parameters. Paging bounds are applied by the service.
func questionFilterFromQuery(c *fiber.Ctx) domain.QuestionFilter {
	return domain.QuestionFilter{
		CategoryID:   c.Query("categoryId"),
		Category:     c.Query("category"),
		BankID:       c.Query("bankId"),
		Bank:         c.Query("bank"),
		DifficultyID: c.Query("difficultyId"),
		Difficulty:   c.Query("difficulty"),
		Year:         c.Query("year"),
		Search:       c.Query("search"),
		Limit:        c.QueryInt("limit", 0),
		Offset:       c.QueryInt("offset", 0),
	}
}
