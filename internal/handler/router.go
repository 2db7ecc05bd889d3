package handler

import (
	"provafoco/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Router wires every handler to its path and access tier.
type Router struct {
	Auth       *middleware.Auth
	Validation *middleware.ValidationMiddleware

	System    *SystemHandler
	AuthH     *AuthHandler
	Taxonomy  *TaxonomyHandler
	Questions *QuestionHandler
	Answers   *AnswerHandler
	Guests    *GuestHandler
	Content   *ContentHandler
}

// Register mounts the routes on app.
func (r *Router) Register(app *fiber.App) {
	vm := r.Validation
	id := vm.ValidateIDParam("id")

	app.Get("/health", r.System.Health)
	app.Get("/sitemap.xml", r.System.Sitemap)

	api := app.Group("/api", r.Auth.OptionalAuth())

	api.Get("/categories", r.Taxonomy.ListCategories)
	api.Get("/categories/:id", id, r.Taxonomy.GetCategory)
	api.Get("/banks", r.Taxonomy.ListBanks)
	api.Get("/banks/:id", id, r.Taxonomy.GetBank)
	api.Get("/difficulty-levels", r.Taxonomy.ListDifficultyLevels)

	questions := api.Group("/questions", vm.ValidateQuestionQuery())
	questions.Get("/", r.Questions.ListQuestions)
	questions.Get("/count", r.Questions.CountQuestions)
	questions.Get("/random", r.Questions.RandomQuestions)
	questions.Get("/filters", r.Questions.FilterChoices)
	questions.Get("/:id", id, r.Questions.GetQuestion)

	api.Post("/answers", vm.ValidateGuestID(), r.Answers.SubmitAnswer)
	api.Get("/answers/history", r.Auth.Protected(), r.Answers.GetHistory)
	api.Get("/stats", r.Auth.Protected(), r.Answers.GetStats)
	api.Get("/stats/categories", r.Auth.Protected(), r.Answers.GetCategoryStats)

	guest := api.Group("/guest", vm.ValidateGuestID())
	guest.Get("/stats", r.Guests.GetGuestStats)
	guest.Post("/stats", r.Guests.ComputeGuestStats)
	guest.Delete("/stats", r.Guests.ClearGuestStats)

	api.Get("/ads/active", vm.ValidatePlacement(), r.Content.ActiveAds)
	api.Get("/seo", r.Content.GetSeo)

	auth := api.Group("/auth")
	auth.Post("/admin/login", r.AuthH.AdminLogin)
	auth.Post("/logout", r.AuthH.Logout)
	auth.Get("/me", r.AuthH.Me)
	auth.Get("/google/login", r.AuthH.GoogleLogin)
	auth.Get("/google/callback", r.AuthH.GoogleCallback)

	admin := api.Group("/admin", r.Auth.AdminOnly())

	admin.Post("/categories", r.Taxonomy.CreateCategory)
	admin.Put("/categories/:id", id, r.Taxonomy.UpdateCategory)
	admin.Delete("/categories/:id", id, r.Taxonomy.DeleteCategory)

	admin.Post("/banks", r.Taxonomy.CreateBank)
	admin.Put("/banks/:id", id, r.Taxonomy.UpdateBank)
	admin.Delete("/banks/:id", id, r.Taxonomy.DeleteBank)

	admin.Post("/difficulty-levels", r.Taxonomy.CreateDifficultyLevel)
	admin.Put("/difficulty-levels/:id", id, r.Taxonomy.UpdateDifficultyLevel)
	admin.Delete("/difficulty-levels/:id", id, r.Taxonomy.DeleteDifficultyLevel)

	admin.Get("/questions", vm.ValidateQuestionQuery(), r.Questions.AdminListQuestions)
	admin.Get("/questions/:id", id, r.Questions.AdminGetQuestion)
	admin.Post("/questions", r.Questions.CreateQuestion)
	admin.Put("/questions/:id", id, r.Questions.UpdateQuestion)
	admin.Delete("/questions/:id", id, r.Questions.DeleteQuestion)
	admin.Post("/questions/:id/explanation", id, r.Questions.GenerateExplanation)

	admin.Get("/ads", r.Content.ListAds)
	admin.Post("/ads", r.Content.CreateAd)
	admin.Put("/ads/:id", id, r.Content.UpdateAd)
	admin.Delete("/ads/:id", id, r.Content.DeleteAd)

	admin.Get("/seo", r.Content.ListSeo)
	admin.Put("/seo", r.Content.UpsertSeo)
}
