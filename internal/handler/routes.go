package handler

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts the feedback API. Shared between cmd/api and the
// handler tests so both exercise the same routing table.
func RegisterRoutes(app *fiber.App, feedbackHandler *FeedbackHandler) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Feedback API running")
	})

	api := app.Group("/api")
	api.Get("/db-check", feedbackHandler.DBCheck)
	api.Get("/feedback", feedbackHandler.List)
	api.Post("/feedback", feedbackHandler.Create)
	api.Put("/feedback/:id", feedbackHandler.Update)
	api.Delete("/feedback/:id", feedbackHandler.Delete)
}
