package handlers

import (
	"contest-scoring-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupContestRoutes(app *fiber.App, contestService *services.ContestService) {
	app.Get("/api/contests", contestService.GetAllContests)
	app.Post("/api/contests", contestService.CreateContest)
	app.Put("/api/contests/:id", contestService.UpdateContest)
	app.Put("/api/contests/:id/activate", contestService.ToggleContestActive)
	app.Delete("/api/contests/:id", contestService.DeleteContest)
	app.Post("/api/contests/:id/poster", contestService.UploadContestPoster)

	// Matches the original singular route the clients poll.
	app.Get("/api/contest/active", contestService.GetActiveContest)
}
