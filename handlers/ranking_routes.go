package handlers

import (
	"contest-scoring-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupRankingRoutes(app *fiber.App, rankingService *services.RankingService, notifier *services.RankingsNotifier) {
	app.Get("/api/rankings", rankingService.GetRankings)
	app.Get("/api/rankings/stream", rankingService.StreamRankingChanges(notifier))
}
