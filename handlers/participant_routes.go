package handlers

import (
	"contest-scoring-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupParticipantRoutes(app *fiber.App, participantService *services.ParticipantService) {
	app.Get("/api/grimpeurs", participantService.GetAllParticipants)
	app.Post("/api/grimpeurs", participantService.CreateParticipant)
	app.Put("/api/grimpeurs/:id", participantService.UpdateParticipant)
	app.Delete("/api/grimpeurs/:id", participantService.DeleteParticipant)
}
