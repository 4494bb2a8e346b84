package handlers

import (
	"contest-scoring-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupValidationRoutes(app *fiber.App, validationService *services.ValidationService) {
	app.Post("/api/validations", validationService.CreateValidation)
	app.Get("/api/validations", validationService.GetValidations)
	app.Delete("/api/validations", validationService.DeleteValidations)
	app.Delete("/api/validations/:id", validationService.DeleteValidationByID)
}
