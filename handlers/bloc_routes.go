package handlers

import (
	"contest-scoring-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupBlocRoutes(app *fiber.App, blocService *services.BlocService) {
	app.Get("/api/blocs", blocService.GetAllBlocs)
	app.Post("/api/blocs", blocService.CreateBloc)
	app.Post("/api/blocs/quick-setup", blocService.QuickSetup)
	app.Put("/api/blocs/:id", blocService.UpdateBloc)
	app.Delete("/api/blocs/:id", blocService.DeleteBloc)
	app.Delete("/api/blocs", blocService.DeleteAllBlocs)

	app.Get("/api/zones", blocService.GetAllZones)
	app.Post("/api/zones", blocService.CreateZone)
	app.Put("/api/zones/rename", blocService.RenameZones)
	app.Delete("/api/zones", blocService.DeleteAllZones)
}
