package loadRoutes

import (
	"github.com/gofiber/fiber/v2"

	"truckscout/config"
	loadControllers "truckscout/controllers/load"
	"truckscout/middleware"
	loadValidators "truckscout/validators/load"
)

func SetupLoadRoutes(app *fiber.App, cfg *config.Config) {
	loadGroup := app.Group("/accounts/:accountId/loads", middleware.JWTMiddleware(cfg), middleware.AccountContext())

	loadGroup.Post("/", loadValidators.CreateLoad(), loadControllers.CreateLoad)
	loadGroup.Get("/", middleware.RequirePermission("loads.read"), loadControllers.LoadList)
	loadGroup.Get("/:loadId", middleware.RequirePermission("loads.read"), loadControllers.GetLoad)
	loadGroup.Put("/:loadId", loadValidators.UpdateLoad(), loadControllers.UpdateLoad)
	loadGroup.Delete("/:loadId", loadControllers.DeleteLoad)
}
