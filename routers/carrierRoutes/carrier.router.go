package carrierRoutes

import (
	"github.com/gofiber/fiber/v2"

	"truckscout/config"
	carrierControllers "truckscout/controllers/carrier"
	"truckscout/middleware"
	carrierValidators "truckscout/validators/carrier"
)

func SetupCarrierRoutes(app *fiber.App, cfg *config.Config) {
	carrierGroup := app.Group("/accounts/:accountId/carriers", middleware.JWTMiddleware(cfg), middleware.AccountContext())

	carrierGroup.Post("/", carrierValidators.CreateCarrier(), carrierControllers.CreateCarrier)
	carrierGroup.Get("/", middleware.RequirePermission("carriers.read"), carrierControllers.CarrierList)
	carrierGroup.Get("/:carrierId", middleware.RequirePermission("carriers.read"), carrierControllers.GetCarrier)
	carrierGroup.Put("/:carrierId", carrierValidators.UpdateCarrier(), carrierControllers.UpdateCarrier)
	carrierGroup.Delete("/:carrierId", carrierControllers.DeleteCarrier)
}
