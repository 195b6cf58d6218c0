package factoringRoutes

import (
	"github.com/gofiber/fiber/v2"

	"truckscout/config"
	factoringControllers "truckscout/controllers/factoring"
	"truckscout/middleware"
	factoringValidators "truckscout/validators/factoring"
)

func SetupFactoringRoutes(app *fiber.App, cfg *config.Config) {
	factoringGroup := app.Group("/accounts/:accountId/factoring-companies", middleware.JWTMiddleware(cfg), middleware.AccountContext())

	factoringGroup.Post("/", factoringValidators.CreateFactoringCompany(), factoringControllers.CreateFactoringCompany)
	factoringGroup.Get("/", middleware.RequirePermission("factoring_companies.read"), factoringControllers.FactoringCompanyList)
	factoringGroup.Get("/:factoringId", middleware.RequirePermission("factoring_companies.read"), factoringControllers.GetFactoringCompany)
	factoringGroup.Put("/:factoringId", factoringValidators.UpdateFactoringCompany(), factoringControllers.UpdateFactoringCompany)
	factoringGroup.Delete("/:factoringId", factoringControllers.DeleteFactoringCompany)
}
