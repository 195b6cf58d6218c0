package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	"truckscout/config"
	accountControllers "truckscout/controllers/account"
	authControllers "truckscout/controllers/auth"
	"truckscout/middleware"
	authValidators "truckscout/validators/auth"
)

func SetupAuthRoutes(app *fiber.App, cfg *config.Config) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup(cfg))
	authGroup.Post("/login", authValidators.Login(), authControllers.Login(cfg))
	authGroup.Post("/invitations/accept", middleware.JWTMiddleware(cfg), authValidators.AcceptInvitation(), accountControllers.AcceptInvitation)
}
