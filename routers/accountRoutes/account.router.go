package accountRoutes

import (
	"github.com/gofiber/fiber/v2"

	"truckscout/config"
	accountControllers "truckscout/controllers/account"
	"truckscout/middleware"
	"truckscout/utils"
	accountValidators "truckscout/validators/account"
)

func SetupAccountRoutes(app *fiber.App, cfg *config.Config, mailer utils.Mailer) {
	accountGroup := app.Group("/accounts", middleware.JWTMiddleware(cfg))

	accountGroup.Post("/", accountValidators.CreateAccount(), accountControllers.CreateTeamAccount)
	accountGroup.Get("/", accountControllers.ListAccounts)

	scoped := accountGroup.Group("/:accountId", middleware.AccountContext())

	scoped.Get("/", accountControllers.GetAccount)
	scoped.Delete("/", accountControllers.DeleteAccountHandler)

	scoped.Get("/members", middleware.RequirePermission("members.read"), accountControllers.ListMembers)
	scoped.Post("/members", accountValidators.AddMember(), accountControllers.AddMember)
	scoped.Patch("/members/:userId/role", accountValidators.ChangeRole(), accountControllers.ChangeMemberRole)
	scoped.Delete("/members/:userId", accountControllers.RemoveMember)

	scoped.Post("/invitations", accountValidators.AddMember(), accountControllers.InviteMember(cfg, mailer))
}
