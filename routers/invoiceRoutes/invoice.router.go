package invoiceRoutes

import (
	"github.com/gofiber/fiber/v2"

	"truckscout/config"
	invoiceControllers "truckscout/controllers/invoice"
	"truckscout/middleware"
	invoiceValidators "truckscout/validators/invoice"
)

func SetupInvoiceRoutes(app *fiber.App, cfg *config.Config) {
	invoiceGroup := app.Group("/accounts/:accountId/invoices", middleware.JWTMiddleware(cfg), middleware.AccountContext())

	invoiceGroup.Post("/", invoiceValidators.CreateInvoice(), invoiceControllers.CreateInvoice)
	invoiceGroup.Get("/", middleware.RequirePermission("invoices.read"), invoiceControllers.InvoiceList)
	invoiceGroup.Get("/:invoiceId", middleware.RequirePermission("invoices.read"), invoiceControllers.GetInvoice)
	invoiceGroup.Put("/:invoiceId", invoiceValidators.UpdateInvoice(), invoiceControllers.UpdateInvoice)
	invoiceGroup.Delete("/:invoiceId", invoiceControllers.DeleteInvoice)
}
