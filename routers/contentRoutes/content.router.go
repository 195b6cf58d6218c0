package contentRoutes

import (
	"github.com/gofiber/fiber/v2"

	"truckscout/cms"
	contentControllers "truckscout/controllers/content"
)

func SetupContentRoutes(app *fiber.App, client cms.Client) {
	pagesGroup := app.Group("/pages")

	pagesGroup.Get("/", contentControllers.ListPages(client))
	pagesGroup.Get("/:slug", contentControllers.GetPage(client))
}
