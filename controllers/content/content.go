package contentController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"truckscout/cms"
	"truckscout/middleware"
)

// GetPage serves a single marketing/docs page by slug. Public, no auth.
func GetPage(client cms.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := client.GetPage(c.Params("slug"))
		if err != nil {
			if errors.Is(err, cms.ErrPageNotFound) {
				return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Page not found!", nil)
			}
			log.Printf("Error fetching page %s: %v", c.Params("slug"), err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch page!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Page fetched successfully!", page)
	}
}

// ListPages serves a content collection, optionally filtered by ?collection=.
func ListPages(client cms.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pages, err := client.ListPages(c.Query("collection"))
		if err != nil {
			log.Printf("Error listing pages: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pages!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Pages fetched successfully!", pages)
	}
}
