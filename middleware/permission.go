package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"truckscout/database"
	"truckscout/models"
	"truckscout/rbac"
)

// AccountContext resolves the :accountId route parameter to an existing
// account and rejects callers without a membership in it. The account and
// the caller's membership are stored in the request locals.
func AccountContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}

		accountID := c.Params("accountId")
		if accountID == "" {
			return JsonResponse(c, fiber.StatusBadRequest, false, "Account ID is required!", nil)
		}

		db := database.Database.Db

		var account models.Account
		if err := db.Where("id = ?", accountID).First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return JsonResponse(c, fiber.StatusNotFound, false, "Account not found!", nil)
			}
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while resolving account!", nil)
		}

		var membership models.Membership
		if err := db.Where("account_id = ? AND user_id = ?", account.ID, userID).First(&membership).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return JsonResponse(c, fiber.StatusForbidden, false, "You are not a member of this account!", nil)
			}
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while resolving membership!", nil)
		}

		c.Locals("account", account)
		c.Locals("membership", membership)

		return c.Next()
	}
}

// RequirePermission returns a middleware that checks if the caller holds the
// required permission in the account resolved for this request.
func RequirePermission(requiredPermission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}

		account, ok := c.Locals("account").(models.Account)
		if !ok {
			return JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
		}

		allowed, err := rbac.HasPermission(database.Database.Db, userID, account.ID, requiredPermission)
		if err != nil {
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions!", nil)
		}
		if !allowed {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}

		return c.Next()
	}
}

// AccountFromLocals returns the account resolved by AccountContext.
func AccountFromLocals(c *fiber.Ctx) (models.Account, bool) {
	account, ok := c.Locals("account").(models.Account)
	return account, ok
}
