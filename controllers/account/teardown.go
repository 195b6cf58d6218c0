package accountController

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"truckscout/database"
	"truckscout/middleware"
	"truckscout/models"
	"truckscout/rbac"
)

// DeleteAccount removes an account and everything it owns, children before
// parents: invoices, loads, carriers, factoring companies, role bindings,
// invitations, non-owner memberships, then the account row together with its
// owner membership.
//
// Deleting an unknown account id is a no-op. A failing step is logged and
// aborts the teardown; earlier steps are not rolled back and the caller is
// responsible for retrying.
func DeleteAccount(db *gorm.DB, accountID string) error {
	var account models.Account
	if err := db.Where("id = ?", accountID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Already gone, nothing to do.
			return nil
		}
		return fmt.Errorf("account lookup: %w", err)
	}

	scope := rbac.ScopeAccount(accountID)

	steps := []struct {
		name string
		fn   func() error
	}{
		{"invoices", func() error {
			return db.Scopes(scope).Delete(&models.Invoice{}).Error
		}},
		{"loads", func() error {
			return db.Scopes(scope).Delete(&models.Load{}).Error
		}},
		{"carriers", func() error {
			return db.Scopes(scope).Delete(&models.Carrier{}).Error
		}},
		{"factoring companies", func() error {
			return db.Scopes(scope).Delete(&models.FactoringCompany{}).Error
		}},
		{"role permissions", func() error {
			return db.Scopes(scope).Delete(&models.RolePermission{}).Error
		}},
		{"invitations", func() error {
			return db.Scopes(scope).Delete(&models.Invitation{}).Error
		}},
		{"memberships", func() error {
			return db.Scopes(scope).
				Where("role <> ?", rbac.RoleOwner).
				Delete(&models.Membership{}).Error
		}},
		{"account", func() error {
			// The owner membership goes with the account row.
			if err := db.Delete(&account).Error; err != nil {
				return err
			}
			return db.Scopes(scope).Delete(&models.Membership{}).Error
		}},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			log.Printf("Error deleting %s for account %s: %v", step.name, accountID, err)
			return fmt.Errorf("teardown aborted while deleting %s: %w", step.name, err)
		}
	}

	log.Printf("Account %s deleted", accountID)
	return nil
}

// DeleteAccountHandler tears down a team account. Only the primary owner may
// do this.
func DeleteAccountHandler(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	if account.PrimaryOwnerUserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the account owner can delete the account!", nil)
	}
	if account.IsPersonalAccount {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Personal accounts cannot be deleted!", nil)
	}

	if err := DeleteAccount(database.Database.Db, account.ID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Account deletion failed, please retry!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Account deleted successfully!", nil)
}
