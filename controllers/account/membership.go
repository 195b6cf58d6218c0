package accountController

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"truckscout/database"
	"truckscout/middleware"
	"truckscout/models"
	"truckscout/rbac"
)

var (
	// ErrDuplicateMembership is returned when the (user, account) pair already
	// has a membership.
	ErrDuplicateMembership = errors.New("account: membership already exists")
	// ErrSoleOwner is returned on attempts to remove or demote the only owner.
	ErrSoleOwner = errors.New("account: cannot remove or demote the account owner")
	// ErrOwnerRoleAssignment is returned when a caller tries to hand out the
	// owner role; each account has exactly one owner membership.
	ErrOwnerRoleAssignment = errors.New("account: owner role cannot be assigned")
	// ErrInvalidRole is returned for roles that are neither built-in nor
	// defined for the account.
	ErrInvalidRole = errors.New("account: unknown role")
	// ErrMembershipNotFound is returned when no membership exists for the pair.
	ErrMembershipNotFound = errors.New("account: membership not found")
)

// validateRole accepts built-in non-owner roles and tenant-defined custom
// roles that have at least one permission bound for this account.
func validateRole(db *gorm.DB, accountID, role string) error {
	if role == rbac.RoleOwner {
		return ErrOwnerRoleAssignment
	}
	if rbac.IsBuiltinRole(role) {
		return nil
	}

	var count int64
	if err := db.Model(&models.RolePermission{}).
		Where("account_id = ? AND role = ?", accountID, role).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrInvalidRole
	}
	return nil
}

// AddMembership links a user to an account with a role. Duplicates are
// rejected, and the owner role is never handed out this way.
func AddMembership(db *gorm.DB, accountID string, userID uint, role string) (models.Membership, error) {
	var membership models.Membership

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := validateRole(tx, accountID, role); err != nil {
			return err
		}

		var existing models.Membership
		err := tx.Where("account_id = ? AND user_id = ?", accountID, userID).First(&existing).Error
		if err == nil {
			return ErrDuplicateMembership
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		membership = models.Membership{
			UserID:    userID,
			AccountID: accountID,
			Role:      role,
		}
		return tx.Create(&membership).Error
	})

	return membership, err
}

// RemoveMembership deletes a user's membership. The owner membership cannot
// be deleted independently of the account.
func RemoveMembership(db *gorm.DB, accountID string, userID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var membership models.Membership
		err := tx.Where("account_id = ? AND user_id = ?", accountID, userID).First(&membership).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMembershipNotFound
			}
			return err
		}

		if membership.Role == rbac.RoleOwner {
			return ErrSoleOwner
		}

		return tx.Delete(&membership).Error
	})
}

// ChangeRole updates a member's role. The owner cannot be demoted and nobody
// can be promoted to owner; role changes take effect for the next permission
// evaluation.
func ChangeRole(db *gorm.DB, accountID string, userID uint, newRole string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := validateRole(tx, accountID, newRole); err != nil {
			return err
		}

		var membership models.Membership
		err := tx.Where("account_id = ? AND user_id = ?", accountID, userID).First(&membership).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMembershipNotFound
			}
			return err
		}

		if membership.Role == rbac.RoleOwner {
			return ErrSoleOwner
		}

		membership.Role = newRole
		return tx.Save(&membership).Error
	})
}

func membershipErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, rbac.ErrUnauthorized):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to manage members!", nil)
	case errors.Is(err, ErrDuplicateMembership):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User is already a member of this account!", nil)
	case errors.Is(err, ErrSoleOwner):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "The account owner cannot be removed or demoted!", nil)
	case errors.Is(err, ErrOwnerRoleAssignment):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "The owner role cannot be assigned!", nil)
	case errors.Is(err, ErrInvalidRole):
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Unknown role!", nil)
	case errors.Is(err, ErrMembershipNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Membership not found!", nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update members!", nil)
	}
}

// AddMember adds an existing user to the account.
func AddMember(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	reqData, ok := c.Locals("validatedMember").(*struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var membership models.Membership
	err := rbac.Guard(db, userID, account.ID, "members.create", func(tx *gorm.DB) error {
		var err error
		membership, err = AddMembership(tx, account.ID, user.ID, reqData.Role)
		return err
	})
	if err != nil {
		return membershipErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Member added successfully!", membership)
}

// RemoveMember removes a member from the account.
func RemoveMember(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	memberID, err := strconv.ParseUint(c.Params("userId"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
	}

	err = rbac.Guard(database.Database.Db, userID, account.ID, "members.delete", func(tx *gorm.DB) error {
		return RemoveMembership(tx, account.ID, uint(memberID))
	})
	if err != nil {
		return membershipErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Member removed successfully!", nil)
}

// ChangeMemberRole updates a member's role in the account.
func ChangeMemberRole(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	memberID, err := strconv.ParseUint(c.Params("userId"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
	}

	reqData, ok := c.Locals("validatedRole").(*struct {
		Role string `json:"role"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	err = rbac.Guard(database.Database.Db, userID, account.ID, "members.update", func(tx *gorm.DB) error {
		return ChangeRole(tx, account.ID, uint(memberID), reqData.Role)
	})
	if err != nil {
		return membershipErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true,
		fmt.Sprintf("Member role changed to %s!", reqData.Role), nil)
}
