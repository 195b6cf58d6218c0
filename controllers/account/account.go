package accountController

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"truckscout/database"
	"truckscout/middleware"
	"truckscout/models"
	"truckscout/rbac"
)

// CreateTeamAccount creates a team account with the caller as owner.
func CreateTeamAccount(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedAccount").(*struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if slug already exists
	if err := db.Where("slug = ?", reqData.Slug).First(&models.Account{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Account slug is already taken!", nil)
	}

	account := models.Account{
		Name:               reqData.Name,
		Slug:               reqData.Slug,
		IsPersonalAccount:  false,
		PrimaryOwnerUserID: userID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&account).Error; err != nil {
			return err
		}
		membership := models.Membership{
			UserID:    userID,
			AccountID: account.ID,
			Role:      rbac.RoleOwner,
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create account!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Account created successfully!", account)
}

// ListAccounts returns every account the caller is a member of.
func ListAccounts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var accounts []models.Account
	err := db.Joins("JOIN account_user ON account_user.account_id = accounts.id").
		Where("account_user.user_id = ?", userID).
		Order("accounts.created_at ASC").
		Find(&accounts).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch accounts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Accounts fetched successfully!", accounts)
}

// GetAccount returns the account resolved by the AccountContext middleware.
func GetAccount(c *fiber.Ctx) error {
	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Account fetched successfully!", account)
}

// ListMembers returns the memberships of the account with their users.
func ListMembers(c *fiber.Ctx) error {
	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	db := database.Database.Db

	var memberships []models.Membership
	err := db.Scopes(rbac.ScopeAccount(account.ID)).
		Preload("User").
		Order("created_at ASC").
		Find(&memberships).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch members!", nil)
	}

	type memberItem struct {
		UserID uint   `json:"user_id"`
		Name   string `json:"name"`
		Email  string `json:"email"`
		Role   string `json:"role"`
	}
	members := make([]memberItem, 0, len(memberships))
	for _, m := range memberships {
		members = append(members, memberItem{
			UserID: m.UserID,
			Name:   m.User.Name,
			Email:  m.User.Email,
			Role:   m.Role,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Members fetched successfully!", members)
}
