package factoringController

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"truckscout/database"
	"truckscout/middleware"
	"truckscout/models"
	"truckscout/rbac"
)

func CreateFactoringCompany(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	reqData, ok := c.Locals("validatedFactoring").(*struct {
		Name        string          `json:"name" validate:"required"`
		ContactInfo json.RawMessage `json:"contact_info"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	company := models.FactoringCompany{
		AccountID:   account.ID,
		Name:        reqData.Name,
		ContactInfo: datatypes.JSON(reqData.ContactInfo),
	}

	err := rbac.Guard(database.Database.Db, userID, account.ID, "factoring_companies.create", func(tx *gorm.DB) error {
		return tx.Create(&company).Error
	})
	if err != nil {
		if errors.Is(err, rbac.ErrUnauthorized) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to create factoring companies!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create factoring company!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Factoring company created successfully!", company)
}

func FactoringCompanyList(c *fiber.Ctx) error {
	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.FactoringCompany{}).Scopes(rbac.ScopeAccount(account.ID))

	var total int64
	db.Count(&total)

	var companies []models.FactoringCompany
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&companies).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch factoring companies!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Factoring companies fetched successfully!", fiber.Map{
		"factoring_companies": companies,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

func GetFactoringCompany(c *fiber.Ctx) error {
	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	var company models.FactoringCompany
	err := database.Database.Db.Scopes(rbac.ScopeAccount(account.ID)).
		Where("id = ?", c.Params("factoringId")).
		First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Factoring company not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch factoring company!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Factoring company fetched successfully!", company)
}

func UpdateFactoringCompany(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	reqData, ok := c.Locals("validatedFactoringUpdate").(*struct {
		Name        *string         `json:"name" validate:"omitempty,min=1"`
		ContactInfo json.RawMessage `json:"contact_info"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var company models.FactoringCompany
	err := rbac.Guard(database.Database.Db, userID, account.ID, "factoring_companies.update", func(tx *gorm.DB) error {
		err := tx.Scopes(rbac.ScopeAccount(account.ID)).
			Where("id = ?", c.Params("factoringId")).
			First(&company).Error
		if err != nil {
			return err
		}

		if reqData.Name != nil {
			company.Name = *reqData.Name
		}
		if reqData.ContactInfo != nil {
			company.ContactInfo = datatypes.JSON(reqData.ContactInfo)
		}

		return tx.Save(&company).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, rbac.ErrUnauthorized):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to update factoring companies!", nil)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Factoring company not found!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update factoring company!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Factoring company updated successfully!", company)
}

func DeleteFactoringCompany(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	err := rbac.Guard(database.Database.Db, userID, account.ID, "factoring_companies.delete", func(tx *gorm.DB) error {
		var company models.FactoringCompany
		err := tx.Scopes(rbac.ScopeAccount(account.ID)).
			Where("id = ?", c.Params("factoringId")).
			First(&company).Error
		if err != nil {
			return err
		}

		// Detach carriers that reference this company before deleting it
		err = tx.Model(&models.Carrier{}).
			Scopes(rbac.ScopeAccount(account.ID)).
			Where("factoring_company_id = ?", company.ID).
			Update("factoring_company_id", nil).Error
		if err != nil {
			return err
		}

		return tx.Delete(&company).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, rbac.ErrUnauthorized):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to delete factoring companies!", nil)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Factoring company not found!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete factoring company!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Factoring company deleted successfully!", nil)
}
