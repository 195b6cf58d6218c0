package carrierController

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

// errDuplicateMC flags an mc_number already used within the account.
var errDuplicateMC = errors.New("carrier: duplicate mc_number")

func CreateCarrier(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	reqData, ok := c.Locals("validatedCarrier").(*struct {
		Name               string          `json:"name" validate:"required"`
		MCNumber           string          `json:"mc_number" validate:"required"`
		ContactInfo        json.RawMessage `json:"contact_info"`
		Rating             float32         `json:"rating" validate:"gte=0,lte=5"`
		PreferredStatus    bool            `json:"preferred_status"`
		FactoringCompanyID *string         `json:"factoring_company_id" validate:"omitempty,uuid4"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	carrier := models.Carrier{
		AccountID:          account.ID,
		Name:               reqData.Name,
		MCNumber:           reqData.MCNumber,
		ContactInfo:        datatypes.JSON(reqData.ContactInfo),
		Rating:             reqData.Rating,
		PreferredStatus:    reqData.PreferredStatus,
		FactoringCompanyID: reqData.FactoringCompanyID,
	}

	err := rbac.Guard(database.Database.Db, userID, account.ID, "carriers.create", func(tx *gorm.DB) error {
		// mc_number is unique within the account
		var existing models.Carrier
		err := tx.Scopes(rbac.ScopeAccount(account.ID)).
			Where("mc_number = ?", reqData.MCNumber).
			First(&existing).Error
		if err == nil {
			return errDuplicateMC
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// A linked factoring company must belong to the same account
		if reqData.FactoringCompanyID != nil {
			var fc models.FactoringCompany
			err := tx.Scopes(rbac.ScopeAccount(account.ID)).
				Where("id = ?", *reqData.FactoringCompanyID).
				First(&fc).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return gorm.ErrRecordNotFound
				}
				return err
			}
		}

		return tx.Create(&carrier).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, rbac.ErrUnauthorized):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to create carriers!", nil)
		case errors.Is(err, errDuplicateMC), errors.Is(err, gorm.ErrDuplicatedKey):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "A carrier with this MC number already exists!", nil)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Factoring company not found!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create carrier!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Carrier created successfully!", carrier)
}

func CarrierList(c *fiber.Ctx) error {
	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	// Pagination setup
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Carrier{}).Scopes(rbac.ScopeAccount(account.ID))

	if preferred := c.Query("preferred"); preferred != "" {
		db = db.Where("preferred_status = ?", preferred == "true")
	}

	var total int64
	db.Count(&total)

	var carriers []models.Carrier
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&carriers).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch carriers!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Carriers fetched successfully!", fiber.Map{
		"carriers": carriers,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

func GetCarrier(c *fiber.Ctx) error {
	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	var carrier models.Carrier
	err := database.Database.Db.Scopes(rbac.ScopeAccount(account.ID)).
		Where("id = ?", c.Params("carrierId")).
		First(&carrier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Carrier not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch carrier!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Carrier fetched successfully!", carrier)
}

func UpdateCarrier(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	reqData, ok := c.Locals("validatedCarrierUpdate").(*struct {
		Name            *string         `json:"name" validate:"omitempty,min=1"`
		ContactInfo     json.RawMessage `json:"contact_info"`
		Rating          *float32        `json:"rating" validate:"omitempty,gte=0,lte=5"`
		PreferredStatus *bool           `json:"preferred_status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var carrier models.Carrier
	err := rbac.Guard(database.Database.Db, userID, account.ID, "carriers.update", func(tx *gorm.DB) error {
		err := tx.Scopes(rbac.ScopeAccount(account.ID)).
			Where("id = ?", c.Params("carrierId")).
			First(&carrier).Error
		if err != nil {
			return err
		}

		if reqData.Name != nil {
			carrier.Name = *reqData.Name
		}
		if reqData.ContactInfo != nil {
			carrier.ContactInfo = datatypes.JSON(reqData.ContactInfo)
		}
		if reqData.Rating != nil {
			carrier.Rating = *reqData.Rating
		}
		if reqData.PreferredStatus != nil {
			carrier.PreferredStatus = *reqData.PreferredStatus
		}

		return tx.Save(&carrier).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, rbac.ErrUnauthorized):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to update carriers!", nil)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Carrier not found!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update carrier!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Carrier updated successfully!", carrier)
}

func DeleteCarrier(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	err := rbac.Guard(database.Database.Db, userID, account.ID, "carriers.delete", func(tx *gorm.DB) error {
		var carrier models.Carrier
		err := tx.Scopes(rbac.ScopeAccount(account.ID)).
			Where("id = ?", c.Params("carrierId")).
			First(&carrier).Error
		if err != nil {
			return err
		}
		return tx.Delete(&carrier).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, rbac.ErrUnauthorized):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to delete carriers!", nil)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Carrier not found!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete carrier!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Carrier deleted successfully!", nil)
}
