package loadController

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"truckscout/database"
	"truckscout/middleware"
	"truckscout/models"
	"truckscout/rbac"
)

func CreateLoad(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	reqData, ok := c.Locals("validatedLoad").(*struct {
		Status      string     `json:"status" validate:"omitempty,oneof=created booked in_transit delivered cancelled"`
		Origin      string     `json:"origin"`
		Destination string     `json:"destination"`
		PickupDate  *time.Time `json:"pickup_date"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	load := models.Load{
		AccountID:   account.ID,
		Origin:      reqData.Origin,
		Destination: reqData.Destination,
		PickupDate:  reqData.PickupDate,
	}
	if reqData.Status != "" {
		load.Status = reqData.Status
	}

	err := rbac.Guard(database.Database.Db, userID, account.ID, "loads.create", func(tx *gorm.DB) error {
		return tx.Create(&load).Error
	})
	if err != nil {
		if errors.Is(err, rbac.ErrUnauthorized) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to create loads!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create load!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Load created successfully!", load)
}

func LoadList(c *fiber.Ctx) error {
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

	db := database.Database.Db.Model(&models.Load{}).Scopes(rbac.ScopeAccount(account.ID))

	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	db.Count(&total)

	var loads []models.Load
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&loads).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch loads!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Loads fetched successfully!", fiber.Map{
		"loads": loads,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

func GetLoad(c *fiber.Ctx) error {
	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	var load models.Load
	err := database.Database.Db.Scopes(rbac.ScopeAccount(account.ID)).
		Where("id = ?", c.Params("loadId")).
		First(&load).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Load not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch load!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Load fetched successfully!", load)
}

func UpdateLoad(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	reqData, ok := c.Locals("validatedLoadUpdate").(*struct {
		Status      *string    `json:"status" validate:"omitempty,oneof=created booked in_transit delivered cancelled"`
		Origin      *string    `json:"origin"`
		Destination *string    `json:"destination"`
		PickupDate  *time.Time `json:"pickup_date"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var load models.Load
	err := rbac.Guard(database.Database.Db, userID, account.ID, "loads.update", func(tx *gorm.DB) error {
		err := tx.Scopes(rbac.ScopeAccount(account.ID)).
			Where("id = ?", c.Params("loadId")).
			First(&load).Error
		if err != nil {
			return err
		}

		if reqData.Status != nil {
			load.Status = *reqData.Status
		}
		if reqData.Origin != nil {
			load.Origin = *reqData.Origin
		}
		if reqData.Destination != nil {
			load.Destination = *reqData.Destination
		}
		if reqData.PickupDate != nil {
			load.PickupDate = reqData.PickupDate
		}

		return tx.Save(&load).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, rbac.ErrUnauthorized):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to update loads!", nil)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Load not found!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update load!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Load updated successfully!", load)
}

func DeleteLoad(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	err := rbac.Guard(database.Database.Db, userID, account.ID, "loads.delete", func(tx *gorm.DB) error {
		var load models.Load
		err := tx.Scopes(rbac.ScopeAccount(account.ID)).
			Where("id = ?", c.Params("loadId")).
			First(&load).Error
		if err != nil {
			return err
		}
		return tx.Delete(&load).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, rbac.ErrUnauthorized):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to delete loads!", nil)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Load not found!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete load!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Load deleted successfully!", nil)
}
