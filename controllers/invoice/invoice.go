package invoiceController

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

func CreateInvoice(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	reqData, ok := c.Locals("validatedInvoice").(*struct {
		LoadID        string     `json:"load_id" validate:"required,uuid4"`
		CarrierID     string     `json:"carrier_id" validate:"required,uuid4"`
		Amount        float64    `json:"amount" validate:"required,gt=0"`
		Status        string     `json:"status" validate:"omitempty,oneof=draft pending approved paid void"`
		DueDate       *time.Time `json:"due_date"`
		InternalNotes string     `json:"internal_notes"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	invoice := models.Invoice{
		AccountID:     account.ID,
		LoadID:        reqData.LoadID,
		CarrierID:     reqData.CarrierID,
		Amount:        reqData.Amount,
		DueDate:       reqData.DueDate,
		InternalNotes: reqData.InternalNotes,
	}
	if reqData.Status != "" {
		invoice.Status = reqData.Status
	}

	err := rbac.Guard(database.Database.Db, userID, account.ID, "invoices.create", func(tx *gorm.DB) error {
		// Load and carrier must belong to the same account
		var load models.Load
		if err := tx.Scopes(rbac.ScopeAccount(account.ID)).
			Where("id = ?", reqData.LoadID).First(&load).Error; err != nil {
			return err
		}
		var carrier models.Carrier
		if err := tx.Scopes(rbac.ScopeAccount(account.ID)).
			Where("id = ?", reqData.CarrierID).First(&carrier).Error; err != nil {
			return err
		}

		return tx.Create(&invoice).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, rbac.ErrUnauthorized):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to create invoices!", nil)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Load or carrier not found in this account!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create invoice!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Invoice created successfully!", invoice)
}

func InvoiceList(c *fiber.Ctx) error {
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

	db := database.Database.Db.Model(&models.Invoice{}).Scopes(rbac.ScopeAccount(account.ID))

	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}
	if paid := c.Query("paid"); paid != "" {
		db = db.Where("paid_status = ?", paid == "true")
	}

	var total int64
	db.Count(&total)

	var invoices []models.Invoice
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&invoices).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch invoices!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Invoices fetched successfully!", fiber.Map{
		"invoices": invoices,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

func GetInvoice(c *fiber.Ctx) error {
	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	var invoice models.Invoice
	err := database.Database.Db.Scopes(rbac.ScopeAccount(account.ID)).
		Where("id = ?", c.Params("invoiceId")).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Invoice not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch invoice!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Invoice fetched successfully!", invoice)
}

func UpdateInvoice(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	reqData, ok := c.Locals("validatedInvoiceUpdate").(*struct {
		Amount        *float64   `json:"amount" validate:"omitempty,gt=0"`
		Status        *string    `json:"status" validate:"omitempty,oneof=draft pending approved paid void"`
		DueDate       *time.Time `json:"due_date"`
		PaidStatus    *bool      `json:"paid_status"`
		InternalNotes *string    `json:"internal_notes"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var invoice models.Invoice
	err := rbac.Guard(database.Database.Db, userID, account.ID, "invoices.update", func(tx *gorm.DB) error {
		err := tx.Scopes(rbac.ScopeAccount(account.ID)).
			Where("id = ?", c.Params("invoiceId")).
			First(&invoice).Error
		if err != nil {
			return err
		}

		if reqData.Amount != nil {
			invoice.Amount = *reqData.Amount
		}
		if reqData.Status != nil {
			invoice.Status = *reqData.Status
		}
		if reqData.DueDate != nil {
			invoice.DueDate = reqData.DueDate
		}
		if reqData.PaidStatus != nil {
			invoice.PaidStatus = *reqData.PaidStatus
		}
		if reqData.InternalNotes != nil {
			invoice.InternalNotes = *reqData.InternalNotes
		}

		return tx.Save(&invoice).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, rbac.ErrUnauthorized):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to update invoices!", nil)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Invoice not found!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update invoice!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Invoice updated successfully!", invoice)
}

func DeleteInvoice(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	account, ok := middleware.AccountFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
	}

	err := rbac.Guard(database.Database.Db, userID, account.ID, "invoices.delete", func(tx *gorm.DB) error {
		var invoice models.Invoice
		err := tx.Scopes(rbac.ScopeAccount(account.ID)).
			Where("id = ?", c.Params("invoiceId")).
			First(&invoice).Error
		if err != nil {
			return err
		}
		return tx.Delete(&invoice).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, rbac.ErrUnauthorized):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to delete invoices!", nil)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Invoice not found!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete invoice!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Invoice deleted successfully!", nil)
}
