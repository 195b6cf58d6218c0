package invoiceValidator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"truckscout/middleware"
)

var validate = validator.New()

func validationMessages(err error) map[string]string {
	out := make(map[string]string)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			out[strings.ToLower(fe.Field())] = fmt.Sprintf("Invalid value for %s (%s)!", fe.Field(), fe.Tag())
		}
	} else {
		out["body"] = "Invalid request body!"
	}
	return out
}

// CreateInvoice validator middleware
func CreateInvoice() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			LoadID        string     `json:"load_id" validate:"required,uuid4"`
			CarrierID     string     `json:"carrier_id" validate:"required,uuid4"`
			Amount        float64    `json:"amount" validate:"required,gt=0"`
			Status        string     `json:"status" validate:"omitempty,oneof=draft pending approved paid void"`
			DueDate       *time.Time `json:"due_date"`
			InternalNotes string     `json:"internal_notes"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationMessages(err))
		}

		c.Locals("validatedInvoice", reqData)
		return c.Next()
	}
}

// UpdateInvoice validator middleware
func UpdateInvoice() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Amount        *float64   `json:"amount" validate:"omitempty,gt=0"`
			Status        *string    `json:"status" validate:"omitempty,oneof=draft pending approved paid void"`
			DueDate       *time.Time `json:"due_date"`
			PaidStatus    *bool      `json:"paid_status"`
			InternalNotes *string    `json:"internal_notes"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationMessages(err))
		}

		c.Locals("validatedInvoiceUpdate", reqData)
		return c.Next()
	}
}
