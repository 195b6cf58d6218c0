package carrierValidator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"truckscout/middleware"
)

var validate = validator.New()

// validationMessages flattens validator.ValidationErrors into the response
// errors map.
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

// CreateCarrier validator middleware
func CreateCarrier() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name               string          `json:"name" validate:"required"`
			MCNumber           string          `json:"mc_number" validate:"required"`
			ContactInfo        json.RawMessage `json:"contact_info"`
			Rating             float32         `json:"rating" validate:"gte=0,lte=5"`
			PreferredStatus    bool            `json:"preferred_status"`
			FactoringCompanyID *string         `json:"factoring_company_id" validate:"omitempty,uuid4"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationMessages(err))
		}

		c.Locals("validatedCarrier", reqData)
		return c.Next()
	}
}

// UpdateCarrier validator middleware
func UpdateCarrier() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name            *string         `json:"name" validate:"omitempty,min=1"`
			ContactInfo     json.RawMessage `json:"contact_info"`
			Rating          *float32        `json:"rating" validate:"omitempty,gte=0,lte=5"`
			PreferredStatus *bool           `json:"preferred_status"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationMessages(err))
		}

		c.Locals("validatedCarrierUpdate", reqData)
		return c.Next()
	}
}
