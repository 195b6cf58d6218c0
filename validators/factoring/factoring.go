package factoringValidator

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

// CreateFactoringCompany validator middleware
func CreateFactoringCompany() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string          `json:"name" validate:"required"`
			ContactInfo json.RawMessage `json:"contact_info"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationMessages(err))
		}

		c.Locals("validatedFactoring", reqData)
		return c.Next()
	}
}

// UpdateFactoringCompany validator middleware
func UpdateFactoringCompany() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        *string         `json:"name" validate:"omitempty,min=1"`
			ContactInfo json.RawMessage `json:"contact_info"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationMessages(err))
		}

		c.Locals("validatedFactoringUpdate", reqData)
		return c.Next()
	}
}
