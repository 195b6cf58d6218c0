package loadValidator

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

// CreateLoad validator middleware
func CreateLoad() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status      string     `json:"status" validate:"omitempty,oneof=created booked in_transit delivered cancelled"`
			Origin      string     `json:"origin"`
			Destination string     `json:"destination"`
			PickupDate  *time.Time `json:"pickup_date"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationMessages(err))
		}

		c.Locals("validatedLoad", reqData)
		return c.Next()
	}
}

// UpdateLoad validator middleware
func UpdateLoad() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status      *string    `json:"status" validate:"omitempty,oneof=created booked in_transit delivered cancelled"`
			Origin      *string    `json:"origin"`
			Destination *string    `json:"destination"`
			PickupDate  *time.Time `json:"pickup_date"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationMessages(err))
		}

		c.Locals("validatedLoadUpdate", reqData)
		return c.Next()
	}
}
