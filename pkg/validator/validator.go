package validator

import (
	"github.com/healthfirst/scheduling-service/pkg/timeutil"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// hhmm accepts wall-clock times like "09:00" or "9:00".
	v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := timeutil.ParseClock(fl.Field().String())
		return err == nil
	})

	// dateonly accepts calendar dates like "2026-03-02".
	v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
		_, err := timeutil.ParseDate(fl.Field().String())
		return err == nil
	})

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "hhmm":
				errors[field] = field + " must be a time of day in HH:MM format"
			case "dateonly":
				errors[field] = field + " must be a date in YYYY-MM-DD format"
			case "oneof":
				errors[field] = field + " must be one of: " + e.Param()
			case "min":
				errors[field] = field + " must have at least " + e.Param() + " items"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
