package utils

import (
	"lesson-display-service/internal/app/services/core/clock"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("time_of_day", validateTimeOfDay)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// validateTimeOfDay accepts H:MM and HH:MM, which the stock datetime tag does not.
func validateTimeOfDay(fl validator.FieldLevel) bool {
	_, err := clock.ParseTimeOfDay(fl.Field().String())
	return err == nil
}
