package utils

import (
	"fmt"
	"usedcom_backend/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs struct-tag validation and returns one ErrorDetail per
// offending field, or nil when the value is valid.
func ValidateStruct(s interface{}) []models.ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []models.ErrorDetail{{Message: err.Error()}}
	}

	details := make([]models.ErrorDetail, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, models.ErrorDetail{
			Field:   fe.Field(),
			Message: messageForTag(fe),
		})
	}
	return details
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Valid email is required"
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
