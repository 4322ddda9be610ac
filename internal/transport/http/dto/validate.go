package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/stormiq/signals-api/internal/domain"
)

var validate = validator.New()

// checkShape runs struct-tag validation and converts the first failure
// into a domain error. Field-level policy (email format, password length)
// is owned by the application layer; tags only guard gross input shape.
func checkShape(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Tag() == "required" {
			return domain.ErrMissingField(jsonName(fe.Field()))
		}
		return domain.ErrInvalidField(jsonName(fe.Field()), fe.Tag())
	}
	return domain.ErrInvalidJSON(err)
}

// jsonName maps exported struct field names to their wire names.
func jsonName(field string) string {
	switch field {
	case "Email":
		return "email"
	case "Password":
		return "password"
	case "Token":
		return "token"
	default:
		return field
	}
}
