package validator

import (
	"log"

	"bookstore_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules registers all custom validation functions on the given
// validator instance.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup defect.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-user-role': the value must be a known user role
	mustRegister("is-user-role", validateUserRole)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // emptiness is handled by 'required'
	}
	return models.UserRole(value).IsValid()
}
