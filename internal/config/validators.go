package config

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// registerExclusive adds a custom validator ensuring two fields are mutually exclusive.
func registerExclusive(validate *validator.Validate) error {
	if err := validate.RegisterValidation("exclusive", validateExclusive); err != nil {
		return fmt.Errorf("registering exclusive validation: %w", err)
	}

	return nil
}

// validateExclusive checks if two fields are mutually exclusive.
// Returns false if both fields have non-zero values.
func validateExclusive(fl validator.FieldLevel) bool {
	field := fl.Field()
	otherField := reflect.Indirect(fl.Parent()).FieldByName(fl.Param())

	if !field.IsValid() || !otherField.IsValid() {
		return true
	}

	if field.Kind() != otherField.Kind() {
		return true
	}

	switch field.Kind() {
	case reflect.Bool:
		return !(field.Bool() && otherField.Bool())
	case reflect.String:
		return !(field.String() != "" && otherField.String() != "")
	default:
		return true
	}
}
