package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"pressroom/internal/common"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkInput runs struct-tag validation and converts the first failure into a
// human-readable 400-class error. Runs before any store access.
func checkInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return common.Errorf("invalid input: %w", common.ErrValidation)
	}

	return common.Errorf("%s: %w", fieldMessage(fieldErrs[0]), common.ErrValidation)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s is too long", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
