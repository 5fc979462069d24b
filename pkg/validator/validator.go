package validator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string `json:"failed_field"`
	Tag         string `json:"tag"`
	Value       string `json:"value"`
}

var validate = validator.New()

func init() {
	// Rejects strings that are empty once whitespace is trimmed.
	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// Password policy: at least 6 chars with a digit, a lowercase and an uppercase letter.
	validate.RegisterValidation("password_policy", func(fl validator.FieldLevel) bool {
		return PasswordMeetsPolicy(fl.Field().String())
	})
}

// PasswordMeetsPolicy applies the account password rules.
func PasswordMeetsPolicy(pw string) bool {
	if len(pw) < 6 {
		return false
	}
	var digit, lower, upper bool
	for _, r := range pw {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		}
	}
	return digit && lower && upper
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}

// Check validates data and reports the first failure as an error.
func Check(data interface{}) error {
	if errs := ValidateStruct(data); len(errs) > 0 {
		return fmt.Errorf("Validation failed: Field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}
	return nil
}
