package validator

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("username", validUsername)
	_ = validate.RegisterValidation("password", StrongPassword)
}

// Validate struct fields; returns field->tag on failure, nil when valid.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		errors[err.Field()] = err.Tag()
	}
	return errors
}

// validUsername: letters, digits and underscore only. Length is handled by
// min/max tags.
func validUsername(fl validator.FieldLevel) bool {
	return usernameRe.MatchString(fl.Field().String())
}

// StrongPassword enforces the complexity policy: at least 8 characters with
// upper, lower, digit and symbol.
func StrongPassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

func IsStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}
