package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("template_key_part", validateTemplateKeyPart)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// template ids and versions are joined with '@' into cache keys.
func validateTemplateKeyPart(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value != "" && !strings.ContainsAny(value, "@/ ")
}
