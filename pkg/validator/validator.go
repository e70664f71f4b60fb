package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse un campo que no pasó la validación.
type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

// Error mensaje legible para el cliente.
func (e ErrorResponse) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("campo '%s' no cumple '%s=%s'", e.FailedField, e.Tag, e.Value)
	}
	return fmt.Sprintf("campo '%s' no cumple '%s'", e.FailedField, e.Tag)
}

var validate = validator.New()

func init() {
	// not_blank: como required pero rechaza cadenas de sólo espacios.
	_ = validate.RegisterValidation("not_blank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// ValidateStruct valida data según sus tags `validate`. Devuelve nil si es válido.
func ValidateStruct(data interface{}) []*ErrorResponse {
	var out []*ErrorResponse
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []*ErrorResponse{{FailedField: "body", Tag: "struct"}}
	}
	for _, fe := range verrs {
		out = append(out, &ErrorResponse{
			FailedField: fe.StructNamespace(),
			Tag:         fe.Tag(),
			Value:       fe.Param(),
		})
	}
	return out
}
