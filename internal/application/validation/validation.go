// Package validation envuelve go-playground/validator y traduce la primera falla
// a un *domain.ValidationError con mensaje en español.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/bodega-app/internal/domain"
)

// Validator validador con nombres de campo tomados del tag json.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Messages mensaje por nombre de campo; tiene prioridad sobre el mensaje por tag.
type Messages map[string]string

// Check valida s y devuelve la primera falla en orden de declaración de los campos.
func (val *Validator) Check(s any, msgs Messages) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validation: %w", err)
	}
	first := verrs[0]
	msg, ok := msgs[first.Field()]
	if !ok {
		msg = tagMessage(first)
	}
	return domain.NewValidationError(first.Field(), msg)
}

func tagMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("El campo %s es obligatorio", e.Field())
	case "email":
		return "Formato de correo inválido"
	case "gt":
		return fmt.Sprintf("El campo %s debe ser mayor que %s", e.Field(), e.Param())
	case "oneof":
		return fmt.Sprintf("El campo %s debe ser uno de: %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("El campo %s no es válido", e.Field())
	}
}
