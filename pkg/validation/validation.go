// Package validation centraliza o validator usado pelos casos de uso
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Violations mapeia o nome JSON do campo para a regra violada
type Violations map[string]string

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})

		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})

	return validate
}

// Struct valida as tags `validate` e devolve as violações, ou nil quando o valor é válido
func Struct(value any) Violations {
	err := instance().Struct(value)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return Violations{"_": err.Error()}
	}

	violations := make(Violations, len(validationErrors))
	for _, ve := range validationErrors {
		violations[fieldPath(ve.Namespace())] = ve.Tag()
	}

	return violations
}

// fieldPath remove o nome da struct raiz: CreateOrderInput.items[0].quantity -> items[0].quantity
func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}
