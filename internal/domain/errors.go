package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vfg2006/field-sales-api/pkg/apiErrors"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrPersistence       = errors.New("persistence error")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrLockUnavailable   = errors.New("lock unavailable")
)

// Error carrega o erro base, o código da API e os campos inválidos quando houver
type Error struct {
	Err     error
	Code    string
	Details string
	Fields  map[string]string
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError escolhe VAL_002 quando só faltam campos e VAL_003 quando algum está mal formado
func NewValidationError(details string, fields map[string]string) *Error {
	code := apiErrors.ErrMissingRequiredData
	for _, rule := range fields {
		if !strings.HasPrefix(rule, "required") {
			code = apiErrors.ErrInvalidFormat
			break
		}
	}

	return &Error{
		Err:     ErrValidation,
		Code:    code,
		Details: details,
		Fields:  fields,
	}
}

func NewNotFoundError(entity, id string) *Error {
	return &Error{
		Err:     ErrNotFound,
		Code:    apiErrors.ErrResourceNotFound,
		Details: fmt.Sprintf("%s %s não encontrado", entity, id),
	}
}

// NewPersistenceError não carrega o erro do driver; ele deve ser logado antes
func NewPersistenceError(details string) *Error {
	return &Error{
		Err:     ErrPersistence,
		Code:    apiErrors.ErrDatabaseOperation,
		Details: details,
	}
}

func NewInvalidTransitionError(details string) *Error {
	return &Error{
		Err:     ErrInvalidTransition,
		Code:    apiErrors.ErrInvalidTransition,
		Details: details,
	}
}

func NewLockUnavailableError(key string) *Error {
	return &Error{
		Err:     ErrLockUnavailable,
		Code:    apiErrors.ErrLockUnavailable,
		Details: fmt.Sprintf("registro %q em uso por outra operação, tente novamente", key),
	}
}
