package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/field-sales-api/pkg/apiErrors"
)

func TestNewValidationError(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		code   string
	}{
		{name: "apenas ausentes", fields: map[string]string{"customer_name": "required", "store_id": "required_without"}, code: apiErrors.ErrMissingRequiredData},
		{name: "formato inválido", fields: map[string]string{"customer_name": "required", "items[0].quantity": "gt"}, code: apiErrors.ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError("dados inválidos", tt.fields)

			assert.Equal(t, tt.code, err.Code)
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	wrapped := fmt.Errorf("criar pedido: %w", NewNotFoundError("Loja", "s9"))

	var domainErr *Error
	assert.True(t, errors.As(wrapped, &domainErr))
	assert.Equal(t, apiErrors.ErrResourceNotFound, domainErr.Code)
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.Contains(t, wrapped.Error(), "Loja s9 não encontrado")
}
