package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type item struct {
	Name     string `json:"name" validate:"notblank"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

type payload struct {
	Owner string   `json:"owner" validate:"required"`
	Lat   *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Items []item   `json:"items" validate:"required,min=1,dive"`
}

func TestStruct(t *testing.T) {
	zero := 0.0
	outOfRange := 120.0

	tests := []struct {
		name     string
		input    payload
		expected Violations
	}{
		{
			name:     "válido com latitude zero",
			input:    payload{Owner: "a", Lat: &zero, Items: []item{{Name: "Aqua", Quantity: 1}}},
			expected: nil,
		},
		{
			name:  "campos ausentes",
			input: payload{},
			expected: Violations{
				"owner": "required",
				"lat":   "required",
				"items": "required",
			},
		},
		{
			name:  "item inválido usa o caminho json",
			input: payload{Owner: "a", Lat: &outOfRange, Items: []item{{Name: "  ", Quantity: 0}}},
			expected: Violations{
				"lat":               "lte",
				"items[0].name":     "notblank",
				"items[0].quantity": "gt",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Struct(tt.input))
		})
	}
}
