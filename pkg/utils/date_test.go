package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthHelpers(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)

	t.Run("MonthKey", func(t *testing.T) {
		assert.Equal(t, "03-2024", MonthKey(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("SameMonth respeita o fuso local", func(t *testing.T) {
		// 31/01 20:00 UTC já é 01/02 em Jakarta
		utc := time.Date(2024, 1, 31, 20, 0, 0, 0, time.UTC)
		feb := time.Date(2024, 2, 10, 0, 0, 0, 0, jakarta)

		assert.True(t, SameMonth(utc, feb, jakarta))
		assert.False(t, SameMonth(utc, feb, time.UTC))
	})

	t.Run("PreviousMonth na virada do ano", func(t *testing.T) {
		prev := PreviousMonth(time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC))
		assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), prev)
	})
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()

	assert.NoError(t, err)
	assert.Len(t, id, idLength)
}
