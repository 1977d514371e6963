package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTimeSlot(t *testing.T) {
	for _, slot := range TimeSlots {
		assert.True(t, ValidTimeSlot(slot), slot)
	}
	for _, slot := range []string{"", "12:00", "13:00", "9:00", "09:30", "17:00"} {
		assert.False(t, ValidTimeSlot(slot), slot)
	}
}
