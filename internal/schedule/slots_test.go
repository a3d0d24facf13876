package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlots(t *testing.T) {
	slots := Slots()
	assert.Len(t, slots, 12)
	assert.Equal(t, 8, slots[0].Hour)
	assert.Equal(t, "8:00 AM", slots[0].Label)
	assert.Equal(t, 19, slots[len(slots)-1].Hour)
	assert.Equal(t, "7:00 PM", slots[len(slots)-1].Label)
}

func TestLabelFor(t *testing.T) {
	tests := []struct {
		hour     int
		expected string
	}{
		{0, "12:00 AM"},
		{8, "8:00 AM"},
		{11, "11:00 AM"},
		{12, "12:00 PM"},
		{13, "1:00 PM"},
		{19, "7:00 PM"},
		{23, "11:00 PM"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, LabelFor(tt.hour), "hour %d", tt.hour)
	}
}

func TestValidStartHour(t *testing.T) {
	assert.False(t, ValidStartHour(7))
	assert.True(t, ValidStartHour(8))
	assert.True(t, ValidStartHour(19))
	assert.False(t, ValidStartHour(20))
}

func TestValidDuration(t *testing.T) {
	assert.True(t, ValidDuration(4))
	assert.True(t, ValidDuration(8))
	assert.True(t, ValidDuration(12))
	assert.False(t, ValidDuration(6))
	assert.False(t, ValidDuration(0))
}

func TestEndHour(t *testing.T) {
	tests := []struct {
		start, duration int
		hour            int
		crosses         bool
	}{
		{8, 4, 12, false},
		{8, 12, 20, false},
		{19, 4, 23, false},
		{12, 12, 0, true},  // exactly midnight counts as crossing
		{19, 12, 7, true},  // 7 PM + 12h -> 7 AM next day
		{19, 8, 3, true},
	}
	for _, tt := range tests {
		hour, crosses := EndHour(tt.start, tt.duration)
		assert.Equal(t, tt.hour, hour, "start %d dur %d", tt.start, tt.duration)
		assert.Equal(t, tt.crosses, crosses, "start %d dur %d", tt.start, tt.duration)
	}
}

func TestEndLabel(t *testing.T) {
	t.Run("Same day", func(t *testing.T) {
		label, crosses := EndLabel(8, 4)
		assert.Equal(t, "12:00 PM", label)
		assert.False(t, crosses)
	})

	t.Run("Wraps past midnight with AM label", func(t *testing.T) {
		label, crosses := EndLabel(19, 12)
		assert.Equal(t, "7:00 AM", label)
		assert.True(t, crosses)
	})

	t.Run("Exactly midnight", func(t *testing.T) {
		label, crosses := EndLabel(12, 12)
		assert.Equal(t, "12:00 AM", label)
		assert.True(t, crosses)
	})
}
