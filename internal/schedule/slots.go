package schedule

import "fmt"

const (
	// Bookable day window: start hours 08:00 through 19:00 inclusive,
	// one-hour granularity (the half-open window 08:00-20:00).
	DayStartHour = 8
	DayEndHour   = 20
)

// Durations is the enumerated set of rental lengths in hours. The
// booking surface offers exactly these three choices.
var Durations = []int{4, 8, 12}

// ValidDuration reports whether d is one of the enumerated durations.
func ValidDuration(d int) bool {
	for _, v := range Durations {
		if v == d {
			return true
		}
	}
	return false
}

// ValidStartHour reports whether h is a bookable start slot.
func ValidStartHour(h int) bool {
	return h >= DayStartHour && h < DayEndHour
}

// Slot is a fixed hourly start-time option.
type Slot struct {
	Hour  int    `json:"hour"`
	Label string `json:"label"`
}

// Slots returns the fixed set of 12 bookable start times. Stateless and
// restartable: every call produces the same sequence.
func Slots() []Slot {
	slots := make([]Slot, 0, DayEndHour-DayStartHour)
	for h := DayStartHour; h < DayEndHour; h++ {
		slots = append(slots, Slot{Hour: h, Label: LabelFor(h)})
	}
	return slots
}

// LabelFor converts a 24-hour integer to a 12-hour clock label. Hours 0
// and 12 both render as 12.
func LabelFor(hour int) string {
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	return fmt.Sprintf("%d:00 %s", h12, ampm)
}

// EndHour computes the 24-hour end of a booking. A sum of 24 or more
// wraps into the next calendar day and sets crossesMidnight; the caller
// is responsible for checking the next day's status.
func EndHour(startHour, duration int) (hour int, crossesMidnight bool) {
	hour = startHour + duration
	if hour >= 24 {
		hour -= 24
		crossesMidnight = true
	}
	return hour, crossesMidnight
}

// EndLabel is the display form of EndHour, using the same 12-hour
// conversion as LabelFor.
func EndLabel(startHour, duration int) (string, bool) {
	hour, crosses := EndHour(startHour, duration)
	return LabelFor(hour), crosses
}
