package schedule

import (
	"math"
	"strconv"
	"strings"
)

// serviceFeeRate is the fixed marketplace fee applied at invoice time.
// It is display-only: the persisted booking total never includes it.
const serviceFeeRate = 0.05

// ParseHourlyRate extracts the numeric hourly rate from a display
// string such as "₹1,200" by stripping every non-digit rune. A string
// with no digits yields 0; this never fails.
func ParseHourlyRate(display string) int {
	var digits strings.Builder
	for _, r := range display {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	rate, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return rate
}

// BaseCost is the amount stored on the booking: hourly rate times the
// chosen duration, no fee.
func BaseCost(hourlyRate, duration int) int {
	return hourlyRate * duration
}

// ServiceFee is 5% of the base cost, rounded half away from zero.
func ServiceFee(baseCost int) int {
	return roundHalfAwayFromZero(float64(baseCost) * serviceFeeRate)
}

// PerUnitRate is the rounded per-hour rate shown on the invoice rental
// line. A zero duration cannot occur with the enumerated set, but the
// guard keeps the function safe for reuse.
func PerUnitRate(totalCost, duration int) int {
	if duration == 0 {
		return 0
	}
	return roundHalfAwayFromZero(float64(totalCost) / float64(duration))
}

func roundHalfAwayFromZero(x float64) int {
	return int(math.Round(x))
}
