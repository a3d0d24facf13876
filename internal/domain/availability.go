package domain

type DayStatus string

const (
	DayStatusPast   DayStatus = "past"
	DayStatusBooked DayStatus = "booked"
	DayStatusFree   DayStatus = "free"
)

// AvailabilityDay is derived, never stored: recomputed from the
// confirmed-booking list on every query. Past overrides booked for
// display; both block selection.
type AvailabilityDay struct {
	Date   string    `json:"date"` // yyyy-mm-dd
	Status DayStatus `json:"status"`
}

// MachineSchedule is the seller-dashboard aggregate for one machine and
// one month: confirmed-booking dates for calendar decoration plus the
// pending-request badge count.
type MachineSchedule struct {
	MachineID    string   `json:"machine_id"`
	Year         int      `json:"year"`
	Month        int      `json:"month"`
	BookedDates  []string `json:"booked_dates"`
	PendingCount int      `json:"pending_count"`
}
