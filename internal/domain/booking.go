package domain

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a committed rental. Immutable once created except for the
// status transition to cancelled. A machine's booked dates are exactly
// the dates of its confirmed bookings (daily exclusivity).
//
// Column names are a hard contract with the existing store schema:
// machine_id, user_id, date, start_time, end_time, duration,
// total_cost, status.
type Booking struct {
	ID            string        `json:"id"`
	MachineID     string        `json:"machine_id"`
	UserID        string        `json:"user_id"`
	Date          string        `json:"date"` // yyyy-mm-dd, local wall clock
	StartTime     string        `json:"start_time"`
	EndTime       string        `json:"end_time"`
	Duration      int           `json:"duration"`
	TotalCost     int           `json:"total_cost"` // excludes the service fee
	Status        BookingStatus `json:"status"`
	InvoiceNumber string        `json:"invoice_number"`
	CreatedAt     string        `json:"created_at"`
}
