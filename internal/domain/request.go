package domain

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

// RentalRequest is a renter's intent to book, awaiting the seller's
// decision. Created pending, transitions exactly once to accepted or
// rejected. Accepting produces exactly one confirmed Booking projected
// field-for-field from the request.
type RentalRequest struct {
	ID            string        `json:"id"`
	ProductID     string        `json:"product_id"`
	RequesterID   string        `json:"requester_id"`
	RequestedDate string        `json:"requested_date"` // yyyy-mm-dd
	StartTime     string        `json:"start_time"`
	EndTime       string        `json:"end_time"`
	Duration      int           `json:"duration"`
	EstimatedCost int           `json:"estimated_cost"`
	Status        RequestStatus `json:"status"`
	Message       string        `json:"message,omitempty"`
	CreatedAt     string        `json:"created_at"`
	UpdatedAt     string        `json:"updated_at"`

	// Populated on the seller dashboard view, not stored on the row.
	Machine   *Machine `json:"machine,omitempty"`
	Requester *User    `json:"requester,omitempty"`
}
