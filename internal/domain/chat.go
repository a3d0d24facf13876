package domain

// ChatMessage belongs to the conversation attached to a rental request.
type ChatMessage struct {
	ID              string `json:"id"`
	RentalRequestID string `json:"rental_request_id"`
	SenderID        string `json:"sender_id"`
	Message         string `json:"message"`
	Read            bool   `json:"read"`
	CreatedAt       string `json:"created_at"`
}
