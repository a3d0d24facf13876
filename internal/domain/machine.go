package domain

// Machine is a rentable piece of machinery (the products table).
//
// PricePerHour is the display string shown in listings (e.g. "₹1,200");
// cost math parses the digits out of it and defaults to zero.
// AvailableDates is seller-declared advertising intent only: the
// availability resolver never reads it for blocking; confirmed bookings
// are the single source of truth there.
type Machine struct {
	ID             string   `json:"id"`
	OwnerID        string   `json:"owner_id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	PricePerHour   string   `json:"price_per_hour"`
	ImageURL       string   `json:"image_url"`
	Lat            float64  `json:"lat"`
	Lng            float64  `json:"lng"`
	AvailableDates []string `json:"available_dates,omitempty"`
	CreatedAt      string   `json:"created_at"`
}
