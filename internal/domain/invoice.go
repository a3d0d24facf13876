package domain

// InvoiceLine is one row of the invoice table.
type InvoiceLine struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        int    `json:"rate"`
	Total       int    `json:"total"`
}

// Invoice is read-only data derived from a finalized booking.
// Recomputing it from the same booking always yields the same numbers;
// the number itself is assigned once when the booking is finalized and
// held fixed afterwards.
type Invoice struct {
	Number      string        `json:"number"`
	InvoiceDate string        `json:"invoice_date"`
	BookingDate string        `json:"booking_date"`
	LesseeName  string        `json:"lessee_name"`
	OwnerName   string        `json:"owner_name"`
	Lines       []InvoiceLine `json:"lines"`
	Subtotal    int           `json:"subtotal"`
	Total       int           `json:"total"`

	// Static payment-method display fields.
	PaymentEntity string `json:"payment_entity"`
	PaymentUPI    string `json:"payment_upi"`
}
