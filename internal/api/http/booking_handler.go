package http

import (
	"net/http"

	"agroshare-backend/internal/service"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookings service.BookingService
}

func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type finalizeBookingRequest struct {
	MachineID string `json:"machine_id"`
	Date      string `json:"date"`
	StartHour int    `json:"start_hour"`
	Duration  int    `json:"duration"`
}

func (h *BookingHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req finalizeBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	booking, err := h.bookings.FinalizeBooking(r.Context(), userID, req.MachineID, req.Date, req.StartHour, req.Duration)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	bookings, err := h.bookings.ListUserBookings(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	bookingID := mux.Vars(r)["id"]

	if err := h.bookings.CancelBooking(r.Context(), userID, bookingID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func (h *BookingHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	bookingID := mux.Vars(r)["id"]

	invoice, err := h.bookings.Invoice(r.Context(), userID, bookingID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, invoice)
}
