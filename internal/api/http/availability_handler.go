package http

import (
	"net/http"
	"strconv"
	"time"

	"agroshare-backend/internal/schedule"
	"agroshare-backend/internal/service"

	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availability service.AvailabilityService
}

func NewAvailabilityHandler(availability service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// MonthView renders one month of the booking calendar for a machine:
// which days are past, booked, selectable.
func (h *AvailabilityHandler) MonthView(w http.ResponseWriter, r *http.Request) {
	machineID := mux.Vars(r)["id"]

	cursor, ok := cursorFromQuery(w, r)
	if !ok {
		return
	}
	selected := r.URL.Query().Get("selected")

	cells, err := h.availability.MonthView(r.Context(), machineID, cursor, selected, time.Now())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"year":  cursor.Year,
		"month": int(cursor.Month),
		"days":  cells,
		"can_navigate_back": schedule.CanNavigateBack(cursor, time.Now(), schedule.ModeBooking),
	})
}

// LockedDates lists the dates on which the machine cannot be booked.
func (h *AvailabilityHandler) LockedDates(w http.ResponseWriter, r *http.Request) {
	machineID := mux.Vars(r)["id"]

	dates, err := h.availability.LockedDates(r.Context(), machineID)
	if err != nil {
		writeError(w, err)
		return
	}
	if dates == nil {
		dates = []string{}
	}

	writeJSON(w, http.StatusOK, map[string][]string{"locked_dates": dates})
}

// Slots lists the selectable start times and rental durations.
func (h *AvailabilityHandler) Slots(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"slots":     schedule.Slots(),
		"durations": schedule.Durations,
	})
}

// SlotLegality answers whether a start hour and duration can be booked
// on the given date, with a user-facing reason when it cannot.
func (h *AvailabilityHandler) SlotLegality(w http.ResponseWriter, r *http.Request) {
	machineID := mux.Vars(r)["id"]
	q := r.URL.Query()

	date := q.Get("date")
	startHour, err := strconv.Atoi(q.Get("start_hour"))
	if err != nil {
		writeBadRequest(w, "start_hour must be an integer")
		return
	}
	duration, err := strconv.Atoi(q.Get("duration"))
	if err != nil {
		writeBadRequest(w, "duration must be an integer")
		return
	}

	legal, reason, err := h.availability.IsDurationLegal(r.Context(), machineID, date, startHour, duration)
	if err != nil {
		writeError(w, err)
		return
	}

	endLabel, crossesMidnight := schedule.EndLabel(startHour, duration)
	writeJSON(w, http.StatusOK, map[string]any{
		"legal":            legal,
		"reason":           reason,
		"end_label":        endLabel,
		"crosses_midnight": crossesMidnight,
	})
}

func cursorFromQuery(w http.ResponseWriter, r *http.Request) (schedule.MonthCursor, bool) {
	q := r.URL.Query()

	now := time.Now()
	cursor := schedule.CursorFor(now)

	if y := q.Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			writeBadRequest(w, "year must be an integer")
			return cursor, false
		}
		cursor.Year = year
	}
	if m := q.Get("month"); m != "" {
		month, err := strconv.Atoi(m)
		if err != nil || month < 1 || month > 12 {
			writeBadRequest(w, "month must be an integer between 1 and 12")
			return cursor, false
		}
		cursor.Month = time.Month(month)
	}

	return cursor, true
}
