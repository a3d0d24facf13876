package http

import (
	"net/http"

	"agroshare-backend/internal/service"

	"github.com/gorilla/mux"
)

type ScheduleHandler struct {
	schedules service.ScheduleService
}

func NewScheduleHandler(schedules service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

// MachineSchedule serves the seller-dashboard month aggregate for one
// machine: booked dates plus the pending-request badge count.
func (h *ScheduleHandler) MachineSchedule(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := UserIDFromContext(r.Context())
	machineID := mux.Vars(r)["id"]

	cursor, ok := cursorFromQuery(w, r)
	if !ok {
		return
	}

	sched, err := h.schedules.MachineSchedule(r.Context(), ownerID, machineID, cursor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sched)
}

func (h *ScheduleHandler) PendingCount(w http.ResponseWriter, r *http.Request) {
	machineID := mux.Vars(r)["id"]

	count, err := h.schedules.PendingCount(r.Context(), machineID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"pending_count": count})
}
