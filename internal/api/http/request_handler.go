package http

import (
	"net/http"

	"agroshare-backend/internal/service"

	"github.com/gorilla/mux"
)

type RequestHandler struct {
	requests service.RequestService
}

func NewRequestHandler(requests service.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

type createRequestRequest struct {
	ProductID string `json:"product_id"`
	Date      string `json:"date"`
	StartHour int    `json:"start_hour"`
	Duration  int    `json:"duration"`
	Message   string `json:"message"`
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req createRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	request, err := h.requests.CreateRequest(r.Context(), userID, req.ProductID, req.Date, req.StartHour, req.Duration, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, request)
}

func (h *RequestHandler) Accept(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := UserIDFromContext(r.Context())
	requestID := mux.Vars(r)["id"]

	booking, err := h.requests.AcceptRequest(r.Context(), ownerID, requestID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

type rejectRequestRequest struct {
	Confirmed bool `json:"confirmed"`
}

func (h *RequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := UserIDFromContext(r.Context())
	requestID := mux.Vars(r)["id"]

	var req rejectRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	if err := h.requests.RejectRequest(r.Context(), ownerID, requestID, req.Confirmed); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

func (h *RequestHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	requests, err := h.requests.ListUserRequests(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requests)
}

func (h *RequestHandler) ListForSeller(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := UserIDFromContext(r.Context())

	requests, err := h.requests.ListSellerRequests(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requests)
}
