package http

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"agroshare-backend/internal/domain"
	"agroshare-backend/internal/service"
	"agroshare-backend/internal/storage"

	"github.com/gorilla/mux"
	"github.com/google/uuid"
)

type MachineHandler struct {
	machines service.MachineService
	store    storage.Storage
}

func NewMachineHandler(machines service.MachineService, store storage.Storage) *MachineHandler {
	return &MachineHandler{machines: machines, store: store}
}

type addMachineRequest struct {
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	PricePerHour   string   `json:"price_per_hour"`
	Lat            float64  `json:"lat"`
	Lng            float64  `json:"lng"`
	AvailableDates []string `json:"available_dates"`
}

func (h *MachineHandler) Add(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := UserIDFromContext(r.Context())

	var req addMachineRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	machine := &domain.Machine{
		OwnerID:        ownerID,
		Name:           req.Name,
		Category:       req.Category,
		Description:    req.Description,
		PricePerHour:   req.PricePerHour,
		Lat:            req.Lat,
		Lng:            req.Lng,
		AvailableDates: req.AvailableDates,
	}
	if err := h.machines.AddMachine(r.Context(), machine); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, machine)
}

func (h *MachineHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	machine, err := h.machines.GetMachine(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, machine)
}

func (h *MachineHandler) List(w http.ResponseWriter, r *http.Request) {
	machines, err := h.machines.ListMachines(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, machines)
}

func (h *MachineHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := UserIDFromContext(r.Context())

	machines, err := h.machines.ListMyMachines(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, machines)
}

// UploadImage stores a machine photo and returns its public URL. The
// owner uploads the raw image body with an image content type.
func (h *MachineHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := UserIDFromContext(r.Context())
	machineID := mux.Vars(r)["id"]

	machine, err := h.machines.GetMachine(r.Context(), machineID)
	if err != nil {
		writeError(w, err)
		return
	}
	if machine.OwnerID != ownerID {
		writeError(w, service.ErrUnauthorized)
		return
	}

	contentType := r.Header.Get("Content-Type")
	ext, ok := imageExtensions[contentType]
	if !ok {
		writeBadRequest(w, "unsupported image content type")
		return
	}

	key := fmt.Sprintf("%s/%s%s", machineID, uuid.NewString(), ext)
	if err := h.store.SaveFile(key, r.Body); err != nil {
		writeError(w, err)
		return
	}

	url := h.store.PublicURL(key)
	if err := h.machines.SetImage(r.Context(), ownerID, machineID, url); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"image_url": url})
}

// ServeImage streams a stored machine photo.
func (h *MachineHandler) ServeImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := fmt.Sprintf("%s/%s", vars["machine"], vars["file"])

	file, err := h.store.ReadFile(key)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "image not found"})
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".gif":
		contentType = "image/gif"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	io.Copy(w, file)
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}
