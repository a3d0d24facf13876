package http

import (
	"net/http"

	"agroshare-backend/internal/security"
	"agroshare-backend/internal/service"
	"agroshare-backend/internal/storage"

	"github.com/gorilla/mux"
)

// Services bundles everything the HTTP API depends on.
type Services struct {
	Auth         service.AuthService
	Users        service.UserService
	Machines     service.MachineService
	Availability service.AvailabilityService
	Bookings     service.BookingService
	Requests     service.RequestService
	Schedules    service.ScheduleService
	Chat         service.ChatService
	Tokens       security.TokenManager
	Storage      storage.Storage
}

// NewRouter wires up the full REST surface under /api/v1.
func NewRouter(deps Services) *mux.Router {
	authHandler := NewAuthHandler(deps.Auth)
	userHandler := NewUserHandler(deps.Users)
	machineHandler := NewMachineHandler(deps.Machines, deps.Storage)
	availabilityHandler := NewAvailabilityHandler(deps.Availability)
	bookingHandler := NewBookingHandler(deps.Bookings)
	requestHandler := NewRequestHandler(deps.Requests)
	scheduleHandler := NewScheduleHandler(deps.Schedules)
	chatHandler := NewChatHandler(deps.Chat)

	auth := NewAuthMiddleware(deps.Tokens)

	router := mux.NewRouter()
	router.Use(LoggingMiddleware)

	api := router.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/machines", machineHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/machines/{id}", machineHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/machines/{id}/availability", availabilityHandler.MonthView).Methods(http.MethodGet)
	api.HandleFunc("/machines/{id}/locked-dates", availabilityHandler.LockedDates).Methods(http.MethodGet)
	api.HandleFunc("/machines/{id}/slot-legality", availabilityHandler.SlotLegality).Methods(http.MethodGet)
	api.HandleFunc("/slots", availabilityHandler.Slots).Methods(http.MethodGet)
	api.HandleFunc("/images/{machine}/{file}", machineHandler.ServeImage).Methods(http.MethodGet)

	// Authenticated routes
	authed := api.NewRoute().Subrouter()
	authed.Use(auth.Middleware)

	authed.HandleFunc("/me", userHandler.GetProfile).Methods(http.MethodGet)
	authed.HandleFunc("/me", userHandler.UpdateProfile).Methods(http.MethodPut)

	authed.HandleFunc("/machines", machineHandler.Add).Methods(http.MethodPost)
	authed.HandleFunc("/machines/{id}/image", machineHandler.UploadImage).Methods(http.MethodPut)
	authed.HandleFunc("/seller/machines", machineHandler.ListMine).Methods(http.MethodGet)

	authed.HandleFunc("/bookings", bookingHandler.Finalize).Methods(http.MethodPost)
	authed.HandleFunc("/bookings", bookingHandler.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id}/cancel", bookingHandler.Cancel).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id}/invoice", bookingHandler.Invoice).Methods(http.MethodGet)

	authed.HandleFunc("/requests", requestHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/requests", requestHandler.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/requests/{id}/accept", requestHandler.Accept).Methods(http.MethodPost)
	authed.HandleFunc("/requests/{id}/reject", requestHandler.Reject).Methods(http.MethodPost)
	authed.HandleFunc("/seller/requests", requestHandler.ListForSeller).Methods(http.MethodGet)

	authed.HandleFunc("/seller/machines/{id}/schedule", scheduleHandler.MachineSchedule).Methods(http.MethodGet)
	authed.HandleFunc("/machines/{id}/pending-count", scheduleHandler.PendingCount).Methods(http.MethodGet)

	authed.HandleFunc("/requests/{id}/messages", chatHandler.History).Methods(http.MethodGet)
	authed.HandleFunc("/requests/{id}/messages", chatHandler.Send).Methods(http.MethodPost)
	authed.HandleFunc("/requests/{id}/messages/read", chatHandler.MarkRead).Methods(http.MethodPost)
	authed.HandleFunc("/requests/{id}/messages/unread-count", chatHandler.UnreadCount).Methods(http.MethodGet)
	authed.HandleFunc("/requests/{id}/stream", chatHandler.Stream).Methods(http.MethodGet)

	return router
}
