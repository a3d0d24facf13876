package service

import (
	"context"
	"errors"
	"time"

	"agroshare-backend/internal/domain"
	"agroshare-backend/internal/realtime"
	"agroshare-backend/internal/schedule"
)

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrDayFullyBooked       = errors.New("machine is fully booked on this date")
	ErrNextDayBooked        = errors.New("next day is fully booked")
	ErrAlreadyDecided       = errors.New("request has already been decided")
	ErrConfirmationRequired = errors.New("rejection requires explicit confirmation")
	ErrNotParticipant       = errors.New("user is not part of this conversation")
	ErrEmailTaken           = errors.New("email is already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
)

// AvailabilityService is the authoritative answer to "is this machine
// bookable on this day, and does this slot+duration collide with
// anything". Confirmed bookings are the single blocking source of
// truth; seller-declared available dates are advertising only.
type AvailabilityService interface {
	IsDayBooked(ctx context.Context, machineID, date string) (bool, error)
	// IsDurationLegal is false exactly when the booking crosses
	// midnight and the next day is booked; the reason string is
	// user-facing in that case.
	IsDurationLegal(ctx context.Context, machineID, date string, startHour, duration int) (legal bool, reason string, err error)
	// LockedDates fails open: on a store error it logs and returns an
	// empty set, so availability display degrades to "no conflicts
	// known" instead of crashing the view.
	LockedDates(ctx context.Context, machineID string) ([]string, error)
	MonthView(ctx context.Context, machineID string, cursor schedule.MonthCursor, selected string, today time.Time) ([]schedule.DayCell, error)
}

type BookingService interface {
	// FinalizeBooking is the direct-booking write: it re-checks
	// availability (fail closed), derives cost and time range, assigns
	// the invoice number and persists the confirmed booking.
	FinalizeBooking(ctx context.Context, userID, machineID, date string, startHour, duration int) (*domain.Booking, error)
	CancelBooking(ctx context.Context, userID, bookingID string) error
	ListUserBookings(ctx context.Context, userID string) ([]domain.Booking, error)
	Invoice(ctx context.Context, userID, bookingID string) (*domain.Invoice, error)
}

type RequestService interface {
	CreateRequest(ctx context.Context, requesterID, productID, date string, startHour, duration int, message string) (*domain.RentalRequest, error)
	// AcceptRequest converts a pending request into exactly one
	// confirmed booking and marks the request accepted, atomically.
	AcceptRequest(ctx context.Context, ownerID, requestID string) (*domain.Booking, error)
	// RejectRequest refuses to act unless the caller passed the
	// destructive-action confirmation.
	RejectRequest(ctx context.Context, ownerID, requestID string, confirmed bool) error
	ListSellerRequests(ctx context.Context, ownerID string) ([]domain.RentalRequest, error)
	ListUserRequests(ctx context.Context, requesterID string) ([]domain.RentalRequest, error)
}

type ScheduleService interface {
	MachineSchedule(ctx context.Context, ownerID, machineID string, cursor schedule.MonthCursor) (*domain.MachineSchedule, error)
	PendingCount(ctx context.Context, machineID string) (int, error)
}

type ChatService interface {
	Send(ctx context.Context, senderID, requestID, text string) (*domain.ChatMessage, error)
	History(ctx context.Context, userID, requestID string) ([]domain.ChatMessage, error)
	MarkRead(ctx context.Context, requestID, readerID string) error
	UnreadCount(ctx context.Context, requestID, readerID string) (int, error)
	// Subscribe registers a live listener for the request's messages.
	// The caller owns the handle and must Close it on teardown.
	Subscribe(ctx context.Context, userID, requestID string) (*realtime.Subscription, error)
}

type MachineService interface {
	AddMachine(ctx context.Context, machine *domain.Machine) error
	GetMachine(ctx context.Context, id string) (*domain.Machine, error)
	ListMachines(ctx context.Context) ([]domain.Machine, error)
	ListMyMachines(ctx context.Context, ownerID string) ([]domain.Machine, error)
	// SetImage records the machine's stored photo URL. Only the owner
	// may replace it.
	SetImage(ctx context.Context, ownerID, machineID, url string) error
}

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
}

type AuthService interface {
	Signup(ctx context.Context, email, password, fullName string, role domain.UserRole) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type EmailService interface {
	SendRequestReceived(ctx context.Context, to, requesterName, machineName, date string) error
	SendRequestAccepted(ctx context.Context, to, machineName, date string) error
	SendRequestRejected(ctx context.Context, to, machineName, date string) error
	SendPendingReminder(ctx context.Context, to, ownerName string, lines []string) error
}
