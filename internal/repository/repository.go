package repository

import (
	"context"
	"database/sql"
	"errors"

	"agroshare-backend/internal/domain"
)

// ErrNotFound is returned by Get* methods when no row matches.
var ErrNotFound = errors.New("record not found")

// TxRunner runs a function inside a database transaction, committing on
// nil and rolling back otherwise. Implemented by the postgres Store.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	ListByIDs(ctx context.Context, ids []string) ([]domain.User, error)
}

type MachineRepository interface {
	Create(ctx context.Context, machine *domain.Machine) error
	GetByID(ctx context.Context, id string) (*domain.Machine, error)
	List(ctx context.Context) ([]domain.Machine, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Machine, error)
	ListIDsByOwner(ctx context.Context, ownerID string) ([]string, error)
	SetImageURL(ctx context.Context, id, url string) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	CreateTx(ctx context.Context, tx *sql.Tx, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	// ConfirmedDates returns the canonical date keys of every confirmed
	// booking for the machine.
	ConfirmedDates(ctx context.Context, machineID string) ([]string, error)
	// ExistsOnDate reports whether the machine has a confirmed booking
	// on the exact date (daily exclusivity is date equality only).
	ExistsOnDate(ctx context.Context, machineID, date string) (bool, error)
	ExistsOnDateTx(ctx context.Context, tx *sql.Tx, machineID, date string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
}

type RequestRepository interface {
	Create(ctx context.Context, req *domain.RentalRequest) error
	GetByID(ctx context.Context, id string) (*domain.RentalRequest, error)
	// GetForUpdate locks the request row for the duration of the
	// transaction so the accept conversion is serialized per request.
	GetForUpdate(ctx context.Context, tx *sql.Tx, id string) (*domain.RentalRequest, error)
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) error
	UpdateStatusTx(ctx context.Context, tx *sql.Tx, id string, status domain.RequestStatus) error
	ListByProduct(ctx context.Context, productID string) ([]domain.RentalRequest, error)
	ListByProducts(ctx context.Context, productIDs []string) ([]domain.RentalRequest, error)
	ListByRequester(ctx context.Context, requesterID string) ([]domain.RentalRequest, error)
	CountPending(ctx context.Context, productID string) (int, error)
}

type ChatRepository interface {
	Create(ctx context.Context, msg *domain.ChatMessage) error
	ListByRequest(ctx context.Context, requestID string) ([]domain.ChatMessage, error)
	// MarkRead flags every unread message in the conversation that was
	// not sent by the reader.
	MarkRead(ctx context.Context, requestID, readerID string) error
	CountUnread(ctx context.Context, requestID, readerID string) (int, error)
}
