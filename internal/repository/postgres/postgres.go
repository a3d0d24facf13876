package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"agroshare-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.MachineRepository
	repository.BookingRepository
	repository.RequestRepository
	repository.ChatRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		UserRepository:    NewUserRepository(db),
		MachineRepository: NewMachineRepository(db),
		BookingRepository: NewBookingRepository(db),
		RequestRepository: NewRequestRepository(db),
		ChatRepository:    NewChatRepository(db),
	}
}

// WithTx runs fn inside a transaction. The accept-to-booking conversion
// relies on this so the booking insert and the status update commit or
// roll back together.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}
