package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"agroshare-backend/internal/domain"
	"agroshare-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, machine_id, user_id, date, start_time, end_time, duration, total_cost, status, invoice_number, created_at`

const bookingInsert = `INSERT INTO bookings (id, machine_id, user_id, date, start_time, end_time, duration, total_cost, status, invoice_number, created_at)
          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	_, err := r.db.ExecContext(ctx, bookingInsert, b.ID, b.MachineID, b.UserID, b.Date, b.StartTime, b.EndTime, b.Duration, b.TotalCost, b.Status, b.InvoiceNumber, time.Now())
	return err
}

func (r *bookingRepository) CreateTx(ctx context.Context, tx *sql.Tx, b *domain.Booking) error {
	_, err := tx.ExecContext(ctx, bookingInsert, b.ID, b.MachineID, b.UserID, b.Date, b.StartTime, b.EndTime, b.Duration, b.TotalCost, b.Status, b.InvoiceNumber, time.Now())
	return err
}

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	var created time.Time
	err := row.Scan(&b.ID, &b.MachineID, &b.UserID, &b.Date, &b.StartTime, &b.EndTime, &b.Duration, &b.TotalCost, &b.Status, &b.InvoiceNumber, &created)
	if err != nil {
		return nil, err
	}
	b.CreatedAt = created.Format(time.RFC3339)
	return b, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return b, err
}

func (r *bookingRepository) ConfirmedDates(ctx context.Context, machineID string) ([]string, error) {
	query := `SELECT date FROM bookings WHERE machine_id = $1 AND status = $2`
	rows, err := r.db.QueryContext(ctx, query, machineID, domain.BookingStatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (r *bookingRepository) ExistsOnDate(ctx context.Context, machineID, date string) (bool, error) {
	return existsOnDate(ctx, r.db, machineID, date)
}

func (r *bookingRepository) ExistsOnDateTx(ctx context.Context, tx *sql.Tx, machineID, date string) (bool, error) {
	return existsOnDate(ctx, tx, machineID, date)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func existsOnDate(ctx context.Context, q querier, machineID, date string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE machine_id = $1 AND date = $2 AND status = $3)`
	var exists bool
	err := q.QueryRowContext(ctx, query, machineID, date, domain.BookingStatusConfirmed).Scan(&exists)
	return exists, err
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE bookings SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
