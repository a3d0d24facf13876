package repos

import (
	"context"
	"testing"
	"time"

	"agroshare-backend/internal/domain"
	"agroshare-backend/internal/repository"
	"agroshare-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingCols = []string{"id", "machine_id", "user_id", "date", "start_time", "end_time", "duration", "total_cost", "status", "invoice_number", "created_at"}

func TestBookingRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	b := &domain.Booking{
		ID:            "b1",
		MachineID:     "m1",
		UserID:        "u1",
		Date:          "2099-06-20",
		StartTime:     "8:00 AM",
		EndTime:       "4:00 PM",
		Duration:      8,
		TotalCost:     9600,
		Status:        domain.BookingStatusConfirmed,
		InvoiceNumber: "INV-00042",
	}

	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(b.ID, b.MachineID, b.UserID, b.Date, b.StartTime, b.EndTime, b.Duration, b.TotalCost, "confirmed", b.InvoiceNumber, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(ctx, b))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_ExistsOnDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Confirmed booking on the date", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("m1", "2099-06-20", "confirmed").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		exists, err := repo.ExistsOnDate(ctx, "m1", "2099-06-20")
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Free date", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("m1", "2099-06-21", "confirmed").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		exists, err := repo.ExistsOnDate(ctx, "m1", "2099-06-21")
		assert.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestBookingRepository_ConfirmedDates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT date FROM bookings").
		WithArgs("m1", "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"date"}).AddRow("2099-06-20").AddRow("2099-06-25"))

	dates, err := repo.ConfirmedDates(ctx, "m1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"2099-06-20", "2099-06-25"}, dates)
}

func TestBookingRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		created := time.Date(2099, 6, 15, 10, 0, 0, 0, time.UTC)
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id").
			WithArgs("b1").
			WillReturnRows(sqlmock.NewRows(bookingCols).
				AddRow("b1", "m1", "u1", "2099-06-20", "8:00 AM", "4:00 PM", 8, 9600, "confirmed", "INV-00042", created))

		b, err := repo.GetByID(ctx, "b1")
		require.NoError(t, err)
		assert.Equal(t, "b1", b.ID)
		assert.Equal(t, domain.BookingStatusConfirmed, b.Status)
		assert.Equal(t, created.Format(time.RFC3339), b.CreatedAt)
	})

	t.Run("Missing row maps to ErrNotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id").
			WithArgs("nope").
			WillReturnRows(sqlmock.NewRows(bookingCols))

		_, err := repo.GetByID(ctx, "nope")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Cancel", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET status").
			WithArgs("cancelled", "b1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(ctx, "b1", domain.BookingStatusCancelled))
	})

	t.Run("No row affected", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET status").
			WithArgs("cancelled", "nope").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateStatus(ctx, "nope", domain.BookingStatusCancelled), repository.ErrNotFound)
	})
}
