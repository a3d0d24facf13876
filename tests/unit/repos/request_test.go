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

var requestCols = []string{"id", "product_id", "requester_id", "requested_date", "start_time", "end_time", "duration", "estimated_cost", "status", "message", "created_at", "updated_at"}

func requestRow(id, status string) *sqlmock.Rows {
	now := time.Date(2099, 6, 15, 10, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(requestCols).
		AddRow(id, "m1", "u1", "2099-06-20", "8:00 AM", "4:00 PM", 8, 4000, status, "hi", now, now)
}

func TestRequestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewRequestRepository(db)
	ctx := context.Background()

	req := &domain.RentalRequest{
		ID:            "r1",
		ProductID:     "m1",
		RequesterID:   "u1",
		RequestedDate: "2099-06-20",
		StartTime:     "8:00 AM",
		EndTime:       "4:00 PM",
		Duration:      8,
		EstimatedCost: 4000,
		Status:        domain.RequestStatusPending,
		Message:       "hi",
	}

	mock.ExpectExec("INSERT INTO rental_requests").
		WithArgs(req.ID, req.ProductID, req.RequesterID, req.RequestedDate, req.StartTime, req.EndTime, req.Duration, req.EstimatedCost, "pending", req.Message, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(ctx, req))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_GetForUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewRequestRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM rental_requests WHERE id = \\$1 FOR UPDATE").
		WithArgs("r1").
		WillReturnRows(requestRow("r1", "pending"))
	mock.ExpectCommit()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	req, err := repo.GetForUpdate(ctx, tx, "r1")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, req.Status)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewRequestRepository(db)
	ctx := context.Background()

	t.Run("Reject", func(t *testing.T) {
		mock.ExpectExec("UPDATE rental_requests SET status").
			WithArgs("rejected", sqlmock.AnyArg(), "r1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(ctx, "r1", domain.RequestStatusRejected))
	})

	t.Run("Missing row", func(t *testing.T) {
		mock.ExpectExec("UPDATE rental_requests SET status").
			WithArgs("rejected", sqlmock.AnyArg(), "nope").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateStatus(ctx, "nope", domain.RequestStatusRejected), repository.ErrNotFound)
	})
}

func TestRequestRepository_ListByProducts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewRequestRepository(db)
	ctx := context.Background()

	t.Run("Empty input short-circuits", func(t *testing.T) {
		requests, err := repo.ListByProducts(ctx, nil)
		assert.NoError(t, err)
		assert.Empty(t, requests)
	})

	t.Run("Matches across products", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rental_requests WHERE product_id = ANY").
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(requestRow("r1", "pending"))

		requests, err := repo.ListByProducts(ctx, []string{"m1", "m2"})
		require.NoError(t, err)
		require.Len(t, requests, 1)
		assert.Equal(t, "r1", requests[0].ID)
	})
}

func TestRequestRepository_CountPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewRequestRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM rental_requests").
		WithArgs("m1", "pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.CountPending(ctx, "m1")
	assert.NoError(t, err)
	assert.Equal(t, 4, count)
}
