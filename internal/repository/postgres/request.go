package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"agroshare-backend/internal/domain"
	"agroshare-backend/internal/repository"

	"github.com/lib/pq"
)

type requestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

const requestColumns = `id, product_id, requester_id, requested_date, start_time, end_time, duration, estimated_cost, status, message, created_at, updated_at`

func (r *requestRepository) Create(ctx context.Context, req *domain.RentalRequest) error {
	query := `INSERT INTO rental_requests (id, product_id, requester_id, requested_date, start_time, end_time, duration, estimated_cost, status, message, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, req.ID, req.ProductID, req.RequesterID, req.RequestedDate, req.StartTime, req.EndTime, req.Duration, req.EstimatedCost, req.Status, req.Message, now, now)
	return err
}

func scanRequest(row interface{ Scan(...any) error }) (*domain.RentalRequest, error) {
	req := &domain.RentalRequest{}
	var created, updated time.Time
	err := row.Scan(&req.ID, &req.ProductID, &req.RequesterID, &req.RequestedDate, &req.StartTime, &req.EndTime, &req.Duration, &req.EstimatedCost, &req.Status, &req.Message, &created, &updated)
	if err != nil {
		return nil, err
	}
	req.CreatedAt = created.Format(time.RFC3339)
	req.UpdatedAt = updated.Format(time.RFC3339)
	return req, nil
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.RentalRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM rental_requests WHERE id = $1`
	req, err := scanRequest(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return req, err
}

func (r *requestRepository) GetForUpdate(ctx context.Context, tx *sql.Tx, id string) (*domain.RentalRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM rental_requests WHERE id = $1 FOR UPDATE`
	req, err := scanRequest(tx.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return req, err
}

const requestStatusUpdate = `UPDATE rental_requests SET status=$1, updated_at=$2 WHERE id=$3`

func (r *requestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) error {
	res, err := r.db.ExecContext(ctx, requestStatusUpdate, status, time.Now(), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *requestRepository) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id string, status domain.RequestStatus) error {
	res, err := tx.ExecContext(ctx, requestStatusUpdate, status, time.Now(), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *requestRepository) ListByProduct(ctx context.Context, productID string) ([]domain.RentalRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM rental_requests WHERE product_id = $1 ORDER BY created_at DESC`
	return r.queryRequests(ctx, query, productID)
}

func (r *requestRepository) ListByProducts(ctx context.Context, productIDs []string) ([]domain.RentalRequest, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + requestColumns + ` FROM rental_requests WHERE product_id = ANY($1) ORDER BY created_at DESC`
	return r.queryRequests(ctx, query, pq.Array(productIDs))
}

func (r *requestRepository) ListByRequester(ctx context.Context, requesterID string) ([]domain.RentalRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM rental_requests WHERE requester_id = $1 ORDER BY created_at DESC`
	return r.queryRequests(ctx, query, requesterID)
}

func (r *requestRepository) CountPending(ctx context.Context, productID string) (int, error) {
	query := `SELECT count(*) FROM rental_requests WHERE product_id = $1 AND status = $2`
	var count int
	err := r.db.QueryRowContext(ctx, query, productID, domain.RequestStatusPending).Scan(&count)
	return count, err
}

func (r *requestRepository) queryRequests(ctx context.Context, query string, args ...any) ([]domain.RentalRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.RentalRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}
