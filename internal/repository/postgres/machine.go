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

type machineRepository struct {
	db *sql.DB
}

func NewMachineRepository(db *sql.DB) repository.MachineRepository {
	return &machineRepository{db: db}
}

const machineColumns = `id, owner_id, name, category, description, price_per_hour, image_url, lat, lng, available_dates, created_at`

func (r *machineRepository) Create(ctx context.Context, m *domain.Machine) error {
	query := `INSERT INTO products (id, owner_id, name, category, description, price_per_hour, image_url, lat, lng, available_dates, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query, m.ID, m.OwnerID, m.Name, m.Category, m.Description, m.PricePerHour, m.ImageURL, m.Lat, m.Lng, pq.Array(m.AvailableDates), time.Now())
	return err
}

func scanMachine(row interface{ Scan(...any) error }) (*domain.Machine, error) {
	m := &domain.Machine{}
	var created time.Time
	err := row.Scan(&m.ID, &m.OwnerID, &m.Name, &m.Category, &m.Description, &m.PricePerHour, &m.ImageURL, &m.Lat, &m.Lng, pq.Array(&m.AvailableDates), &created)
	if err != nil {
		return nil, err
	}
	m.CreatedAt = created.Format(time.RFC3339)
	return m, nil
}

func (r *machineRepository) GetByID(ctx context.Context, id string) (*domain.Machine, error) {
	query := `SELECT ` + machineColumns + ` FROM products WHERE id = $1`
	m, err := scanMachine(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return m, err
}

func (r *machineRepository) List(ctx context.Context) ([]domain.Machine, error) {
	query := `SELECT ` + machineColumns + ` FROM products ORDER BY created_at DESC`
	return r.queryMachines(ctx, query)
}

func (r *machineRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Machine, error) {
	query := `SELECT ` + machineColumns + ` FROM products WHERE owner_id = $1 ORDER BY created_at DESC`
	return r.queryMachines(ctx, query, ownerID)
}

func (r *machineRepository) ListIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM products WHERE owner_id = $1`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *machineRepository) SetImageURL(ctx context.Context, id, url string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET image_url = $1 WHERE id = $2`, url, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *machineRepository) queryMachines(ctx context.Context, query string, args ...any) ([]domain.Machine, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var machines []domain.Machine
	for rows.Next() {
		m, err := scanMachine(rows)
		if err != nil {
			return nil, err
		}
		machines = append(machines, *m)
	}
	return machines, rows.Err()
}
