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

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, role, full_name, email, password_hash, address, phone, created_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	u := &domain.User{}
	var created time.Time
	err := row.Scan(&u.ID, &u.Role, &u.FullName, &u.Email, &u.PasswordHash, &u.Address, &u.Phone, &created)
	if err != nil {
		return nil, err
	}
	u.CreatedAt = created.Format(time.RFC3339)
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, role, full_name, email, password_hash, address, phone, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Role, u.FullName, u.Email, u.PasswordHash, u.Address, u.Phone, time.Now())
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return u, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return u, err
}

func (r *userRepository) UpdateProfile(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET role=$1, full_name=$2, address=$3, phone=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, u.Role, u.FullName, u.Address, u.Phone, u.ID)
	return err
}

func (r *userRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
