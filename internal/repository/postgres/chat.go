package postgres

import (
	"context"
	"database/sql"
	"time"

	"agroshare-backend/internal/domain"
	"agroshare-backend/internal/repository"
)

type chatRepository struct {
	db *sql.DB
}

func NewChatRepository(db *sql.DB) repository.ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, msg *domain.ChatMessage) error {
	query := `INSERT INTO chat_messages (id, rental_request_id, sender_id, message, read, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, msg.ID, msg.RentalRequestID, msg.SenderID, msg.Message, msg.Read, time.Now())
	return err
}

func (r *chatRepository) ListByRequest(ctx context.Context, requestID string) ([]domain.ChatMessage, error) {
	query := `SELECT id, rental_request_id, sender_id, message, read, created_at
	          FROM chat_messages WHERE rental_request_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		var created time.Time
		if err := rows.Scan(&m.ID, &m.RentalRequestID, &m.SenderID, &m.Message, &m.Read, &created); err != nil {
			return nil, err
		}
		m.CreatedAt = created.Format(time.RFC3339)
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *chatRepository) MarkRead(ctx context.Context, requestID, readerID string) error {
	query := `UPDATE chat_messages SET read = TRUE
	          WHERE rental_request_id = $1 AND sender_id <> $2 AND read = FALSE`
	_, err := r.db.ExecContext(ctx, query, requestID, readerID)
	return err
}

func (r *chatRepository) CountUnread(ctx context.Context, requestID, readerID string) (int, error) {
	query := `SELECT count(*) FROM chat_messages
	          WHERE rental_request_id = $1 AND sender_id <> $2 AND read = FALSE`
	var count int
	err := r.db.QueryRowContext(ctx, query, requestID, readerID).Scan(&count)
	return count, err
}
