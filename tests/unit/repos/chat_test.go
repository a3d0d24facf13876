package repos

import (
	"context"
	"testing"
	"time"

	"agroshare-backend/internal/domain"
	"agroshare-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewChatRepository(db)
	ctx := context.Background()

	msg := &domain.ChatMessage{
		ID:              "c1",
		RentalRequestID: "r1",
		SenderID:        "u1",
		Message:         "is the tractor available saturday?",
		Read:            false,
	}

	mock.ExpectExec("INSERT INTO chat_messages").
		WithArgs(msg.ID, msg.RentalRequestID, msg.SenderID, msg.Message, msg.Read, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(ctx, msg))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChatRepository_ListByRequest(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewChatRepository(db)
	ctx := context.Background()

	cols := []string{"id", "rental_request_id", "sender_id", "message", "read", "created_at"}
	first := time.Date(2099, 6, 15, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(cols).
		AddRow("c1", "r1", "u1", "hello", true, first).
		AddRow("c2", "r1", "u2", "hi there", false, first.Add(time.Minute))

	mock.ExpectQuery("SELECT (.+) FROM chat_messages WHERE rental_request_id").
		WithArgs("r1").
		WillReturnRows(rows)

	messages, err := repo.ListByRequest(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "c1", messages[0].ID)
	assert.Equal(t, first.Format(time.RFC3339), messages[0].CreatedAt)
	assert.False(t, messages[1].Read)
}

func TestChatRepository_MarkRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewChatRepository(db)
	ctx := context.Background()

	// Only the counterparty's unread rows flip; 0 affected is not an error.
	mock.ExpectExec("UPDATE chat_messages SET read = TRUE").
		WithArgs("r1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.MarkRead(ctx, "r1", "u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChatRepository_CountUnread(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewChatRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM chat_messages").
		WithArgs("r1", "u2").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountUnread(ctx, "r1", "u2")
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
}
