package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"agroshare-backend/internal/domain"
	"agroshare-backend/internal/realtime"
	"agroshare-backend/internal/repository"

	"github.com/google/uuid"
)

type chatService struct {
	chatRepo    repository.ChatRepository
	requestRepo repository.RequestRepository
	machineRepo repository.MachineRepository
	hub         *realtime.Hub
}

func NewChatService(
	chatRepo repository.ChatRepository,
	requestRepo repository.RequestRepository,
	machineRepo repository.MachineRepository,
	hub *realtime.Hub,
) ChatService {
	return &chatService{
		chatRepo:    chatRepo,
		requestRepo: requestRepo,
		machineRepo: machineRepo,
		hub:         hub,
	}
}

func (s *chatService) Send(ctx context.Context, senderID, requestID, text string) (*domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("message text is empty")
	}
	if err := s.authorize(ctx, senderID, requestID); err != nil {
		return nil, err
	}

	msg := &domain.ChatMessage{
		ID:              uuid.NewString(),
		RentalRequestID: requestID,
		SenderID:        senderID,
		Message:         text,
		Read:            false,
		CreatedAt:       time.Now().Format(time.RFC3339),
	}
	if err := s.chatRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	// Persist first, then fan out: subscribers only ever see stored
	// messages.
	s.hub.Publish(*msg)
	return msg, nil
}

func (s *chatService) History(ctx context.Context, userID, requestID string) ([]domain.ChatMessage, error) {
	if err := s.authorize(ctx, userID, requestID); err != nil {
		return nil, err
	}
	return s.chatRepo.ListByRequest(ctx, requestID)
}

func (s *chatService) MarkRead(ctx context.Context, requestID, readerID string) error {
	return s.chatRepo.MarkRead(ctx, requestID, readerID)
}

func (s *chatService) UnreadCount(ctx context.Context, requestID, readerID string) (int, error) {
	return s.chatRepo.CountUnread(ctx, requestID, readerID)
}

func (s *chatService) Subscribe(ctx context.Context, userID, requestID string) (*realtime.Subscription, error) {
	if err := s.authorize(ctx, userID, requestID); err != nil {
		return nil, err
	}
	return s.hub.Subscribe(requestID), nil
}

// authorize restricts a conversation to its two participants: the
// requester and the machine's owner.
func (s *chatService) authorize(ctx context.Context, userID, requestID string) error {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.RequesterID == userID {
		return nil
	}
	machine, err := s.machineRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return err
	}
	if machine.OwnerID == userID {
		return nil
	}
	return ErrNotParticipant
}
