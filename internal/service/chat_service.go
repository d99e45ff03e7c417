package service

import (
	"context"
	"fmt"
	"time"

	"github.com/wanderlust-app/wanderlust/internal/models"
	"github.com/wanderlust-app/wanderlust/internal/repository"
)

const chatHistoryLimit = 100

type ChatService interface {
	// Send persists the message with a server-assigned timestamp and
	// returns it with the sender resolved. The gateway broadcasts only
	// after Send returns, so no peer ever sees an unpersisted message.
	Send(ctx context.Context, listingID, senderID uint, body string) (*models.ChatMessage, error)
	History(ctx context.Context, listingID uint) ([]models.ChatMessage, error)
}

type chatService struct {
	messages repository.ChatRepository
}

func NewChatService(messages repository.ChatRepository) ChatService {
	return &chatService{messages: messages}
}

func (s *chatService) Send(ctx context.Context, listingID, senderID uint, body string) (*models.ChatMessage, error) {
	msg := &models.ChatMessage{
		ListingID: listingID,
		SenderID:  senderID,
		Body:      body,
		SentAt:    time.Now(),
		Status:    models.MessageDelivered,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("persist chat message: %w", err)
	}

	// Resolve the sender for client display; fall back to the bare row
	// if the lookup fails.
	if full, err := s.messages.FindWithSender(ctx, msg.ID); err == nil {
		return full, nil
	}
	return msg, nil
}

func (s *chatService) History(ctx context.Context, listingID uint) ([]models.ChatMessage, error) {
	msgs, err := s.messages.FindByListingID(ctx, listingID, chatHistoryLimit)
	if err != nil {
		return nil, err
	}

	// Loading the room history is the read receipt for everything
	// delivered so far.
	for i := range msgs {
		if msgs[i].Status != models.MessageDelivered {
			continue
		}
		if err := s.messages.MarkRead(ctx, msgs[i].ID); err == nil {
			msgs[i].Status = models.MessageRead
		}
	}
	return msgs, nil
}
