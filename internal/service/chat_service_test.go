package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wanderlust-app/wanderlust/internal/models"
)

// --- Mock ChatRepository ---

type mockChatRepo struct {
	createFn         func(ctx context.Context, msg *models.ChatMessage) error
	findWithSenderFn func(ctx context.Context, id uint) (*models.ChatMessage, error)
	listFn           func(ctx context.Context, listingID uint, limit int) ([]models.ChatMessage, error)
	markedRead       []uint
}

func (m *mockChatRepo) Create(ctx context.Context, msg *models.ChatMessage) error {
	if m.createFn != nil {
		return m.createFn(ctx, msg)
	}
	msg.ID = 1
	return nil
}
func (m *mockChatRepo) FindWithSender(ctx context.Context, id uint) (*models.ChatMessage, error) {
	if m.findWithSenderFn != nil {
		return m.findWithSenderFn(ctx, id)
	}
	return nil, errors.New("not stubbed")
}
func (m *mockChatRepo) FindByListingID(ctx context.Context, listingID uint, limit int) ([]models.ChatMessage, error) {
	if m.listFn != nil {
		return m.listFn(ctx, listingID, limit)
	}
	return nil, nil
}
func (m *mockChatRepo) MarkRead(ctx context.Context, id uint) error {
	m.markedRead = append(m.markedRead, id)
	return nil
}

// --- Tests ---

func TestSendMessage_PersistsAndResolvesSender(t *testing.T) {
	repo := &mockChatRepo{
		findWithSenderFn: func(ctx context.Context, id uint) (*models.ChatMessage, error) {
			return &models.ChatMessage{
				ID:       id,
				SenderID: 2,
				Body:     "is wifi included?",
				Sender:   &models.User{ID: 2, Username: "jane"},
			}, nil
		},
	}
	svc := NewChatService(repo)

	msg, err := svc.Send(context.Background(), 5, 2, "is wifi included?")

	assert.NoError(t, err)
	assert.Equal(t, "jane", msg.Sender.Username)
	assert.Equal(t, "is wifi included?", msg.Body)
}

func TestSendMessage_FallsBackWithoutSender(t *testing.T) {
	svc := NewChatService(&mockChatRepo{})

	msg, err := svc.Send(context.Background(), 5, 2, "hello")

	assert.NoError(t, err)
	assert.Equal(t, uint(5), msg.ListingID)
	assert.Equal(t, uint(2), msg.SenderID)
	assert.False(t, msg.SentAt.IsZero())
	assert.Equal(t, models.MessageDelivered, msg.Status)
}

func TestSendMessage_PersistFailure(t *testing.T) {
	repo := &mockChatRepo{
		createFn: func(ctx context.Context, msg *models.ChatMessage) error {
			return errors.New("db down")
		},
	}
	svc := NewChatService(repo)

	_, err := svc.Send(context.Background(), 5, 2, "hello")

	assert.Error(t, err)
}

func TestHistory_UsesLimit(t *testing.T) {
	var gotLimit int
	repo := &mockChatRepo{
		listFn: func(ctx context.Context, listingID uint, limit int) ([]models.ChatMessage, error) {
			gotLimit = limit
			return []models.ChatMessage{{ID: 1}, {ID: 2}}, nil
		},
	}
	svc := NewChatService(repo)

	msgs, err := svc.History(context.Background(), 5)

	assert.NoError(t, err)
	assert.Len(t, msgs, 2)
	assert.Equal(t, 100, gotLimit)
}

func TestHistory_MarksDeliveredAsRead(t *testing.T) {
	repo := &mockChatRepo{
		listFn: func(ctx context.Context, listingID uint, limit int) ([]models.ChatMessage, error) {
			return []models.ChatMessage{
				{ID: 1, Status: models.MessageDelivered},
				{ID: 2, Status: models.MessageRead},
				{ID: 3, Status: models.MessageDelivered},
			}, nil
		},
	}
	svc := NewChatService(repo)

	msgs, err := svc.History(context.Background(), 5)

	assert.NoError(t, err)
	assert.Equal(t, []uint{1, 3}, repo.markedRead)
	for _, m := range msgs {
		assert.Equal(t, models.MessageRead, m.Status)
	}
}
