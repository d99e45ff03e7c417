package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/wanderlust-app/wanderlust/internal/models"
)

// --- Mock ChatService ---

type mockChatService struct {
	sendFn func(ctx context.Context, listingID, senderID uint, body string) (*models.ChatMessage, error)
}

func (m *mockChatService) Send(ctx context.Context, listingID, senderID uint, body string) (*models.ChatMessage, error) {
	if m.sendFn != nil {
		return m.sendFn(ctx, listingID, senderID, body)
	}
	return &models.ChatMessage{
		ListingID: listingID,
		SenderID:  senderID,
		Body:      body,
		SentAt:    time.Now(),
		Status:    models.MessageDelivered,
	}, nil
}
func (m *mockChatService) History(ctx context.Context, listingID uint) ([]models.ChatMessage, error) {
	return nil, nil
}

func startGateway(t *testing.T, chat *mockChatService) (*httptest.Server, *Gateway) {
	t.Helper()
	e := echo.New()
	gw := NewGateway(NewHub(), chat)
	e.GET("/ws", gw.Handle)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, gw
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	assert.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForRoomSize(t *testing.T, hub *Hub, listingID uint, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.RoomSize(listingID) != want {
		if time.Now().After(deadline) {
			t.Fatalf("room %d never reached %d members", listingID, want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	assert.NoError(t, err)
	var ev map[string]any
	assert.NoError(t, json.Unmarshal(data, &ev))
	return ev
}

// --- Tests ---

func TestGateway_RoomFanOutAndOrdering(t *testing.T) {
	srv, gw := startGateway(t, &mockChatService{})

	sender := dial(t, srv, "?listing_id=5")
	peer := dial(t, srv, "?listing_id=5")
	waitForRoomSize(t, gw.Hub(), 5, 2)

	send := func(body string) {
		assert.NoError(t, sender.WriteJSON(map[string]any{
			"event":     "sendMessage",
			"listingId": 5,
			"sender":    1,
			"message":   body,
		}))
	}
	send("first")
	send("second")

	// Both room members see both messages, sender included, in send order.
	for _, conn := range []*websocket.Conn{sender, peer} {
		ev1 := readEvent(t, conn)
		ev2 := readEvent(t, conn)
		assert.Equal(t, "receiveMessage", ev1["event"])
		assert.Equal(t, "first", ev1["message"])
		assert.Equal(t, "second", ev2["message"])
		assert.NotEmpty(t, ev1["timestamp"])
	}
}

func TestGateway_JoinRoomEvent(t *testing.T) {
	srv, gw := startGateway(t, &mockChatService{})

	conn := dial(t, srv, "")
	assert.NoError(t, conn.WriteJSON(map[string]any{"event": "joinRoom", "listingId": 9}))
	waitForRoomSize(t, gw.Hub(), 9, 1)
}

func TestGateway_PersistFailureGoesToSenderOnly(t *testing.T) {
	chat := &mockChatService{
		sendFn: func(ctx context.Context, listingID, senderID uint, body string) (*models.ChatMessage, error) {
			return nil, errors.New("db down")
		},
	}
	srv, gw := startGateway(t, chat)

	sender := dial(t, srv, "?listing_id=5")
	peer := dial(t, srv, "?listing_id=5")
	waitForRoomSize(t, gw.Hub(), 5, 2)

	assert.NoError(t, sender.WriteJSON(map[string]any{
		"event":     "sendMessage",
		"listingId": 5,
		"sender":    1,
		"message":   "lost",
	}))

	ev := readEvent(t, sender)
	assert.Equal(t, "error", ev["event"])
	assert.Equal(t, "message could not be saved", ev["message"])

	// The peer must not receive the unpersisted message.
	peer.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	_, _, err := peer.ReadMessage()
	assert.Error(t, err)
}

func TestGateway_UnknownEvent(t *testing.T) {
	srv, gw := startGateway(t, &mockChatService{})

	conn := dial(t, srv, "?listing_id=5")
	waitForRoomSize(t, gw.Hub(), 5, 1)

	assert.NoError(t, conn.WriteJSON(map[string]any{"event": "teleport"}))

	ev := readEvent(t, conn)
	assert.Equal(t, "error", ev["event"])
	assert.Contains(t, ev["message"], "unknown event")
}
