package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/wanderlust-app/wanderlust/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, restrict to configured origins.
		return true
	},
}

type inboundEvent struct {
	Event     string `json:"event"`
	ListingID uint   `json:"listingId"`
	Message   string `json:"message"`
	Sender    uint   `json:"sender"`
}

type outboundMessage struct {
	Event     string `json:"event"`
	Message   string `json:"message"`
	Sender    uint   `json:"sender"`
	Timestamp string `json:"timestamp"`
}

type outboundError struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

// Gateway upgrades connections and routes joinRoom/sendMessage events.
type Gateway struct {
	hub  *Hub
	chat service.ChatService
}

func NewGateway(hub *Hub, chat service.ChatService) *Gateway {
	return &Gateway{hub: hub, chat: chat}
}

func (g *Gateway) Hub() *Hub {
	return g.hub
}

// Handle is the /ws endpoint. Joining a room requires no membership or
// authorization check: any connected client may join any listing's room.
// Known gap, kept to match the existing client contract.
func (g *Gateway) Handle(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return nil
	}

	client := newClient(g, conn)

	// Optional auto-join via query string
	if raw := c.QueryParam("listing_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			client.join(uint(id))
		}
	}

	go client.writePump()
	go client.readPump()
	return nil
}

func (g *Gateway) handleEvent(c *Client, data []byte) {
	var ev inboundEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		c.sendError("malformed event")
		return
	}

	switch ev.Event {
	case "joinRoom":
		c.join(ev.ListingID)
	case "sendMessage":
		g.sendMessage(c, ev)
	default:
		c.sendError("unknown event: " + ev.Event)
	}
}

// sendMessage persists first and broadcasts second. A persistence failure
// is reported back to the sender instead of being dropped silently.
func (g *Gateway) sendMessage(c *Client, ev inboundEvent) {
	msg, err := g.chat.Send(context.Background(), ev.ListingID, ev.Sender, ev.Message)
	if err != nil {
		log.Printf("[Chat] persist failed for listing %d: %v", ev.ListingID, err)
		c.sendError("message could not be saved")
		return
	}

	g.hub.Broadcast(ev.ListingID, outboundMessage{
		Event:     "receiveMessage",
		Message:   msg.Body,
		Sender:    msg.SenderID,
		Timestamp: msg.SentAt.Format("2006-01-02T15:04:05.000Z07:00"),
	})
}

func (c *Client) sendError(reason string) {
	b, _ := json.Marshal(outboundError{Event: "error", Message: reason})
	select {
	case c.send <- b:
	default:
	}
}
