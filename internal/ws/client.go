package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type Client struct {
	conn    *websocket.Conn
	gateway *Gateway
	// send is never closed; writePump shuts down via done instead, so a
	// broadcast racing a disconnect cannot hit a closed channel.
	send chan []byte
	done chan struct{}

	mu     sync.Mutex
	rooms  map[uint]bool
	closed bool
}

func newClient(g *Gateway, conn *websocket.Conn) *Client {
	return &Client{
		conn:    conn,
		gateway: g,
		send:    make(chan []byte, 256),
		done:    make(chan struct{}),
		rooms:   make(map[uint]bool),
	}
}

func (c *Client) join(listingID uint) {
	c.mu.Lock()
	c.rooms[listingID] = true
	c.mu.Unlock()
	c.gateway.hub.Join(listingID, c)
}

// readPump handles inbound events serially, so two messages from the same
// sender are persisted and broadcast in the order they arrived.
func (c *Client) readPump() {
	defer c.Close()
	c.conn.SetReadLimit(8 * 1024)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		c.gateway.handleEvent(c, data)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	rooms := make([]uint, 0, len(c.rooms))
	for id := range c.rooms {
		rooms = append(rooms, id)
	}
	c.mu.Unlock()

	for _, id := range rooms {
		c.gateway.hub.Leave(id, c)
	}
	close(c.done)
	_ = c.conn.Close()
}
