package ws

import (
	"encoding/json"
	"time"

	"gamehub/internal/logger"
	"gamehub/internal/room"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second

	maxMessageSize = 64 * 1024 // canvas drawings ride the same socket
	sendBuffer     = 256
)

// Client is one websocket session bound to a guest identity. It implements
// room.Sink: room events for this player land in the send channel and the
// write pump flushes them out.
type Client struct {
	ID   string
	Name string

	conn *websocket.Conn
	send chan []byte
	hub  *Hub

	roomCode string
}

func NewClient(id, name string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		ID:   id,
		Name: name,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		hub:  hub,
	}
}

// Deliver queues a room event for this client. A client that cannot drain
// its buffer loses messages rather than stalling the whole room.
func (c *Client) Deliver(ev room.Event) {
	msg := marshalServer(ev.Type, ev.Data)
	select {
	case c.send <- msg:
	default:
		logger.Warn("client send buffer full, dropping event",
			"player", c.ID, "event", ev.Type)
	}
}

func (c *Client) Run() {
	go c.writePump()
	c.enqueue(marshalServer("ready", map[string]any{
		"player_id":   c.ID,
		"player_name": c.Name,
	}))
	c.readPump()
}

func (c *Client) enqueue(msg []byte) {
	select {
	case c.send <- msg:
	default:
	}
}

func (c *Client) sendError(err error) {
	c.enqueue(marshalServer("error", map[string]any{"message": err.Error()}))
}

func (c *Client) readPump() {
	defer c.disconnect()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("ws read error", "player", c.ID, "error", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.sendError(room.ErrMalformedPayload)
			continue
		}
		if err := c.hub.Handle(c, msg); err != nil {
			c.sendError(err)
		}
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
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) disconnect() {
	c.hub.OnDisconnect(c)
	_ = c.conn.Close()
}
