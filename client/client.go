// Package client wraps one renderer WebSocket connection.
package client

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// SendQueueSize bounds the frames buffered for a slow renderer.
	SendQueueSize = 100

	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

type Client struct {
	ID        string
	Conn      *websocket.Conn
	SendQueue chan []byte

	closeOnce sync.Once
}

func New(conn *websocket.Conn) *Client {
	return &Client{
		ID:        uuid.NewString(),
		Conn:      conn,
		SendQueue: make(chan []byte, SendQueueSize),
	}
}

// Send queues a frame without blocking. It reports false when the queue is
// full and the frame was dropped.
func (c *Client) Send(msg []byte) bool {
	select {
	case c.SendQueue <- msg:
		return true
	default:
		log.Printf("[WS] Dropping message, send queue full for client %s", c.ID)
		return false
	}
}

// Close stops the write pump. It is safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.SendQueue)
	})
}

// WritePump writes queued frames as binary messages and pings the peer until
// the queue is closed or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.SendQueue:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
				log.Printf("[WS] Binary message write error for client %s: %v", c.ID, err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] Ping error for client %s: %v", c.ID, err)
				return
			}
		}
	}
}
