// Package wsserver streams game frames to renderer clients over WebSocket
// and accepts their surface size, paddle speed and control messages.
package wsserver

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/evermake/microgames/canvas"
	"github.com/evermake/microgames/client"
	"github.com/evermake/microgames/game"
	"github.com/evermake/microgames/input"
	"github.com/evermake/microgames/pongpb"
)

// DefaultBroadcastInterval matches a 30Hz renderer.
const DefaultBroadcastInterval = 32 * time.Millisecond

// Engine is the part of the game engine the feed drives.
type Engine interface {
	AttachSurface(s canvas.Surface)
	Subscribe(l game.Listener)
	Apply(a game.Action) error
	Snapshot() game.Snapshot
}

type WebSocketHandler struct {
	Upgrader          websocket.Upgrader
	Engine            Engine
	Canvas            *canvas.Canvas
	Left              *input.Slider
	Right             *input.Slider
	BroadcastInterval time.Duration

	Connections map[string]*client.Client
	Mu          sync.Mutex
}

// NewWebSocketHandler creates a handler and subscribes it to engine events.
func NewWebSocketHandler(engine Engine, c *canvas.Canvas, left, right *input.Slider) *WebSocketHandler {
	wsh := &WebSocketHandler{
		Upgrader:          websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		Engine:            engine,
		Canvas:            c,
		Left:              left,
		Right:             right,
		BroadcastInterval: DefaultBroadcastInterval,
		Connections:       make(map[string]*client.Client),
	}
	engine.Subscribe(wsh.onGameEvent)
	return wsh
}

// ClientCount returns the number of connected renderers.
func (wsh *WebSocketHandler) ClientCount() int {
	wsh.Mu.Lock()
	defer wsh.Mu.Unlock()

	return len(wsh.Connections)
}

// Run broadcasts a game_state frame every BroadcastInterval while at least one
// renderer is connected. It returns when ctx is cancelled.
func (wsh *WebSocketHandler) Run(ctx context.Context) {
	interval := wsh.BroadcastInterval
	if interval <= 0 {
		interval = DefaultBroadcastInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if wsh.ClientCount() == 0 {
				continue
			}
			wsh.broadcastGameState()
		}
	}
}

// ServeHTTP upgrades the connection and serves one renderer until it
// disconnects.
func (wsh *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := wsh.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Error %s when connecting to the socket", err)
		return
	}

	c := client.New(conn)
	wsh.register(c)
	go c.WritePump()

	wsh.readLoop(c)
}

func (wsh *WebSocketHandler) register(c *client.Client) {
	wsh.Mu.Lock()
	wsh.Connections[c.ID] = c
	count := len(wsh.Connections)
	wsh.Mu.Unlock()

	log.Printf("[WS] Client %s connected (%d total)", c.ID, count)
}

func (wsh *WebSocketHandler) disconnect(c *client.Client) {
	wsh.Mu.Lock()
	if _, ok := wsh.Connections[c.ID]; !ok {
		wsh.Mu.Unlock()
		return
	}
	delete(wsh.Connections, c.ID)
	count := len(wsh.Connections)
	wsh.Mu.Unlock()

	c.Close()
	log.Printf("[WS] Client %s disconnected (%d left)", c.ID, count)
}

func (wsh *WebSocketHandler) readLoop(c *client.Client) {
	defer wsh.disconnect(c)

	for {
		msgType, p, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Error reading message from client %s: %v", c.ID, err)
			}
			return
		}

		if msgType != websocket.BinaryMessage {
			wsh.sendError(c, "expected a binary protobuf frame")
			continue
		}

		message, err := pongpb.Unmarshal(p)
		if err != nil {
			log.Printf("[WS] Error unmarshalling protobuf: %v", err)
			wsh.sendError(c, "Invalid protobuf format")
			continue
		}

		wsh.handleMessage(c, message)
	}
}

// broadcastToAll queues msg on every client, dropping it for clients whose
// queue is full.
func (wsh *WebSocketHandler) broadcastToAll(msg []byte) {
	wsh.Mu.Lock()
	defer wsh.Mu.Unlock()

	for _, c := range wsh.Connections {
		c.Send(msg)
	}
}

func (wsh *WebSocketHandler) broadcastGameState() {
	encoded, err := pongpb.Marshal(gameStateMessage(wsh.Engine.Snapshot()))
	if err != nil {
		log.Printf("[WS] Failed to encode the game state: %v", err)
		return
	}
	wsh.broadcastToAll(encoded)
}

// onGameEvent pushes score changes immediately and a fresh frame on every
// lifecycle change so paused renderers do not wait for the ticker.
func (wsh *WebSocketHandler) onGameEvent(ev game.Event) {
	if wsh.ClientCount() == 0 {
		return
	}

	if ev.Kind == game.EventPointScored {
		encoded, err := pongpb.Marshal(&pongpb.Message{
			Type: pongpb.MsgTypeScore,
			Score: &pongpb.ScoreMessage{
				LeftScore:  int32(ev.Scores.Left),
				RightScore: int32(ev.Scores.Right),
				Scored:     string(ev.Scorer),
			},
		})
		if err != nil {
			log.Printf("[WS] Failed to marshal score message: %v", err)
			return
		}
		wsh.broadcastToAll(encoded)
	}

	wsh.broadcastGameState()
}
