package joystick

import (
	"context"
	"errors"
	"log"
	"net"
	"sync"

	"github.com/evermake/microgames/input"
	"github.com/evermake/microgames/paddle"
)

// DefaultAddr is the port the joystick clients send to.
const DefaultAddr = ":7777"

// maxDatagram matches the clients' send size.
const maxDatagram = 256

// Server binds the first two joystick clients it hears from to the left and
// right paddle sliders.
type Server struct {
	Addr  string
	Left  *input.Slider
	Right *input.Slider

	// OnButton, if set, is called when a client's button goes down.
	OnButton func(side paddle.Side)

	parser  *Parser
	sides   map[string]paddle.Side
	pressed map[string]bool
	mu      sync.Mutex
}

func NewServer(addr string, left, right *input.Slider) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Server{
		Addr:    addr,
		Left:    left,
		Right:   right,
		parser:  NewParser(),
		sides:   make(map[string]paddle.Side),
		pressed: make(map[string]bool),
	}
}

// ListenAndServe listens on s.Addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	conn, err := net.ListenPacket("udp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, conn)
}

// Serve reads datagrams from conn until ctx is cancelled, then closes it.
func (s *Server) Serve(ctx context.Context, conn net.PacketConn) error {
	log.Printf("[JOYSTICK] Listening on %s", conn.LocalAddr())

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	buf := make([]byte, maxDatagram)
	for {
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				log.Println("[JOYSTICK] Listener stopped")
				return nil
			}
			return err
		}
		s.Handle(addr.String(), buf[:n])
	}
}

// Handle applies one datagram from client.
func (s *Server) Handle(client string, data []byte) {
	s.mu.Lock()

	side, ok := s.sideFor(client)
	if !ok {
		s.mu.Unlock()
		return
	}

	events := s.parser.Feed(client, data)

	var buttonDown bool
	for _, ev := range events {
		s.slider(side).Set(ev.SpeedPercent())
		if ev.Pressed && !s.pressed[client] {
			buttonDown = true
		}
		s.pressed[client] = ev.Pressed
	}
	s.mu.Unlock()

	if buttonDown && s.OnButton != nil {
		s.OnButton(side)
	}
}

// sideFor assigns sides in order of first contact. Must hold s.mu.
func (s *Server) sideFor(client string) (paddle.Side, bool) {
	if side, ok := s.sides[client]; ok {
		return side, true
	}

	var side paddle.Side
	switch len(s.sides) {
	case 0:
		side = paddle.Left
	case 1:
		side = paddle.Right
	default:
		return "", false
	}

	s.sides[client] = side
	log.Printf("[JOYSTICK] Client %s controls the %s paddle", client, side)
	return side, true
}

func (s *Server) slider(side paddle.Side) *input.Slider {
	if side == paddle.Left {
		return s.Left
	}
	return s.Right
}
