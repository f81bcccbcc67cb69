package joystick

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/evermake/microgames/input"
	"github.com/evermake/microgames/paddle"
)

func newTestServer() *Server {
	return NewServer("", input.NewSlider(), input.NewSlider())
}

func TestServerAssignsSides(t *testing.T) {
	s := newTestServer()

	s.Handle("10.0.0.1:5000", Encode(Event{Y: 50}))
	s.Handle("10.0.0.2:5000", Encode(Event{Y: -100}))
	s.Handle("10.0.0.3:5000", Encode(Event{Y: 100}))

	if got := s.Left.SpeedPercent(); got != 0.5 {
		t.Errorf("left = %v, want 0.5", got)
	}
	if got := s.Right.SpeedPercent(); got != -1 {
		t.Errorf("right = %v, want -1 (third client must be ignored)", got)
	}
	if s.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", s.Addr, DefaultAddr)
	}
}

func TestServerButtonEdge(t *testing.T) {
	s := newTestServer()

	var presses []paddle.Side
	s.OnButton = func(side paddle.Side) { presses = append(presses, side) }

	s.Handle("a", Encode(Event{Pressed: true}))
	s.Handle("a", Encode(Event{Pressed: true}))
	s.Handle("b", Encode(Event{}))
	s.Handle("a", Encode(Event{}))
	s.Handle("b", Encode(Event{Pressed: true}))
	s.Handle("a", Encode(Event{Pressed: true}))

	want := []paddle.Side{paddle.Left, paddle.Right, paddle.Left}
	if len(presses) != len(want) {
		t.Fatalf("presses = %v, want %v", presses, want)
	}
	for i := range want {
		if presses[i] != want[i] {
			t.Errorf("press %d = %s, want %s", i, presses[i], want[i])
		}
	}
}

func TestServerServeUDP(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	s := newTestServer()
	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	var serveErr error
	go func() {
		defer wg.Done()
		serveErr = s.Serve(ctx, conn)
	}()

	client, err := net.Dial("udp", conn.LocalAddr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	if _, err := client.Write([]byte("^j0:25:0$")); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for s.Left.SpeedPercent() != 0.25 {
		if time.Now().After(deadline) {
			t.Fatalf("left slider = %v, want 0.25", s.Left.SpeedPercent())
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	wg.Wait()
	if serveErr != nil {
		t.Errorf("Serve returned %v", serveErr)
	}
}
