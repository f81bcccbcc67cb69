package joystick

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Event
		ok   bool
	}{
		{"full right", "j100:-52:0", Event{X: 100, Y: -52}, true},
		{"pressed", "j0:0:1", Event{Pressed: true}, true},
		{"negative limits", "j-100:-100:0", Event{X: -100, Y: -100}, true},
		{"x out of range", "j101:0:0", Event{}, false},
		{"y out of range", "j0:-101:0", Event{}, false},
		{"bad button", "j0:0:2", Event{}, false},
		{"missing field", "j0:0", Event{}, false},
		{"not a number", "jx:0:0", Event{}, false},
		{"unknown code", "k0:0:0", Event{}, false},
		{"empty", "", Event{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Decode([]byte(tt.data))
			if ok != tt.ok || got != tt.want {
				t.Errorf("Decode(%q) = %+v, %v; want %+v, %v", tt.data, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	ev := Event{X: -3, Y: 77, Pressed: true}
	frame := Encode(ev)
	if string(frame) != "^j-3:77:1$" {
		t.Fatalf("Encode = %q", frame)
	}

	got, ok := Decode(frame[1 : len(frame)-1])
	if !ok || got != ev {
		t.Errorf("Decode(Encode) = %+v, %v", got, ok)
	}
}

func TestSpeedPercent(t *testing.T) {
	if got := (Event{Y: -50}).SpeedPercent(); got != -0.5 {
		t.Errorf("SpeedPercent = %v, want -0.5", got)
	}
}

func TestParserFeed(t *testing.T) {
	p := NewParser()

	if got := p.Feed("a", []byte("noise^j1:2:")); len(got) != 0 {
		t.Fatalf("partial frame produced %+v", got)
	}

	got := p.Feed("a", []byte("0$^j3:4:1$^j5"))
	want := []Event{{X: 1, Y: 2}, {X: 3, Y: 4, Pressed: true}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Feed = %+v, want %+v", got, want)
	}

	got = p.Feed("a", []byte(":6:0$"))
	if !reflect.DeepEqual(got, []Event{{X: 5, Y: 6}}) {
		t.Fatalf("Feed = %+v", got)
	}
	if _, ok := p.pending["a"]; ok {
		t.Error("buffer kept after a complete frame")
	}
}

func TestParserSkipsInvalidFrames(t *testing.T) {
	p := NewParser()

	got := p.Feed("a", []byte("^j500:0:0$^zz$^j1:1:0$"))
	if !reflect.DeepEqual(got, []Event{{X: 1, Y: 1}}) {
		t.Errorf("Feed = %+v", got)
	}
}

func TestParserDropsNoise(t *testing.T) {
	p := NewParser()

	if got := p.Feed("a", []byte("garbage without a start")); len(got) != 0 {
		t.Fatalf("Feed = %+v", got)
	}
	if _, ok := p.pending["a"]; ok {
		t.Error("noise was buffered")
	}
}

func TestParserKeepsClientsApart(t *testing.T) {
	p := NewParser()

	p.Feed("a", []byte("^j1:"))
	p.Feed("b", []byte("^j9:9:0$"))

	got := p.Feed("a", []byte("2:0$"))
	if !reflect.DeepEqual(got, []Event{{X: 1, Y: 2}}) {
		t.Errorf("Feed = %+v", got)
	}
}

func TestParserBoundsUnterminatedFrames(t *testing.T) {
	p := NewParser()

	p.Feed("a", append([]byte("^"), bytes.Repeat([]byte("7"), 255)...))
	for i := 0; i < 4000; i++ {
		p.Feed("a", bytes.Repeat([]byte("7"), 256))
		if n := len(p.pending["a"]); n > maxPending {
			t.Fatalf("pending grew to %d bytes after %d datagrams", n, i+1)
		}
	}

	got := p.Feed("a", []byte("^j1:2:0$"))
	if !reflect.DeepEqual(got, []Event{{X: 1, Y: 2}}) {
		t.Errorf("Feed after overflow = %+v", got)
	}
}

func TestParserKeepsLaterFrameStartOnOverflow(t *testing.T) {
	p := NewParser()

	p.Feed("a", []byte("^"+strings.Repeat("x", 40)+"^j-100:"))
	if got := string(p.pending["a"]); got != "^j-100:" {
		t.Fatalf("pending = %q, want the last frame start", got)
	}

	got := p.Feed("a", []byte("-100:1$"))
	if !reflect.DeepEqual(got, []Event{{X: -100, Y: -100, Pressed: true}}) {
		t.Errorf("Feed = %+v", got)
	}
}
