package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/evermake/microgames/game"
	"github.com/evermake/microgames/scores"
)

func servedSnapshot() game.Snapshot {
	return game.Snapshot{
		State:       game.StatePaused,
		Scores:      scores.Scores{Left: 3, Right: 1},
		Ball:        game.Circle{X: 400, Y: 200, Radius: 8},
		LeftPaddle:  game.Rect{X: 0, Y: 170, Width: 10, Height: 60},
		RightPaddle: game.Rect{X: 790, Y: 170, Width: 10, Height: 60},
		Width:       800,
		Height:      400,
		Attached:    true,
	}
}

// boardRows returns the play field rows without the goal markers.
func boardRows(frame string) []string {
	var rows []string
	for _, line := range strings.Split(frame, "\n") {
		if strings.HasPrefix(line, "  "+charGoal) {
			row := strings.TrimPrefix(line, "  "+charGoal)
			rows = append(rows, strings.TrimSuffix(row, charGoal))
		}
	}
	return rows
}

func TestFrameLayout(t *testing.T) {
	r := NewTerminalRenderer(80, 20, &bytes.Buffer{})
	frame := r.Frame(servedSnapshot())

	if !strings.Contains(frame, "Left: 3  |  Right: 1  |  paused") {
		t.Errorf("header missing from frame:\n%s", frame)
	}

	rows := boardRows(frame)
	if len(rows) != 20 {
		t.Fatalf("got %d rows, want 20", len(rows))
	}

	if strings.Count(frame, charBall) != 1 {
		t.Errorf("want exactly one ball in frame:\n%s", frame)
	}
	if got := []rune(rows[10])[40]; string(got) != charBall {
		t.Errorf("cell (40,10) = %q, want the ball", got)
	}

	// 170..230 of 400 maps to rows 8..11 of 20.
	for y, row := range rows {
		cells := []rune(row)
		want := y >= 8 && y <= 11
		if got := string(cells[0]) == charPaddle; got != want {
			t.Errorf("left paddle at row %d = %v, want %v", y, got, want)
		}
		if got := string(cells[79]) == charPaddle; got != want {
			t.Errorf("right paddle at row %d = %v, want %v", y, got, want)
		}
	}
}

func TestFrameWithoutSurface(t *testing.T) {
	r := NewTerminalRenderer(40, 10, &bytes.Buffer{})

	frame := r.Frame(game.Snapshot{State: game.StatePaused})
	if !strings.Contains(frame, "Waiting for a surface") {
		t.Errorf("frame = %q", frame)
	}
}

func TestFrameOnDegenerateGrid(t *testing.T) {
	for _, size := range [][2]int{{0, 0}, {0, 5}, {5, -2}} {
		r := NewTerminalRenderer(size[0], size[1], &bytes.Buffer{})

		frame := r.Frame(servedSnapshot())
		rows := boardRows(frame)
		if len(rows) < 1 {
			t.Fatalf("%v: no rows in frame:\n%s", size, frame)
		}
		if strings.Count(frame, charBall) != 1 {
			t.Errorf("%v: want exactly one ball in frame:\n%s", size, frame)
		}
	}
}

func TestFrameClampsBallAtEdge(t *testing.T) {
	r := NewTerminalRenderer(40, 10, &bytes.Buffer{})
	snap := servedSnapshot()
	snap.Ball.X = 804
	snap.Ball.Y = -3

	rows := boardRows(r.Frame(snap))
	if got := []rune(rows[0])[39]; string(got) != charBall {
		t.Errorf("ball outside the surface should clamp to the corner, got %q", got)
	}
}

func TestRenderColorsCells(t *testing.T) {
	var out bytes.Buffer
	r := NewTerminalRenderer(40, 10, &out)
	snap := servedSnapshot()
	snap.Colors = game.Colors{Ball: "#ffffff", LeftPaddle: "#4ade80", RightPaddle: "bogus"}

	r.Render(snap)

	s := out.String()
	if !strings.HasPrefix(s, "\033[H\033[2J") {
		t.Error("render should start by clearing the screen")
	}
	if !strings.Contains(s, "\033[38;2;255;255;255m"+charBall) {
		t.Error("ball is not colored")
	}
	if !strings.Contains(s, "\033[38;2;74;222;128m"+charPaddle) {
		t.Error("left paddle is not colored")
	}
}

func TestANSIColor(t *testing.T) {
	tests := map[string]string{
		"#f87171": "\033[38;2;248;113;113m",
		"#000000": "\033[38;2;0;0;0m",
		"f87171":  "",
		"#zzzzzz": "",
		"":        "",
	}
	for in, want := range tests {
		if got := ansiColor(in); got != want {
			t.Errorf("ansiColor(%q) = %q, want %q", in, got, want)
		}
	}
}
