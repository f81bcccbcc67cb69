// Package render draws game snapshots in a terminal.
package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/evermake/microgames/game"
)

// Cell types for the board
const (
	cellEmpty = iota
	cellBall
	cellLeftPaddle
	cellRightPaddle
)

const (
	charEmpty  = " "
	charBall   = "O"
	charPaddle = "█"
	charWall   = "─"
	charGoal   = "┆"

	ansiReset = "\033[0m"
)

// TerminalRenderer scales the surface onto a fixed character grid.
type TerminalRenderer struct {
	cols, rows int
	board      [][]int
	buffer     strings.Builder
	out        io.Writer
}

// NewTerminalRenderer creates a renderer with a cols x rows play field.
// The field is at least one cell on each axis.
func NewTerminalRenderer(cols, rows int, out io.Writer) *TerminalRenderer {
	cols, rows = max(cols, 1), max(rows, 1)

	board := make([][]int, rows)
	for i := range board {
		board[i] = make([]int, cols)
	}

	return &TerminalRenderer{
		cols:  cols,
		rows:  rows,
		board: board,
		out:   out,
	}
}

// ShowCursor shows the cursor (call on exit)
func (r *TerminalRenderer) ShowCursor() {
	fmt.Fprint(r.out, "\033[?25h")
}

// HideCursor hides the cursor (call on start)
func (r *TerminalRenderer) HideCursor() {
	fmt.Fprint(r.out, "\033[?25l")
}

// Render clears the screen and draws snap.
func (r *TerminalRenderer) Render(snap game.Snapshot) {
	io.WriteString(r.out, "\033[H\033[2J\033[3J"+r.Frame(snap))
}

// Frame returns the text of one frame without screen control codes.
func (r *TerminalRenderer) Frame(snap game.Snapshot) string {
	r.buffer.Reset()

	for y := range r.board {
		for x := range r.board[y] {
			r.board[y][x] = cellEmpty
		}
	}

	r.buffer.WriteString("\n  Pong\n")
	r.buffer.WriteString(fmt.Sprintf("  Left: %d  |  Right: %d  |  %s\n\n", snap.Scores.Left, snap.Scores.Right, snap.State))

	if !snap.Attached || snap.Width <= 0 || snap.Height <= 0 {
		r.buffer.WriteString("  Waiting for a surface...\n")
		return r.buffer.String()
	}

	sx := float64(r.cols) / snap.Width
	sy := float64(r.rows) / snap.Height

	r.fill(snap.LeftPaddle, sx, sy, cellLeftPaddle)
	r.fill(snap.RightPaddle, sx, sy, cellRightPaddle)

	bx, by := r.cell(snap.Ball.X*sx, r.cols), r.cell(snap.Ball.Y*sy, r.rows)
	r.board[by][bx] = cellBall

	colors := map[int]string{
		cellBall:        ansiColor(snap.Colors.Ball),
		cellLeftPaddle:  ansiColor(snap.Colors.LeftPaddle),
		cellRightPaddle: ansiColor(snap.Colors.RightPaddle),
	}

	wall := "  " + strings.Repeat(charWall, r.cols+2) + "\n"
	r.buffer.WriteString(wall)
	for _, row := range r.board {
		r.buffer.WriteString("  " + charGoal)
		for _, c := range row {
			r.writeCell(c, colors[c])
		}
		r.buffer.WriteString(charGoal + "\n")
	}
	r.buffer.WriteString(wall)

	switch snap.State {
	case game.StatePaused:
		r.buffer.WriteString("\n  Paused. Space to play, R to reset.\n")
	case game.StateGameOver:
		r.buffer.WriteString("\n  Point! R to serve again.\n")
	default:
		r.buffer.WriteString("\n  W/S left paddle, Up/Down right paddle, X stops both, Q quits.\n")
	}

	return r.buffer.String()
}

func (r *TerminalRenderer) writeCell(c int, color string) {
	var ch string
	switch c {
	case cellBall:
		ch = charBall
	case cellLeftPaddle, cellRightPaddle:
		ch = charPaddle
	default:
		r.buffer.WriteString(charEmpty)
		return
	}

	if color == "" {
		r.buffer.WriteString(ch)
		return
	}
	r.buffer.WriteString(color + ch + ansiReset)
}

// fill marks every cell a rectangle overlaps, at least one per axis.
func (r *TerminalRenderer) fill(rect game.Rect, sx, sy float64, c int) {
	x0 := r.cell(rect.X*sx, r.cols)
	x1 := r.cell(math.Ceil((rect.X+rect.Width)*sx)-1, r.cols)
	y0 := r.cell(rect.Y*sy, r.rows)
	y1 := r.cell(math.Ceil((rect.Y+rect.Height)*sy)-1, r.rows)

	for y := y0; y <= max(y0, y1); y++ {
		for x := x0; x <= max(x0, x1); x++ {
			r.board[y][x] = c
		}
	}
}

// cell converts a scaled coordinate to a grid index in [0, n).
func (r *TerminalRenderer) cell(v float64, n int) int {
	i := int(math.Floor(v))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// ansiColor turns "#rrggbb" into a 24-bit foreground escape. Anything else
// renders uncolored.
func ansiColor(hex string) string {
	if len(hex) != 7 || hex[0] != '#' {
		return ""
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", v>>16&0xff, v>>8&0xff, v&0xff)
}
