package paddle

import (
	"errors"
	"testing"
)

func TestMoveClampsWithoutStopping(t *testing.T) {
	p := New(10, 60)
	p.Y = 335
	p.Dy = 5

	p.Move(400)
	if p.Y != 340 || p.Dy != 5 {
		t.Errorf("y=%v dy=%v, want y=340 dy=5", p.Y, p.Dy)
	}

	p.Move(400)
	if p.Y != 340 {
		t.Errorf("y=%v, want clamped at 340", p.Y)
	}

	p.Dy = -500
	p.Move(400)
	if p.Y != 0 {
		t.Errorf("y=%v, want clamped at 0", p.Y)
	}
}

func TestCenter(t *testing.T) {
	p := New(10, 60)
	p.Dy = 3

	p.Center(400)
	if p.Y != 170 || p.Dy != 0 {
		t.Errorf("y=%v dy=%v, want y=170 dy=0", p.Y, p.Dy)
	}
}

func TestParseSide(t *testing.T) {
	for _, s := range []string{"left", "right"} {
		if got, err := ParseSide(s); err != nil || string(got) != s {
			t.Errorf("ParseSide(%q) = %q, %v", s, got, err)
		}
	}

	if _, err := ParseSide("Left"); !errors.Is(err, ErrUnknownSide) {
		t.Errorf("err = %v, want ErrUnknownSide", err)
	}
}
