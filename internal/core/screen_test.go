package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("New screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestNewScreenNegative(t *testing.T) {
	s := NewScreen(-3, -1)
	if s.Width() != 0 || s.Height() != 0 {
		t.Errorf("negative size should clamp to 0x0, got %dx%d", s.Width(), s.Height())
	}
	if s.String() != "" {
		t.Errorf("empty screen should render empty, got %q", s.String())
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, '#', ColorWall)
	if c := s.GetCell(5, 5); c.Rune != '#' || c.Color != ColorWall {
		t.Errorf("GetCell(5, 5) = %+v, expected wall '#'", c)
	}
	s.Set(1, 1, 'X')
	if s.Get(1, 1) != 'X' || s.GetCell(1, 1).Color != ColorDefault {
		t.Errorf("Set should write an uncoloured rune, got %+v", s.GetCell(1, 1))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')
	s.Recolor(100, 100, ColorEnemy)

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenRecolor(t *testing.T) {
	s := NewScreen(3, 1)
	s.SetColored(1, 0, '@', ColorPlayer)
	s.Recolor(1, 0, ColorFog)

	if c := s.GetCell(1, 0); c.Rune != '@' || c.Color != ColorFog {
		t.Errorf("Recolor should keep the rune, got %+v", c)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 4)
	s.DrawRect(NewRect(0, 0, 4, 4), 'X', ColorWall)
	s.Clear()

	if s.String() != strings.Repeat("    \n", 3)+"    " {
		t.Errorf("After Clear, expected spaces, got %q", s.String())
	}
	if s.GetCell(2, 2).Color != ColorDefault {
		t.Error("Clear should reset colours")
	}
}

func TestScreenDrawRectClips(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawRect(NewRect(-2, 1, 4, 10), '#', ColorWall)

	want := "    \n##  \n##  "
	if s.String() != want {
		t.Errorf("DrawRect should clip to the screen, got %q", s.String())
	}
	if b := s.Bounds(); b.Right() != 4 || b.Bottom() != 3 {
		t.Errorf("Bounds() = %+v, expected 4x3", b)
	}
}

func TestScreenDrawText(t *testing.T) {
	tests := []struct {
		name string
		x    int
		text string
		want string
	}{
		{"start", 0, "abc", "abc  "},
		{"offset", 2, "abc", "  abc"},
		{"clipped", 3, "abc", "   ab"},
		{"negative", -1, "abc", "bc   "},
		{"multibyte", 0, "é→", "é→   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(5, 1)
			s.DrawText(tt.x, 0, tt.text, ColorText)
			if got := s.Row(0); got != tt.want {
				t.Errorf("Row(0) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(9, 1)
	s.DrawTextCentered(0, "abc", ColorText)

	if got := s.Row(0); got != "   abc   " {
		t.Errorf("Row(0) = %q, want centered text", got)
	}
	if s.GetCell(3, 0).Color != ColorText {
		t.Error("centered text should carry its colour")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "abcd", ColorText)
	s.DrawText(0, 1, "efgh", ColorText)

	s.Resize(2, 3)
	if s.Width() != 2 || s.Height() != 3 {
		t.Fatalf("Resize gave %dx%d", s.Width(), s.Height())
	}
	if got := s.String(); got != "ab\nef\n  " {
		t.Errorf("Resize should keep top-left content, got %q", got)
	}
	if s.GetCell(1, 1).Color != ColorText {
		t.Error("Resize should keep colours")
	}
}

func TestScreenRowOutOfRange(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(5); got != "   " {
		t.Errorf("Row(5) = %q, expected spaces", got)
	}
}

func TestActionIsMove(t *testing.T) {
	for _, a := range []Action{ActionNorth, ActionEast, ActionSouth, ActionWest} {
		if !a.IsMove() {
			t.Errorf("%v should be a move", a)
		}
	}
	for _, a := range []Action{ActionNone, ActionThrow, ActionQuit} {
		if a.IsMove() {
			t.Errorf("%v should not be a move", a)
		}
	}
}
