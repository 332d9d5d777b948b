package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/bottlepop/internal/core"
)

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(10, 3)
	s.DrawText(0, 0, "Score")
	s.SetColored(2, 1, '█', core.ColorBrightRed)
	s.SetColored(3, 1, '█', core.ColorBrightRed)
	s.SetColored(4, 2, '·', core.ColorDarkGray)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("rendered %d lines, expected 3", len(lines))
	}
	if !strings.Contains(lines[0], "Score") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "██") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.Contains(lines[2], "·") {
		t.Errorf("line 2 = %q", lines[2])
	}
}

func TestEveryColorHasStyle(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorDarkGray; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("color %d has no style", c)
		}
	}
}

func TestUnknownColorFallsBackToDefault(t *testing.T) {
	s := core.NewScreen(3, 1)
	s.SetColored(0, 0, 'x', core.Color(200))

	if out := RenderScreen(s); !strings.Contains(out, "x") {
		t.Errorf("RenderScreen() = %q, expected the rune to survive", out)
	}
}
