package gfx

import (
	"maps"
	"path/filepath"
	"slices"
	"testing"

	"github.com/vovakirdan/bottlepop/internal/core"
	"github.com/vovakirdan/bottlepop/internal/storage"
)

type stubGame struct {
	frames []core.InputFrame
	resets int
	state  core.GameState
}

func (g *stubGame) ID() string               { return "stub" }
func (g *stubGame) Title() string            { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++; g.state = core.GameState{} }
func (g *stubGame) Render(dst *core.Screen)  {}
func (g *stubGame) State() core.GameState    { return g.state }

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, copyFrame(in))
	if in.Has(core.ActionPause) {
		g.state.Paused = !g.state.Paused
	}
	return core.StepResult{State: g.state}
}

// copyFrame snapshots a frame; the caller clears and reuses the original.
func copyFrame(in core.InputFrame) core.InputFrame {
	return core.InputFrame{Actions: maps.Clone(in.Actions), Taps: slices.Clone(in.Taps)}
}

func newTestGame(sg *stubGame, store *storage.Store) *Game {
	cfg := core.RuntimeConfig{ScreenW: 40, ScreenH: 30, TickRate: 60, Seed: 1}
	return NewGame(sg, cfg, Options{Store: store})
}

func TestCellAt(t *testing.T) {
	tests := []struct {
		px, py int
		cx, cy int
	}{
		{0, 0, 0, 0},
		{CellW - 1, CellH - 1, 0, 0},
		{CellW, CellH, 1, 1},
		{CellW*5 + 3, CellH*7 + 15, 5, 7},
		{-1, -1, -1, -1},
	}
	for _, tc := range tests {
		cx, cy := CellAt(tc.px, tc.py)
		if cx != tc.cx || cy != tc.cy {
			t.Errorf("CellAt(%d, %d) = (%d, %d), expected (%d, %d)", tc.px, tc.py, cx, cy, tc.cx, tc.cy)
		}
	}
}

func TestShapeOf(t *testing.T) {
	tests := []struct {
		r    rune
		want shape
	}{
		{' ', shapeBlank},
		{'█', shapeFull},
		{'▄', shapeLower},
		{'▀', shapeUpper},
		{'═', shapeDouble},
		{'┌', shapeCorner},
		{'·', shapeDot},
		{'✶', shapeSpark},
		{'S', shapeText},
		{'é', shapeBlank},
	}
	for _, tc := range tests {
		if got := shapeOf(tc.r); got != tc.want {
			t.Errorf("shapeOf(%q) = %v, expected %v", tc.r, got, tc.want)
		}
	}
}

func TestEveryColorHasRGBA(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorDarkGray; c++ {
		if _, ok := palette[c]; !ok {
			t.Errorf("color %d has no RGBA", c)
		}
	}
	if RGBA(core.Color(200)) != palette[core.ColorDefault] {
		t.Error("unknown colors should fall back to the default")
	}
}

func TestTapBecomesCellTap(t *testing.T) {
	sg := &stubGame{}
	g := newTestGame(sg, nil)

	g.tapAt(CellW*3+2, CellH*4+1)
	g.step()

	if len(sg.frames) != 1 {
		t.Fatalf("steps = %d, expected 1", len(sg.frames))
	}
	if taps := sg.frames[0].Taps; len(taps) != 1 || taps[0] != (core.Tap{X: 3, Y: 4}) {
		t.Errorf("taps = %v, expected [(3, 4)]", taps)
	}

	g.step()
	if !sg.frames[1].Empty() {
		t.Error("input should be cleared after each step")
	}
}

func TestFocusLossPauses(t *testing.T) {
	sg := &stubGame{}
	g := newTestGame(sg, nil)

	g.setFocused(false)
	g.step()
	if !g.State().Paused {
		t.Fatal("losing focus should pause")
	}

	// Staying unfocused must not toggle pause again
	g.setFocused(false)
	g.step()
	if !g.State().Paused {
		t.Error("game should stay paused while unfocused")
	}

	g.setFocused(true)
	g.step()
	if !g.State().Paused {
		t.Error("regaining focus should leave the game paused")
	}
}

func TestTapAfterGameOverRestarts(t *testing.T) {
	sg := &stubGame{}
	g := newTestGame(sg, nil)

	sg.state.GameOver = true
	g.step()
	g.tapAt(5, 5)
	g.step()

	if sg.resets != 2 {
		t.Errorf("resets = %d, expected a restart", sg.resets)
	}
	if g.State().GameOver {
		t.Error("state should be fresh after restart")
	}
}

func TestScoreSavedOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	sg := &stubGame{}
	g := newTestGame(sg, store)
	sg.state = core.GameState{Score: 12, GameOver: true, Intensity: 2}
	g.step()
	g.step()

	scores, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 12 || scores[0].Intensity != 2 {
		t.Errorf("scores = %+v, expected one entry of 12 at intensity 2", scores)
	}
}

func TestLayoutMatchesPlayfield(t *testing.T) {
	g := newTestGame(&stubGame{}, nil)
	w, h := g.Layout(1920, 1080)
	if w != 40*CellW || h != 30*CellH {
		t.Errorf("Layout = %dx%d, expected %dx%d", w, h, 40*CellW, 30*CellH)
	}
}

func TestSoundVolume(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		vol     float64
		enabled bool
	}{
		{"default", Options{Volume: 0.6}, 0.6, true},
		{"zero is silent", Options{Volume: 0}, 0, false},
		{"negative is silent", Options{Volume: -1}, 0, false},
		{"muted", Options{Volume: 0.6, Mute: true}, 0, false},
		{"capped", Options{Volume: 3}, 1, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			vol, ok := tc.opts.soundVolume()
			if vol != tc.vol || ok != tc.enabled {
				t.Errorf("soundVolume() = (%g, %v), expected (%g, %v)", vol, ok, tc.vol, tc.enabled)
			}
		})
	}
}
