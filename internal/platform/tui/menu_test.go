package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bottlepop/internal/config"
	"github.com/vovakirdan/bottlepop/internal/core"
	_ "github.com/vovakirdan/bottlepop/internal/games/bottles"
	"github.com/vovakirdan/bottlepop/internal/storage"
)

func newTestMenu(t *testing.T) MenuModel {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return NewMenuModel(nil, core.DefaultConfig(), "")
}

func pressMenu(t *testing.T, m MenuModel, msg tea.KeyMsg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(MenuModel)
}

func TestMenuListsModes(t *testing.T) {
	m := newTestMenu(t)

	if len(m.items) != 2 {
		t.Fatalf("menu has %d items, expected 2", len(m.items))
	}
	if m.items[0].GameID != config.ModeClassic || m.items[1].GameID != config.ModeRush {
		t.Errorf("items = %+v", m.items)
	}
	if m.Intensity() != config.DefaultBottlesConfig().Intensity.Initial {
		t.Errorf("intensity = %d, expected the classic default", m.Intensity())
	}
}

func TestMenuIntensityClamps(t *testing.T) {
	m := newTestMenu(t)
	steps := m.items[0].Steps

	for i := 0; i < steps+5; i++ {
		m = pressMenu(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	if m.Intensity() != steps {
		t.Errorf("intensity = %d, expected clamp at %d", m.Intensity(), steps)
	}
	if m.dialPercent() != 1 {
		t.Errorf("dial percent = %f, expected 1", m.dialPercent())
	}

	for i := 0; i < steps+5; i++ {
		m = pressMenu(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	if m.Intensity() != 0 {
		t.Errorf("intensity = %d, expected clamp at 0", m.Intensity())
	}
}

func TestMenuSelect(t *testing.T) {
	m := newTestMenu(t)

	m = pressMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Intensity() != config.DefaultRushConfig().Intensity.Initial {
		t.Errorf("intensity = %d, expected rush default after moving", m.Intensity())
	}
	m = pressMenu(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = pressMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	res := m.Result()
	if res.Quit || res.GameID != config.ModeRush {
		t.Fatalf("result = %+v, expected rush selected", res)
	}
	if res.Intensity != config.DefaultRushConfig().Intensity.Initial+1 {
		t.Errorf("result intensity = %d", res.Intensity)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := pressMenu(t, newTestMenu(t), tea.KeyMsg{Type: tea.KeyTab})
	if !m.Result().WantsScoreboard {
		t.Error("tab should open the scoreboard")
	}

	m = pressMenu(t, newTestMenu(t), runeKey('q'))
	if !m.Result().Quit {
		t.Error("q should quit")
	}
}

func TestMenuShowsStoredStats(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, s := range []int{12, 30, 7} {
		if _, err := store.SaveScore(config.ModeRush, s, 4); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	m := NewMenuModel(store, core.DefaultConfig(), "")

	tests := []struct {
		id           string
		best, played int
	}{
		{config.ModeClassic, 0, 0},
		{config.ModeRush, 30, 3},
	}
	for _, tc := range tests {
		var item *MenuItem
		for i := range m.items {
			if m.items[i].GameID == tc.id {
				item = &m.items[i]
			}
		}
		if item == nil {
			t.Fatalf("mode %s missing from menu", tc.id)
		}
		if item.Best != tc.best || item.Played != tc.played {
			t.Errorf("%s: best %d played %d, expected best %d played %d",
				tc.id, item.Best, item.Played, tc.best, tc.played)
		}
	}
}
