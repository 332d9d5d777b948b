package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bottlepop/internal/config"
	"github.com/vovakirdan/bottlepop/internal/storage"
)

func newTestScoreboard(t *testing.T, startID string) ScoreboardModel {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for _, s := range []int{5, 9} {
		if _, err := store.SaveScore(config.ModeRush, s, 6); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	return NewScoreboardModel(store, 60, 24, startID)
}

func TestScoreboardOpensOnMode(t *testing.T) {
	m := newTestScoreboard(t, config.ModeRush)

	if m.games[m.gameCursor].ID != config.ModeRush {
		t.Fatalf("opened on %s, expected %s", m.games[m.gameCursor].ID, config.ModeRush)
	}
	if len(m.scores) != 2 || m.scores[0].Score != 9 {
		t.Errorf("scores = %+v, expected 9 then 5", m.scores)
	}
	if m.stats == nil || m.stats.MaxIntensity != 6 {
		t.Errorf("stats = %+v, expected highest dial 6", m.stats)
	}

	view := m.View()
	for _, want := range []string{"Bottle Pop: Rush", "2 games"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}
}

func TestScoreboardSwitchesModes(t *testing.T) {
	m := newTestScoreboard(t, "")
	if m.games[m.gameCursor].ID != config.ModeClassic {
		t.Fatalf("empty start should open the first mode, got %s", m.games[m.gameCursor].ID)
	}
	if len(m.scores) != 0 {
		t.Errorf("classic has %d scores, expected none", len(m.scores))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.games[m.gameCursor].ID != config.ModeRush || len(m.scores) != 2 {
		t.Errorf("tab should move to rush and load its scores, got %s with %d",
			m.games[m.gameCursor].ID, len(m.scores))
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(ScoreboardModel)
	if m.games[m.gameCursor].ID != config.ModeClassic {
		t.Errorf("left should move back to classic, got %s", m.games[m.gameCursor].ID)
	}
}

func TestScoreboardBack(t *testing.T) {
	m := newTestScoreboard(t, "")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ScoreboardModel)
	if !m.IsGoingBack() {
		t.Error("esc should go back to the menu")
	}
	if m.View() != "" {
		t.Error("view should be empty after leaving")
	}
}
