package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bottlepop/internal/audio"
	"github.com/vovakirdan/bottlepop/internal/config"
	"github.com/vovakirdan/bottlepop/internal/core"
	"github.com/vovakirdan/bottlepop/internal/registry"
	"github.com/vovakirdan/bottlepop/internal/storage"
)

// Option configures a Model.
type Option func(*Model)

// WithAudio plays game sounds through p.
func WithAudio(p audio.Player) Option {
	return func(m *Model) {
		if p != nil {
			m.audio = p
		}
	}
}

// WithLogger sends game events and errors to l.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	audio      audio.Player
	logger     *log.Logger
	keys       *KeyMapper
	clock      *core.FrameClock
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		audio:      audio.Nop{},
		logger:     log.New(io.Discard),
		keys:       NewKeyMapper(),
		clock:      core.NewFrameClock(cfg.TickRate, core.DefaultMaxCatchUp),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.resetGame()
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// resetGame starts a fresh game and shows the stored high score.
func (m *Model) resetGame() {
	m.game.Reset(m.config)
	m.clock.Reset()

	if r, ok := m.game.(registry.ConfigReporter); ok && r.ConfigError() != nil {
		m.logger.Warn("using default settings", "game", m.game.ID(), "error", r.ConfigError())
	}

	if bt, ok := m.game.(registry.BestTracker); ok && m.store != nil {
		best, err := m.store.HighScore(m.game.ID())
		if err != nil {
			m.logger.Warn("could not read high score", "error", err)
		}
		bt.SetBest(best)
	}

	m.logger.Debug("game started", "game", m.game.ID(), "seed", m.config.Seed,
		"size", fmt.Sprintf("%dx%d", m.config.ScreenW, m.config.ScreenH))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if tap, ok := m.keys.MapMouse(msg); ok {
			m.inputFrame.AddTap(tap.X, tap.Y)
		}
		return m, nil

	case tea.BlurMsg:
		return m.handleBlur()

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleBlur pauses a running game when the terminal loses focus.
func (m Model) handleBlur() (tea.Model, tea.Cmd) {
	if !m.gameState.Paused && !m.gameState.GameOver {
		m.inputFrame.Set(core.ActionPause)
		m.logger.Debug("focus lost, pausing")
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// The playfield is sized to the terminal, so a running game restarts
	if !m.gameState.GameOver {
		m.resetGame()
		m.gameState = m.game.State()
		m.scoreSaved = false
	}

	return m, nil
}

// handleTick runs as many fixed steps as the frame clock allows.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new game
		m.config.Seed = time.Now().UnixNano()
		m.resetGame()
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	if !m.inputFrame.Empty() {
		m.logger.Debug("input", "actions", len(m.inputFrame.Actions), "taps", len(m.inputFrame.Taps))
	}

	steps := m.clock.Advance(now)
	for i := 0; i < steps; i++ {
		result := m.game.Step(m.inputFrame)
		m.gameState = result.State
		m.handleEvents(result.Events)

		// Input applies to the first step only
		m.inputFrame.Clear()
	}

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// handleEvents plays sounds for game events and logs them.
func (m *Model) handleEvents(events []core.Event) {
	audio.PlayEvents(m.audio, events)
	for _, ev := range events {
		m.logger.Debug("event", "kind", ev.Kind, "x", ev.X, "y", ev.Y, "value", ev.Value)
	}
}

// saveScore records the finished game. Empty games are not stored.
func (m *Model) saveScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score, m.gameState.Intensity); err != nil {
		m.logger.Error("could not save score", "error", err)
		return
	}
	m.logger.Info("score saved", "game", m.game.ID(), "score", m.gameState.Score,
		"intensity", m.gameState.Intensity)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, config.UserDir, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state as of the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks are taps
		tea.WithReportFocus(),     // Pause when the terminal loses focus
	)

	_, err := p.Run()
	return err
}
