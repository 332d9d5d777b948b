// Package gfx is the Ebitengine front end: a window on desktop and the
// game view on mobile. The simulation is the same core.Screen based game
// the terminal runs; each cell is drawn as a CellW x CellH tile and mouse
// clicks or touches become taps on the cell under them.
package gfx

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/bottlepop/internal/audio"
	"github.com/vovakirdan/bottlepop/internal/core"
	"github.com/vovakirdan/bottlepop/internal/registry"
	"github.com/vovakirdan/bottlepop/internal/storage"
)

// Options configures a window session.
type Options struct {
	Store  *storage.Store
	Audio  audio.Player // nil creates an Ebitengine sound bank
	Mute   bool
	Volume float64 // 0 to 1; 0 is silent
	Logger *log.Logger
	Title  string
	Scale  float64 // Window size multiplier over the logical resolution
}

// Game adapts a registry.Game to ebiten.Game.
type Game struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	audio      audio.Player
	logger     *log.Logger
	glyphs     *glyphCache
	config     core.RuntimeConfig
	input      core.InputFrame
	state      core.GameState
	focused    bool
	scoreSaved bool
}

// NewGame wraps game for Ebitengine and starts it. It does not touch
// the window or audio device.
func NewGame(game registry.Game, cfg core.RuntimeConfig, opts Options) *Game {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	g := &Game{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:   opts.Store,
		audio:   opts.Audio,
		logger:  opts.Logger,
		glyphs:  newGlyphCache(),
		config:  cfg,
		input:   core.NewInputFrame(),
		focused: true,
	}
	if g.audio == nil {
		g.audio = audio.Nop{}
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	g.reset()
	return g
}

func (g *Game) reset() {
	g.game.Reset(g.config)
	g.state = g.game.State()
	g.scoreSaved = false

	if bt, ok := g.game.(registry.BestTracker); ok && g.store != nil {
		if best, err := g.store.HighScore(g.game.ID()); err == nil {
			bt.SetBest(best)
		}
	}
	g.logger.Debug("game started", "game", g.game.ID(), "seed", g.config.Seed)
}

// Update reads input and advances the game by one tick.
// Ebitengine calls it at a fixed TPS, which is the frame pacing.
func (g *Game) Update() error {
	if g.readInput() {
		return ebiten.Termination
	}
	g.setFocused(ebiten.IsFocused())
	g.step()
	return nil
}

// readInput collects keys, clicks and touches into the input frame.
// Returns true when the player asked to quit.
func (g *Game) readInput() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return true
	}

	keys := []struct {
		key    ebiten.Key
		action core.Action
	}{
		{ebiten.KeyP, core.ActionPause},
		{ebiten.KeyEscape, core.ActionPause},
		{ebiten.KeyR, core.ActionRestart},
		{ebiten.KeyEqual, core.ActionIntensityUp},
		{ebiten.KeyNumpadAdd, core.ActionIntensityUp},
		{ebiten.KeyArrowRight, core.ActionIntensityUp},
		{ebiten.KeyMinus, core.ActionIntensityDown},
		{ebiten.KeyNumpadSubtract, core.ActionIntensityDown},
		{ebiten.KeyArrowLeft, core.ActionIntensityDown},
	}
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k.key) {
			g.input.Set(k.action)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.tapAt(ebiten.CursorPosition())
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		g.tapAt(ebiten.TouchPosition(id))
	}
	return false
}

// tapAt records a tap at logical pixel (px, py). After game over any tap
// restarts, since touch devices have no R key.
func (g *Game) tapAt(px, py int) {
	if g.state.GameOver {
		g.input.Set(core.ActionRestart)
		return
	}
	cx, cy := CellAt(px, py)
	g.input.AddTap(cx, cy)
}

// setFocused pauses the game when the window or app loses focus.
func (g *Game) setFocused(focused bool) {
	if g.focused && !focused && !g.state.Paused && !g.state.GameOver {
		g.input.Set(core.ActionPause)
		g.logger.Debug("focus lost, pausing")
	}
	g.focused = focused
}

// step runs one simulation tick and reacts to its events.
func (g *Game) step() {
	defer g.input.Clear()

	if g.state.GameOver && g.input.Has(core.ActionRestart) {
		g.config.Seed = time.Now().UnixNano()
		g.reset()
		return
	}

	if !g.input.Empty() {
		g.logger.Debug("input", "actions", len(g.input.Actions), "taps", len(g.input.Taps))
	}

	result := g.game.Step(g.input)
	g.state = result.State
	audio.PlayEvents(g.audio, result.Events)
	for _, ev := range result.Events {
		g.logger.Debug("event", "kind", ev.Kind, "x", ev.X, "y", ev.Y, "value", ev.Value)
	}

	if g.state.GameOver && !g.scoreSaved {
		g.scoreSaved = true
		if g.store != nil && g.state.Score > 0 {
			if _, err := g.store.SaveScore(g.game.ID(), g.state.Score, g.state.Intensity); err != nil {
				g.logger.Error("could not save score", "error", err)
			}
		}
	}
}

// Draw paints the game's cell buffer as tiles.
func (g *Game) Draw(dst *ebiten.Image) {
	dst.Fill(Background)
	g.game.Render(g.screen)

	for y := 0; y < g.screen.Height(); y++ {
		for x := 0; x < g.screen.Width(); x++ {
			c := g.screen.GetCell(x, y)
			g.glyphs.drawCell(dst, x, y, c.Rune, RGBA(c.Color))
		}
	}
}

// Layout fixes the logical resolution to the playfield; Ebitengine
// scales it to the window or device screen.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.ScreenW * CellW, g.config.ScreenH * CellH
}

// State returns the game state after the last tick.
func (g *Game) State() core.GameState {
	return g.state
}

// CellAt converts a logical pixel position to cell coordinates.
func CellAt(px, py int) (int, int) {
	return floorDiv(px, CellW), floorDiv(py, CellH)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

var audioCtx *eaudio.Context

// AudioContext returns the process-wide Ebitengine audio context.
func AudioContext() *eaudio.Context {
	if audioCtx == nil {
		audioCtx = eaudio.NewContext(audio.SampleRate)
	}
	return audioCtx
}

// Prepare builds a Game ready for ebiten.RunGame or mobile.SetGame,
// creating the sound bank unless muted.
func Prepare(game registry.Game, cfg core.RuntimeConfig, opts Options) *Game {
	if opts.Audio == nil {
		if vol, ok := opts.soundVolume(); ok {
			opts.Audio = NewSoundBank(AudioContext(), vol)
		}
	}
	return NewGame(game, cfg, opts)
}

// soundVolume returns the playback volume, or false when sound is off.
func (o Options) soundVolume() (float64, bool) {
	if o.Mute || o.Volume <= 0 {
		return 0, false
	}
	return min(o.Volume, 1), true
}

// Run opens a window and plays until it is closed or Q is pressed.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	g := Prepare(game, cfg, opts)

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	title := opts.Title
	if title == "" {
		title = game.Title()
	}

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(int(float64(cfg.ScreenW*CellW)*scale), int(float64(cfg.ScreenH*CellH)*scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TickRate)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
