// Package bottles implements Bottle Pop: colored bottles fall from the top
// of the playfield, tapping one pops it for a point, and letting one reach
// the floor ends the game. A player-controlled intensity dial raises fall
// speed and spawn rate.
package bottles

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/bottlepop/internal/config"
	"github.com/vovakirdan/bottlepop/internal/core"
	"github.com/vovakirdan/bottlepop/internal/registry"
)

// Mode describes one registered variant of the game.
type Mode struct {
	ID          string
	Title       string
	Description string
}

var (
	// ModeClassic ramps difficulty with the score.
	ModeClassic = Mode{
		ID:          config.ModeClassic,
		Title:       "Bottle Pop",
		Description: "Pop the bottles before they hit the floor",
	}
	// ModeRush ramps difficulty with time and starts hot.
	ModeRush = Mode{
		ID:          config.ModeRush,
		Title:       "Bottle Pop: Rush",
		Description: "Faster bottles, difficulty climbs every second",
	}
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var startIntensity = -1

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
// Unknown values fall back to the config file's settings.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetStartIntensity overrides the dial position a new game starts at.
// A negative value keeps the config's intensity.initial.
func SetStartIntensity(level int) {
	startIntensity = level
}

// Game implements the Bottle Pop game logic.
type Game struct {
	mode       Mode
	runtime    core.RuntimeConfig
	cfg        config.BottlesConfig
	loadErr    error
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	pool       *Pool
	spawner    *Spawner
	active     []*Bottle
	events     []core.Event

	score     int
	best      int
	intensity int     // Dial position, 0..cfg.Intensity.Steps
	level     float64 // Difficulty level from progression
	speed     float64 // Current fall speed, cells per second
	interval  float64 // Current spawn interval, seconds
	gameOver  bool
	paused    bool
	tickCount int
	missed    *Bottle // Bottle that reached the floor
}

// New creates a game for the given mode.
func New(mode Mode) *Game {
	return &Game{mode: mode}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.mode.ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.mode.Title
}

// Description returns a one-line summary of the mode.
func (g *Game) Description() string {
	return g.mode.Description
}

// ConfigError returns the error from the last config load, if any.
// The game falls back to the mode defaults when loading fails.
func (g *Game) ConfigError() error {
	return g.loadErr
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadBottles(g.mode.ID, configPath)
	g.loadErr = err
	if err != nil {
		cfg = config.DefaultFor(g.mode.ID)
	}
	config.ApplyBottlesPreset(&cfg, difficultyPreset)
	if startIntensity >= 0 {
		cfg.Intensity.Initial = core.Clamp(startIntensity, 0, cfg.Intensity.Steps)
	}
	g.applyConfig(cfg)
}

// applyConfig resets all state for cfg. Split from Reset so tests can
// run against an in-memory config.
func (g *Game) applyConfig(cfg config.BottlesConfig) {
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(g.runtime.Seed))

	if g.pool == nil {
		g.pool = NewPool(cfg.Bottle.PoolSize)
	}
	for _, b := range g.active {
		g.pool.Release(b)
	}
	clear(g.active)
	g.active = g.active[:0]
	g.pool.Grow(cfg.Bottle.PoolSize)
	g.pool.ResetIDs()

	if g.spawner == nil {
		g.spawner = NewSpawner(g.rng)
	}
	g.spawner.Reset(g.rng)

	g.events = g.events[:0]
	g.score = 0
	g.intensity = cfg.Intensity.Initial
	g.gameOver = false
	g.paused = false
	g.tickCount = 0
	g.missed = nil
	g.updateRates()
}

// SetBest sets the high score shown in the HUD.
func (g *Game) SetBest(best int) {
	if best > g.best {
		g.best = best
	}
}

// floorY returns the row of the floor line. A falling bottle whose
// bottom edge passes it ends the game.
func (g *Game) floorY() int {
	return g.runtime.ScreenH - 1
}

// Step advances the game by one tick.
// The returned events are only valid until the next call to Step.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = g.events[:0]

	if g.gameOver {
		return g.result()
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	g.tickCount++

	if in.Has(core.ActionIntensityUp) {
		g.turnDial(1)
	}
	if in.Has(core.ActionIntensityDown) {
		g.turnDial(-1)
	}

	for _, tap := range in.Taps {
		g.handleTap(tap)
	}

	g.updateRates()
	g.advance()

	if !g.gameOver {
		g.spawn()
	}

	return g.result()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

func (g *Game) emit(ev core.Event) {
	g.events = append(g.events, ev)
}

// turnDial moves the intensity dial by delta, staying within 0..steps.
func (g *Game) turnDial(delta int) {
	next := core.Clamp(g.intensity+delta, 0, g.cfg.Intensity.Steps)
	if next == g.intensity {
		return
	}
	g.intensity = next
	g.emit(core.Event{Kind: core.EventIntensity, Value: next})
}

// updateRates recomputes fall speed and spawn interval from the
// difficulty level and the dial.
func (g *Game) updateRates() {
	g.level = g.difficulty.Level(g.score, g.elapsed())
	dial := float64(g.intensity)

	speed := g.difficulty.Speed(g.cfg.Physics.BaseSpeed, g.level)
	speed *= 1 + g.cfg.Intensity.SpeedGain*dial
	g.speed = core.ClampF(speed, 0, g.cfg.Physics.MaxSpeed)

	interval := g.difficulty.Interval(g.cfg.Spawn.BaseInterval, g.level)
	interval /= 1 + g.cfg.Intensity.SpawnGain*dial
	g.interval = math.Max(interval, g.cfg.Spawn.MinInterval)
}

// handleTap bursts the bottle under a tap, if any.
func (g *Game) handleTap(tap core.Tap) {
	if tap.X < 0 || tap.X >= g.runtime.ScreenW || tap.Y < 0 || tap.Y >= g.floorY() {
		return
	}

	b := g.hitTest(tap)
	if b == nil {
		g.emit(core.Event{Kind: core.EventMissTap, X: tap.X, Y: tap.Y})
		return
	}

	b.State = StateBursting
	b.BurstLeft = g.cfg.Burst.Ticks
	g.score++
	if g.score > g.best {
		g.best = g.score
	}

	cx, cy := b.Bounds().Center()
	g.emit(core.Event{Kind: core.EventPop, X: cx, Y: cy, Color: b.Color, Value: g.score})
}

// hitTest returns the falling bottle a tap lands on. The tap covers its
// cell inflated by the configured slop. When several bottles are in
// reach, the lowest one (closest to the floor) wins, then the oldest.
func (g *Game) hitTest(tap core.Tap) *Bottle {
	probe := core.NewRect(tap.X, tap.Y, 1, 1).Inflate(g.cfg.Tap.SlopX, g.cfg.Tap.SlopY)

	var hit *Bottle
	for _, b := range g.active {
		if b.State != StateFalling || !probe.Intersects(b.Bounds()) {
			continue
		}
		if hit == nil || b.Y > hit.Y || (b.Y == hit.Y && b.ID < hit.ID) {
			hit = b
		}
	}
	return hit
}

// advance moves falling bottles, ages bursts and recycles finished ones.
func (g *Game) advance() {
	dy := g.speed * g.runtime.TickSeconds()
	floor := g.floorY()

	kept := g.active[:0]
	for _, b := range g.active {
		switch b.State {
		case StateBursting:
			b.BurstLeft--
			if b.BurstLeft <= 0 {
				g.pool.Release(b)
				continue
			}
		case StateFalling:
			b.Y += dy
			if g.missed == nil && b.Bounds().Bottom() > floor {
				g.missed = b
			}
		}
		kept = append(kept, b)
	}
	clear(g.active[len(kept):])
	g.active = kept

	if g.missed != nil {
		g.gameOver = true
		r := g.missed.Bounds()
		g.emit(core.Event{Kind: core.EventGameOver, X: r.X, Y: r.Bottom() - 1, Color: g.missed.Color, Value: g.score})
	}
}

// spawn adds a bottle when one is due and there is room for it.
func (g *Game) spawn() {
	if g.liveFalling() >= g.cfg.Spawn.MaxActive {
		return
	}
	if !g.spawner.Due(g.runtime.TickSeconds(), g.interval) {
		return
	}

	w, h := g.cfg.Bottle.Width, g.cfg.Bottle.Height
	x, ok := g.spawner.PickColumn(g.runtime.ScreenW, w, h, g.cfg.Spawn.Attempts, g.active)
	if !ok {
		// Try again soon rather than waiting a whole interval
		g.spawner.RetryIn(g.interval / 4)
		return
	}

	b := g.pool.Acquire()
	b.X = x
	b.Y = -float64(h)
	b.W = w
	b.H = h
	b.Color = g.spawner.PickColor()
	g.active = append(g.active, b)

	g.emit(core.Event{Kind: core.EventSpawn, X: x, Y: 0, Color: b.Color})
}

// elapsed returns the seconds of play so far, not counting pauses.
func (g *Game) elapsed() float64 {
	return float64(g.tickCount) * g.runtime.TickSeconds()
}

func (g *Game) liveFalling() int {
	n := 0
	for _, b := range g.active {
		if b.State == StateFalling {
			n++
		}
	}
	return n
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.score,
		GameOver:  g.gameOver,
		Paused:    g.paused,
		Intensity: g.intensity,
		Level:     g.level,
	}
}

// Register both modes with the registry
func init() {
	for _, m := range []Mode{ModeClassic, ModeRush} {
		mode := m
		registry.Register(mode.ID, func() registry.Game {
			return New(mode)
		})
	}
}
