package bottles

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/bottlepop/internal/config"
	"github.com/vovakirdan/bottlepop/internal/core"
)

// testConfig returns a config with progression off and the dial at zero,
// so fall speed equals base_speed.
func testConfig() config.BottlesConfig {
	cfg := config.DefaultBottlesConfig()
	cfg.Difficulty.Enabled = false
	cfg.Difficulty.InitialLevel = 0
	cfg.Intensity.Initial = 0
	cfg.Physics.BaseSpeed = 6 // 0.1 cells per tick at 60 ticks/s
	return cfg
}

func newTestGame(cfg config.BottlesConfig) *Game {
	g := New(ModeClassic)
	g.runtime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}
	g.applyConfig(cfg)
	return g
}

// holdSpawns keeps the spawner quiet for the rest of the test.
func holdSpawns(g *Game) {
	g.spawner.RetryIn(math.Inf(1))
}

func placeBottle(g *Game, x int, y float64) *Bottle {
	b := g.pool.Acquire()
	b.X, b.Y = x, y
	b.W, b.H = g.cfg.Bottle.Width, g.cfg.Bottle.Height
	b.Color = core.ColorBrightBlue
	g.active = append(g.active, b)
	return b
}

func tapAt(x, y int) core.InputFrame {
	in := core.NewInputFrame()
	in.AddTap(x, y)
	return in
}

func hasEvent(events []core.Event, kind core.EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func TestBottlesFall(t *testing.T) {
	g := newTestGame(testConfig())
	holdSpawns(g)
	b := placeBottle(g, 10, 2)

	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}

	if math.Abs(b.Y-3.0) > 1e-9 {
		t.Errorf("after 10 ticks at 6 cells/s, Y = %f, expected 3.0", b.Y)
	}
}

func TestFirstTickSpawns(t *testing.T) {
	g := newTestGame(testConfig())

	res := g.Step(core.NewInputFrame())
	if !hasEvent(res.Events, core.EventSpawn) {
		t.Fatal("expected a spawn on the first tick")
	}
	if len(g.active) != 1 {
		t.Fatalf("active bottles = %d, expected 1", len(g.active))
	}
	b := g.active[0]
	if b.Y != -float64(b.H) {
		t.Errorf("new bottle Y = %f, expected just above the field", b.Y)
	}
	if b.X < 0 || b.X+b.W > 80 {
		t.Errorf("new bottle column %d out of field", b.X)
	}
}

func TestTapPopsBottle(t *testing.T) {
	g := newTestGame(testConfig())
	holdSpawns(g)
	b := placeBottle(g, 10, 5) // covers x 10..12, y 5..8

	res := g.Step(tapAt(11, 6))

	if res.State.Score != 1 {
		t.Errorf("score = %d, expected 1", res.State.Score)
	}
	if b.State != StateBursting {
		t.Errorf("bottle state = %v, expected bursting", b.State)
	}
	if !hasEvent(res.Events, core.EventPop) {
		t.Error("expected a pop event")
	}
}

func TestTapSlop(t *testing.T) {
	tests := []struct {
		name   string
		slopX  int
		tapX   int
		popped bool
	}{
		{"inside", 0, 12, true},
		{"one right, no slop", 0, 13, false},
		{"one right, slop 1", 1, 13, true},
		{"two right, slop 1", 1, 14, false},
		{"one left, slop 1", 1, 9, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Tap.SlopX = tc.slopX
			g := newTestGame(cfg)
			holdSpawns(g)
			placeBottle(g, 10, 5)

			res := g.Step(tapAt(tc.tapX, 6))
			if got := res.State.Score == 1; got != tc.popped {
				t.Errorf("popped = %v, expected %v", got, tc.popped)
			}
			if !tc.popped && !hasEvent(res.Events, core.EventMissTap) {
				t.Error("a tap on nothing should report a miss")
			}
		})
	}
}

func TestTapPicksLowestBottle(t *testing.T) {
	cfg := testConfig()
	cfg.Tap.SlopY = 3
	g := newTestGame(cfg)
	holdSpawns(g)
	upper := placeBottle(g, 10, 2)
	lower := placeBottle(g, 10, 8)

	g.Step(tapAt(11, 6))

	if lower.State != StateBursting {
		t.Error("the bottle closest to the floor should pop")
	}
	if upper.State != StateFalling {
		t.Error("one tap should pop only one bottle")
	}
}

func TestBurstingBottleIgnoresTaps(t *testing.T) {
	g := newTestGame(testConfig())
	holdSpawns(g)
	placeBottle(g, 10, 5)

	g.Step(tapAt(11, 6))
	res := g.Step(tapAt(11, 6))

	if res.State.Score != 1 {
		t.Errorf("score = %d, a bursting bottle must not score twice", res.State.Score)
	}
}

func TestBurstRecyclesBottle(t *testing.T) {
	g := newTestGame(testConfig())
	holdSpawns(g)
	placeBottle(g, 10, 5)
	freeBefore := g.pool.Free()

	g.Step(tapAt(11, 6))
	ticks := 1
	for len(g.active) > 0 && ticks < 100 {
		g.Step(core.NewInputFrame())
		ticks++
	}

	if ticks != g.cfg.Burst.Ticks {
		t.Errorf("burst lasted %d ticks, expected %d", ticks, g.cfg.Burst.Ticks)
	}
	if g.pool.Free() != freeBefore+1 {
		t.Errorf("pool free = %d, expected %d after burst", g.pool.Free(), freeBefore+1)
	}
}

func TestTapsOutsideFieldIgnored(t *testing.T) {
	g := newTestGame(testConfig())
	holdSpawns(g)

	for _, tap := range []core.Tap{{X: -1, Y: 5}, {X: 80, Y: 5}, {X: 5, Y: -1}, {X: 5, Y: 23}} {
		res := g.Step(tapAt(tap.X, tap.Y))
		if len(res.Events) != 0 {
			t.Errorf("tap %+v produced events %+v", tap, res.Events)
		}
	}
}

func TestBottleReachingFloorEndsGame(t *testing.T) {
	g := newTestGame(testConfig())
	holdSpawns(g)
	b := placeBottle(g, 10, 19.95) // bottom edge at row 23 after one tick

	res := g.Step(core.NewInputFrame())

	if !res.State.GameOver {
		t.Fatal("expected game over when a bottle passes the floor")
	}
	if !hasEvent(res.Events, core.EventGameOver) {
		t.Error("expected a game over event")
	}
	if g.missed != b {
		t.Error("missed bottle not recorded")
	}

	// Terminal state: further steps change nothing
	y := b.Y
	res = g.Step(tapAt(11, 20))
	if b.Y != y || res.State.Score != 0 || len(res.Events) != 0 {
		t.Error("game over state should be frozen")
	}
}

func TestBottleOnFloorLineIsNotAMiss(t *testing.T) {
	g := newTestGame(testConfig())
	holdSpawns(g)
	placeBottle(g, 10, 18.5) // bottom at row 22, floor at 23

	res := g.Step(core.NewInputFrame())
	if res.State.GameOver {
		t.Error("a bottle resting above the floor should not end the game")
	}
}

func TestBurstingBottleCannotEndGame(t *testing.T) {
	g := newTestGame(testConfig())
	holdSpawns(g)
	b := placeBottle(g, 10, 19.95)
	b.State = StateBursting
	b.BurstLeft = 50

	res := g.Step(core.NewInputFrame())
	if res.State.GameOver {
		t.Error("bursting bottles must not end the game")
	}
}

func TestIntensityDial(t *testing.T) {
	g := newTestGame(testConfig())
	holdSpawns(g)

	up := core.NewInputFrame()
	up.Set(core.ActionIntensityUp)
	for i := 0; i < 5; i++ {
		g.Step(up)
	}
	if g.intensity != 5 {
		t.Fatalf("intensity = %d, expected 5", g.intensity)
	}
	want := 6 * (1 + 0.15*5)
	if math.Abs(g.speed-want) > 1e-9 {
		t.Errorf("speed at dial 5 = %f, expected %f", g.speed, want)
	}

	for i := 0; i < 20; i++ {
		g.Step(up)
	}
	if g.intensity != g.cfg.Intensity.Steps {
		t.Errorf("intensity = %d, expected clamp at %d", g.intensity, g.cfg.Intensity.Steps)
	}

	down := core.NewInputFrame()
	down.Set(core.ActionIntensityDown)
	for i := 0; i < 20; i++ {
		g.Step(down)
	}
	if g.intensity != 0 {
		t.Errorf("intensity = %d, expected clamp at 0", g.intensity)
	}

	res := g.Step(down)
	if hasEvent(res.Events, core.EventIntensity) {
		t.Error("a dial that did not move should not emit an event")
	}
}

func TestIntensityRaisesSpawnRate(t *testing.T) {
	g := newTestGame(testConfig())
	g.Step(core.NewInputFrame())
	slow := g.interval

	g.intensity = g.cfg.Intensity.Steps
	g.Step(core.NewInputFrame())
	if g.interval >= slow {
		t.Errorf("interval at full dial = %f, expected less than %f", g.interval, slow)
	}
	if g.interval < g.cfg.Spawn.MinInterval {
		t.Errorf("interval %f below min_interval", g.interval)
	}
}

func TestSpeedCappedAtMax(t *testing.T) {
	cfg := testConfig()
	cfg.Physics.MaxSpeed = 7
	g := newTestGame(cfg)
	g.intensity = cfg.Intensity.Steps
	g.Step(core.NewInputFrame())

	if g.speed != 7 {
		t.Errorf("speed = %f, expected cap of 7", g.speed)
	}
}

func TestPauseFreezesGame(t *testing.T) {
	g := newTestGame(testConfig())
	holdSpawns(g)
	b := placeBottle(g, 10, 2)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	res := g.Step(pause)
	if !res.State.Paused {
		t.Fatal("expected paused")
	}

	y := b.Y
	g.Step(tapAt(11, 3))
	if b.Y != y || b.State != StateFalling {
		t.Error("paused game should not move bottles or accept taps")
	}

	res = g.Step(pause)
	if res.State.Paused {
		t.Error("second pause should resume")
	}
}

func TestMaxActiveRespected(t *testing.T) {
	cfg := testConfig()
	cfg.Spawn.MaxActive = 3
	cfg.Spawn.BaseInterval = 0.05
	cfg.Spawn.MinInterval = 0.05
	cfg.Physics.BaseSpeed = 1
	cfg.Physics.MaxSpeed = 1
	g := newTestGame(cfg)

	for i := 0; i < 300; i++ {
		g.Step(core.NewInputFrame())
		if n := g.liveFalling(); n > 3 {
			t.Fatalf("live bottles = %d at tick %d, expected at most 3", n, i)
		}
	}
}

func TestSteadyStateDoesNotAllocate(t *testing.T) {
	cfg := testConfig()
	cfg.Spawn.MaxActive = 4
	cfg.Spawn.BaseInterval = 0.5
	cfg.Spawn.MinInterval = 0.5
	cfg.Bottle.PoolSize = 8
	cfg.Burst.Ticks = 5
	cfg.Physics.BaseSpeed = 4
	g := newTestGame(cfg)

	for i := 0; i < 1200; i++ {
		in := core.NewInputFrame()
		if i%10 == 0 {
			if b := lowestVisible(g); b != nil {
				cx, cy := b.Bounds().Center()
				in.AddTap(cx, cy)
			}
		}
		g.Step(in)
	}

	if g.gameOver {
		t.Fatal("autoplayer should keep up with this spawn rate")
	}
	if g.score == 0 {
		t.Error("autoplayer should have scored")
	}
	if g.pool.Allocated() != 8 {
		t.Errorf("pool allocated %d bottles, expected the preallocated 8", g.pool.Allocated())
	}
}

func lowestVisible(g *Game) *Bottle {
	var low *Bottle
	for _, b := range g.active {
		if b.State != StateFalling {
			continue
		}
		if _, cy := b.Bounds().Center(); cy < 0 {
			continue
		}
		if low == nil || b.Y > low.Y {
			low = b
		}
	}
	return low
}

func TestGameDeterminism(t *testing.T) {
	run := func() (core.GameState, []float64) {
		cfg := testConfig()
		cfg.Spawn.BaseInterval = 0.3
		g := newTestGame(cfg)
		for i := 0; i < 400; i++ {
			in := core.NewInputFrame()
			if i%7 == 0 {
				in.AddTap((i*13)%80, (i*5)%23)
			}
			g.Step(in)
		}
		var ys []float64
		for _, b := range g.active {
			ys = append(ys, float64(b.X)*1000+b.Y)
		}
		return g.State(), ys
	}

	s1, ys1 := run()
	s2, ys2 := run()

	if s1 != s2 {
		t.Errorf("Determinism failed: states differ. Run1=%+v, Run2=%+v", s1, s2)
	}
	if len(ys1) != len(ys2) {
		t.Fatalf("Determinism failed: %d vs %d live bottles", len(ys1), len(ys2))
	}
	for i := range ys1 {
		if ys1[i] != ys2[i] {
			t.Fatalf("Determinism failed: bottle %d differs", i)
		}
	}
}

func TestResetClearsState(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	SetStartIntensity(3)
	defer SetStartIntensity(-1)

	g := New(ModeClassic)
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 9}
	g.Reset(cfg)
	if g.ConfigError() != nil {
		t.Fatalf("unexpected config error: %v", g.ConfigError())
	}
	if g.intensity != 3 {
		t.Errorf("intensity = %d, expected start override 3", g.intensity)
	}

	for i := 0; i < 120; i++ {
		g.Step(tapAt(40, 10))
	}
	g.SetBest(99)
	g.Reset(cfg)

	if g.score != 0 || g.gameOver || g.paused || g.tickCount != 0 {
		t.Errorf("Reset left state behind: score=%d over=%v paused=%v ticks=%d",
			g.score, g.gameOver, g.paused, g.tickCount)
	}
	if len(g.active) != 0 {
		t.Errorf("Reset left %d bottles on the field", len(g.active))
	}
	if g.best != 99 {
		t.Errorf("best = %d, Reset should keep the best score", g.best)
	}
}

func TestRenderShowsBottlesAndHUD(t *testing.T) {
	g := newTestGame(testConfig())
	holdSpawns(g)
	placeBottle(g, 10, 5)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if c := screen.GetCell(11, 5); c.Rune != CapChar || c.Color != core.ColorBrightBlue {
		t.Errorf("bottle cap cell = %+v", c)
	}
	if screen.Get(10, 6) != BodyChar || screen.Get(12, 8) != BaseChar {
		t.Error("bottle body/base not drawn")
	}
	if screen.Get(0, 23) != FloorChar {
		t.Error("floor line not drawn")
	}
	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(0), "Intensity") {
		t.Errorf("HUD should show the intensity dial, row = %q", screen.Row(0))
	}
}

func TestRenderGameOverOverlay(t *testing.T) {
	g := newTestGame(testConfig())
	holdSpawns(g)
	placeBottle(g, 10, 19.95)
	g.Step(core.NewInputFrame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over overlay missing")
	}
	if screen.GetCell(0, 23).Color != core.ColorRed {
		t.Error("floor should turn red on game over")
	}
}

func TestRenderBurstFades(t *testing.T) {
	g := newTestGame(testConfig())
	holdSpawns(g)
	b := placeBottle(g, 10, 5)
	g.Step(tapAt(11, 6))

	screen := core.NewScreen(80, 24)
	cx, cy := b.Bounds().Center()

	g.Render(screen)
	if screen.GetCell(cx, cy).Color != core.ColorBrightBlue {
		t.Error("fresh burst should use the bottle color")
	}

	b.BurstLeft = 1
	g.Render(screen)
	if screen.GetCell(cx, cy).Color != core.ColorDarkGray {
		t.Error("ending burst should fade to dark gray")
	}
}

func TestTimeProgressionIgnoresTickRate(t *testing.T) {
	tests := []struct {
		tickRate int
	}{
		{60},
		{30},
		{120},
	}

	for _, tc := range tests {
		g := New(ModeRush)
		g.runtime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: tc.tickRate, Seed: 7}
		g.applyConfig(config.DefaultRushConfig())
		holdSpawns(g)

		// 30 seconds of play
		for i := 0; i < tc.tickRate*30; i++ {
			g.Step(core.NewInputFrame())
		}

		// 0.2 initial, a quarter of the way to max at 120 s
		if got := g.State().Level; math.Abs(got-0.4) > 1e-6 {
			t.Errorf("at %d ticks/s, level after 30s = %.4f, expected 0.4", tc.tickRate, got)
		}
	}
}
