//go:build mobile

// Package mobile is the ebitenmobile binding entry point.
//
// Build with:
//
//	ebitenmobile bind -target android -tags mobile -javapkg com.bottlepop -o build/bottlepop.aar ./mobile
//	ebitenmobile bind -target ios -tags mobile -o build/Bottlepop.xcframework ./mobile
package mobile

import (
	"image/color"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/vovakirdan/bottlepop/internal/config"
	"github.com/vovakirdan/bottlepop/internal/core"
	_ "github.com/vovakirdan/bottlepop/internal/games/bottles"
	"github.com/vovakirdan/bottlepop/internal/platform/gfx"
	"github.com/vovakirdan/bottlepop/internal/registry"
	"github.com/vovakirdan/bottlepop/internal/storage"
)

// Portrait playfield in cells.
const (
	cols = 36
	rows = 40
)

var (
	dataDir string
	modeID  = config.ModeClassic
)

// SetDataDir tells the game where it may keep its score database.
// Call it from the host app before the game view is shown.
func SetDataDir(dir string) {
	dataDir = dir
}

// SetMode picks the game mode ("bottles" or "bottles_rush").
func SetMode(id string) {
	if registry.Exists(id) {
		modeID = id
	}
}

// lazyGame defers setup to the first frame, once the host app has had
// a chance to call SetDataDir.
type lazyGame struct {
	once    sync.Once
	game    *gfx.Game
	initErr error
}

func (g *lazyGame) initialize() {
	g.once.Do(func() {
		logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "bottlepop"})

		game, err := registry.Create(modeID)
		if err != nil {
			logger.Error("cannot create game", "error", err)
			g.initErr = err
			return
		}

		var store *storage.Store
		if dataDir != "" {
			store, err = storage.Open(filepath.Join(dataDir, "scores.db"))
			if err != nil {
				logger.Warn("scores will not be saved", "error", err)
			}
		}

		cfg := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = cols, rows
		g.game = gfx.Prepare(game, cfg, gfx.Options{Store: store, Logger: logger, Volume: 0.6})
	})
}

func (g *lazyGame) Update() error {
	g.initialize()
	if g.initErr != nil {
		return nil
	}
	return g.game.Update()
}

func (g *lazyGame) Draw(screen *ebiten.Image) {
	g.initialize()
	if g.initErr != nil {
		screen.Fill(color.RGBA{0x80, 0, 0, 0xff})
		return
	}
	g.game.Draw(screen)
}

func (g *lazyGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return cols * gfx.CellW, rows * gfx.CellH
}

func init() {
	mobile.SetGame(&lazyGame{})
}

// Dummy is an exported function so ebitenmobile binds the package.
func Dummy() {}
