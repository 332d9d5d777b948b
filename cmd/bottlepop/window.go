package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bottlepop/internal/core"
	"github.com/vovakirdan/bottlepop/internal/platform/gfx"
	"github.com/vovakirdan/bottlepop/internal/registry"
)

var (
	flagCols  int
	flagRows  int
	flagScale float64
)

var windowCmd = &cobra.Command{
	Use:   "window <mode>",
	Short: "Play a mode in a desktop window",
	Long: `Open a window and play the specified mode with the mouse or a
touch screen. The game pauses when the window loses focus.

Controls:
  Click/Tap    - Pop a bottle (restart after game over)
  +/Right      - Turn intensity up
  -/Left       - Turn intensity down
  P/Esc        - Pause
  R            - Restart (after game over)
  Q            - Quit

Examples:
  bottlepop window bottles
  bottlepop window bottles_rush --scale 1.5
  bottlepop window bottles --cols 32 --rows 40`,
	Args: cobra.ExactArgs(1),
	RunE: runWindow,
}

func init() {
	addGameFlags(windowCmd, true)
	windowCmd.Flags().IntVar(&flagCols, "cols", 48, "Playfield width in cells")
	windowCmd.Flags().IntVar(&flagRows, "rows", 36, "Playfield height in cells")
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1.5, "Window size multiplier")
}

func runWindow(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if err := checkMode(gameID); err != nil {
		return err
	}
	if flagCols < 20 || flagRows < 12 {
		return fmt.Errorf("playfield %dx%d is too small, need at least 20x12", flagCols, flagRows)
	}

	logger, closer, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	applyGameFlags(flagIntensity)

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := core.RuntimeConfig{
		ScreenW:  flagCols,
		ScreenH:  flagRows,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	opts := gfx.Options{
		Store:  store,
		Mute:   flagMute,
		Volume: flagVolume,
		Logger: logger,
		Scale:  flagScale,
	}

	if err := gfx.Run(game, cfg, opts); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
