package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bottlepop/internal/platform/tui"
	"github.com/vovakirdan/bottlepop/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode in the terminal",
	Long: `Start playing the specified mode in the terminal.

Click a bottle with the mouse to pop it.

Controls:
  Mouse click  - Pop a bottle
  +/=/Right    - Turn intensity up
  -/Left       - Turn intensity down
  P/Esc        - Pause (also when the terminal loses focus)
  R            - Restart (after game over)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, wider tap area
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, exact taps only
  fixed  - No progression, stays at config's initial level

Examples:
  bottlepop play bottles
  bottlepop play bottles --difficulty easy
  bottlepop play bottles_rush --intensity 7
  bottlepop play bottles --config ./my-bottles.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	addGameFlags(playCmd, true)
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if err := checkMode(gameID); err != nil {
		return err
	}

	logger, closer, err := newLogger(true)
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

	player := newTerminalAudio(logger)
	defer player.Close()

	if err := tui.Run(game, store, terminalConfig(), tui.WithAudio(player), tui.WithLogger(logger)); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
