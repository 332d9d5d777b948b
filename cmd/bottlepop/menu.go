package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bottlepop/internal/platform/tui"
	"github.com/vovakirdan/bottlepop/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode and starting intensity interactively",
	Long: `Start Bottle Pop in interactive menu mode.

Use arrow keys or j/k to pick a mode, left/right to set the starting
intensity and Enter to play. After a game you return to the menu.

Controls:
  Up/Down/j/k     - Pick mode
  Left/Right/h/l  - Starting intensity
  Enter/Space     - Play
  Tab             - High scores
  Q               - Quit

Examples:
  bottlepop menu
  bottlepop menu --fps 30
  bottlepop menu --db ./scores.db`,
	RunE: runMenu,
}

func init() {
	addGameFlags(menuCmd, false)
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closer, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	player := newTerminalAudio(logger)
	defer player.Close()

	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg, flagConfig)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, "")
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		applyGameFlags(menuResult.Intensity)

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			return fmt.Errorf("cannot create game: %w", err)
		}

		if err := tui.Run(game, store, cfg, tui.WithAudio(player), tui.WithLogger(logger)); err != nil {
			return fmt.Errorf("error running game: %w", err)
		}
	}
}
