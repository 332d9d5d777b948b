// bottlepop is a tap-the-falling-bottles arcade game for the terminal,
// a desktop window and mobile.
//
// Usage:
//
//	bottlepop list              - List game modes
//	bottlepop play <mode>       - Play a mode in the terminal
//	bottlepop menu              - Pick modes and intensity interactively
//	bottlepop window <mode>     - Play a mode in a desktop window
//	bottlepop scores <mode>     - Show high scores for a mode
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.bottlepop/scores.db)
//	--mute              - Disable sound
//	--log-file <path>   - Write logs to a file while the game runs
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bottlepop/internal/audio"
	"github.com/vovakirdan/bottlepop/internal/audio/otoplayer"
	"github.com/vovakirdan/bottlepop/internal/core"
	"github.com/vovakirdan/bottlepop/internal/games/bottles"
	"github.com/vovakirdan/bottlepop/internal/registry"
	"github.com/vovakirdan/bottlepop/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagMute     bool
	flagVolume   float64
	flagLogFile  string
	flagLogLevel string

	// Game flags shared by play, menu and window
	flagConfig     string
	flagDifficulty string
	flagIntensity  int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bottlepop",
	Short: "Bottle Pop - tap the bottles before they hit the floor",
	Long: `Bottle Pop is an arcade game: colored bottles fall from the top of
the screen, faster and more often as you turn up the intensity dial.
Click (or tap) a bottle to pop it. Let one reach the floor and it's over.

Available commands:
  list     - Show all game modes
  play     - Play a mode in the terminal
  menu     - Interactive mode and intensity picker
  window   - Play a mode in a desktop window
  scores   - View high scores

Examples:
  bottlepop list
  bottlepop play bottles
  bottlepop play bottles_rush --intensity 6
  bottlepop menu
  bottlepop window bottles
  bottlepop scores bottles`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound")
	rootCmd.PersistentFlags().Float64Var(&flagVolume, "volume", 0.6, "Sound volume from 0 (silent) to 1")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while a game runs")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(scoresCmd)
}

// addGameFlags registers the per-game flags on cmd.
func addGameFlags(cmd *cobra.Command, withIntensity bool) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	if withIntensity {
		cmd.Flags().IntVar(&flagIntensity, "intensity", -1, "Starting intensity dial position (-1 = config default)")
	}
}

// applyGameFlags hands the game flags to the game package before a game
// is created.
func applyGameFlags(intensity int) {
	bottles.SetConfigPath(flagConfig)
	bottles.SetDifficultyPreset(flagDifficulty)
	bottles.SetStartIntensity(intensity)
}

// newLogger builds the logger. While a full-screen UI owns the terminal,
// logs go to --log-file or nowhere; otherwise they go to stderr.
func newLogger(fullscreen bool) (*log.Logger, io.Closer, error) {
	var out io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)

	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closer = f, f
	case fullscreen:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "bottlepop",
	})

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)

	return logger, closer, nil
}

// openStore opens the score database. A failure is logged and the game
// runs without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// newTerminalAudio opens the sound device unless muted. Without a device
// the game runs silently.
func newTerminalAudio(logger *log.Logger) audio.Player {
	if flagMute || flagVolume <= 0 {
		return audio.Nop{}
	}
	p, err := otoplayer.New(flagVolume)
	if err != nil {
		logger.Warn("sound disabled", "error", err)
		return audio.Nop{}
	}
	return p
}

// terminalConfig builds the runtime config from the terminal size.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// checkMode returns an error naming the list command for unknown modes.
func checkMode(id string) error {
	if !registry.Exists(id) {
		return fmt.Errorf("unknown mode %q, run 'bottlepop list' to see available modes", id)
	}
	return nil
}
