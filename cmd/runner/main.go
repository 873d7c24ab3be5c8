// runner is an endless runner for the terminal: three levels of dodging and
// collecting on a looping track, with local high scores and SSH play.
//
// Usage:
//
//	runner levels            - List available levels
//	runner play <level>      - Run a level
//	runner menu              - Pick levels interactively
//	runner scores [level]    - Show high scores
//	runner serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.runner/scores.db)
//	--mute          - Disable sound
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
	"github.com/vovakirdan/tui-runner/internal/platform/audio"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagMute   bool

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "runner",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Runner - an endless runner in your terminal",
	Long: `Runner is a terminal endless-runner. Switch lanes to collect the good
things, dodge the bad ones, and see how far three lives take you.

Available commands:
  levels   - Show all levels
  play     - Run a specific level directly
  menu     - Interactive level picker
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  runner levels
  runner play run1
  runner menu --mute
  runner serve --ssh :2222
  runner scores run2`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.runner/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound")

	// Add subcommands
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. Failure is not fatal: runs still
// work and game over shows the no-connection notice.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// openAudio installs the sound collaborator for new sessions.
func openAudio() runner.Audio {
	a, err := audio.Open(flagMute)
	if err != nil {
		logger.Warn("sound disabled", "error", err)
	}
	runner.SetAudio(a)
	return a
}
