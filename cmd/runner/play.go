package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
	"github.com/vovakirdan/tui-runner/internal/highscore"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/registry"
)

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Run a level",
	Long: `Start the specified level.

Controls:
  Left/A, Right/D  - Switch lane (or click the left/right edge)
  P/Space          - Pause (or click II)
  B/Esc            - Back (or click the back arrow)
  R                - Retry after game over
  Q/Ctrl+C         - Quit

A custom level file replaces the built-in tuning for that level. It is
validated before the run starts; an invalid file is reported and nothing runs.

Examples:
  runner play run1
  runner play run3 --mute
  runner play run2 --config ./my-run2.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom level YAML")
}

func runPlay(_ *cobra.Command, args []string) {
	levelID := args[0]

	if !registry.Exists(levelID) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'runner levels' to see available levels.")
		os.Exit(1)
	}

	// Fail fast on a bad level file instead of falling back silently
	if _, err := config.Load(levelID, flagConfig); err != nil {
		logger.Error("invalid level configuration", "level", levelID, "error", err)
		os.Exit(1)
	}
	runner.SetConfigPath(flagConfig)

	game, err := registry.Create(levelID)
	if err != nil {
		logger.Error("cannot create level", "level", levelID, "error", err)
		os.Exit(1)
	}

	store := openStore()
	sound := openAudio()
	scores := highscore.NewLocal(store)

	_, runErr := tui.Run(game, runtimeConfig(), tui.Options{
		Scores: scores,
		Audio:  sound,
		Logger: logger,
	})

	// Let an in-flight submit reach the database before closing it
	scores.Wait()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("run failed", "error", runErr)
		os.Exit(1)
	}
}
