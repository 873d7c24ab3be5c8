package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/highscore"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick levels from an interactive menu",
	Long: `Start the runner in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a level, Tab for scores.
Going back from a run (B/Esc) returns to the menu.

Examples:
  runner menu
  runner menu --fps 30
  runner menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	scores := highscore.NewLocal(store)
	sound := openAudio()
	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			logger.Error("menu failed", "error", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(scores, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				logger.Error("scoreboard failed", "error", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		if menuResult.LevelID == "" {
			break
		}

		game, err := registry.Create(menuResult.LevelID)
		if err != nil {
			logger.Error("cannot create level", "level", menuResult.LevelID, "error", err)
			continue
		}

		// Fresh seed for each run unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		goBack, err := tui.Run(game, cfg, tui.Options{Scores: scores, Audio: sound, Logger: logger})
		if err != nil {
			logger.Error("run failed", "error", err)
			continue
		}
		if !goBack {
			break
		}
	}

	scores.Wait()
	if store != nil {
		store.Close()
	}
}
