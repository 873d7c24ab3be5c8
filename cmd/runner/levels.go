package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/registry"
)

var levelsCmd = &cobra.Command{
	Use:     "levels",
	Aliases: []string{"list"},
	Short:   "List all levels",
	Long:    `Shows every built-in level with its loop length and speed mode.`,
	Run:     runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	levels := registry.List()

	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	fmt.Printf("  %-6s  %-10s  %-7s  %s\n", "ID", "Title", "Speed", "Loop")
	fmt.Printf("  %-6s  %-10s  %-7s  %s\n", "--", "-----", "-----", "----")

	for _, l := range levels {
		mode, loop := "?", "?"
		if cfg, err := config.Default(l.ID); err == nil {
			mode = cfg.Speed.Mode
			loop = fmt.Sprintf("%.0f-%.0f", cfg.Loop.Start, cfg.Loop.Start+cfg.Loop.Span)
		}
		fmt.Printf("  %-6s  %-10s  %-7s  %s\n", l.ID, l.Title, mode, loop)
	}

	fmt.Println()
	fmt.Println("Run 'runner play <id>' to start a level.")
}
