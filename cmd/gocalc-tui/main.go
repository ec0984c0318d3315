package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chess10kp/gocalc/internal/calc"
	"github.com/chess10kp/gocalc/internal/config"
	"github.com/chess10kp/gocalc/internal/tui"
)

func main() {
	configPath := config.DefaultPath
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// Logs would corrupt the terminal UI.
	log.SetOutput(io.Discard)

	cfg, err := config.LoadAndValidateConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config, using defaults: %v\n", err)
		cfg = config.Default()
	}

	cache, err := calc.NewResultCache(cfg.Evaluator.CacheSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create result cache: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(tui.New(cfg, calc.NewCachedEvaluator(cache, nil)))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
