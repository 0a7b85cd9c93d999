package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/eyecantell/linkbox/capture"
)

// models maps config "app" names to the showcase models this binary can
// script. Capture sessions run outside a terminal, driving Update/View
// directly.
var models = map[string]func() (tea.Model, error){
	"showcase": newShowcase,
}

func main() {
	configPath := flag.String("config", "capture.toml", "capture session config")
	flag.Parse()

	cfg, err := capture.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	build, ok := models[cfg.App]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown app %q (have: showcase)\n", cfg.App)
		os.Exit(1)
	}
	model, err := build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building %s: %v\n", cfg.App, err)
		os.Exit(1)
	}

	if err := capture.NewDriver(cfg, model).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running capture: %v\n", err)
		os.Exit(1)
	}
}
