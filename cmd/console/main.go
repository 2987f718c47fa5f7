package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/pokedex-engine/internal/config"
	"github.com/jwebster45206/pokedex-engine/internal/engine"
	"github.com/jwebster45206/pokedex-engine/internal/journal"
	"github.com/jwebster45206/pokedex-engine/internal/logger"
	"github.com/jwebster45206/pokedex-engine/internal/seed"
)

// logFile receives the console's logs so they stay off the terminal UI.
const logFile = "pokedex-console.log"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	log := logger.SetupWriter(cfg, f)

	data, err := seed.Load(cfg.SeedFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read seed data: %v\n", err)
		os.Exit(1)
	}
	var validator seed.Validator
	if err := validator.Validate(data); err != nil {
		fmt.Fprintf(os.Stderr, "Seed data is invalid: %v\n", err)
		os.Exit(1)
	}
	for _, w := range validator.Warnings() {
		log.Warn("Seed data warning", "warning", w)
	}

	j := journal.NewMemoryJournal(cfg.JournalLimit)
	eng, err := engine.Load(data, cfg.EvolutionRule, j, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build catalogs: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(NewConsoleUI(context.Background(), NewMenu(eng)),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Info("Console exited")
}
