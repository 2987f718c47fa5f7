package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/pokedex-engine/internal/config"
	"github.com/jwebster45206/pokedex-engine/internal/engine"
	"github.com/jwebster45206/pokedex-engine/internal/handlers"
	"github.com/jwebster45206/pokedex-engine/internal/journal"
	"github.com/jwebster45206/pokedex-engine/internal/logger"
	"github.com/jwebster45206/pokedex-engine/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Pokédex API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"evolution_rule", cfg.EvolutionRule.String(),
		"journal", journalKind(cfg))

	var j journal.Journal
	if cfg.RedisURL != "" {
		connectCtx, connectCancel := context.WithTimeout(context.Background(), 2*time.Minute)
		rj, err := journal.DialRedisJournal(connectCtx, cfg.RedisURL, cfg.JournalLimit, log, 10, 2*time.Second)
		connectCancel()
		if err != nil {
			log.Error("Failed to connect to journal", "error", err)
			os.Exit(1)
		}
		log.Info("Journal connection established successfully")
		j = rj
	} else {
		j = journal.NewMemoryJournal(cfg.JournalLimit)
	}

	data, err := seed.Load(cfg.SeedFile)
	if err != nil {
		log.Error("Failed to read seed data", "error", err, "file", cfg.SeedFile)
		os.Exit(1)
	}
	var validator seed.Validator
	if err := validator.Validate(data); err != nil {
		log.Error("Seed data is invalid", "error", err)
		os.Exit(1)
	}
	for _, w := range validator.Warnings() {
		log.Warn("Seed data warning", "warning", w)
	}

	eng, err := engine.Load(data, cfg.EvolutionRule, j, log)
	if err != nil {
		log.Error("Failed to build catalogs", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handlers.NewRouter(eng, j, log),
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: the journal stream stays open.
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := j.Close(); err != nil {
		log.Error("Error closing journal connection", "error", err)
	}

	log.Info("Server exited")
}

func journalKind(cfg *config.Config) string {
	if cfg.RedisURL != "" {
		return "redis"
	}
	return "memory"
}
