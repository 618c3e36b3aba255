package main

import (
	"log"

	"github.com/alkime/jailu/internal/config"
	"github.com/alkime/jailu/internal/llm"
	"github.com/alkime/jailu/internal/logger"
	"github.com/alkime/jailu/internal/server"
	"github.com/alkime/jailu/internal/tone"
	"github.com/alkime/jailu/internal/workdir"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	logger := logger.SetupLogger(cfg)

	settings, err := cfg.LLMSettings()
	if err != nil {
		log.Fatalf("Invalid LLM configuration: %v", err)
	}

	// Log startup information
	logger.Info("Starting jailu server",
		"env", cfg.Env,
		"port", cfg.Port,
		"provider", settings.Provider,
		"configured", settings.Configured(),
	)
	if !settings.Configured() {
		logger.Warn("No API key configured; reformulation requests will fail until one is set")
	}

	dataDir, err := workdir.Prep(cfg.DataDir)
	if err != nil {
		log.Fatalf("Fatal: %v", err)
	}

	tones := tone.NewStore(dataDir, logger)
	loaded := tones.Load()
	logger.Debug("Loaded custom tones", "path", tones.Path(), "count", len(loaded))

	srv := server.New(cfg, llm.NewClient(settings, logger), tones, logger)
	defer srv.Close()

	// Start server
	if err := server.Run(srv); err != nil {
		logger.Error("Failed to start server", "error", err)
		log.Fatalf("Fatal: %v", err)
	}
}
