// Package main - entry point for the sheetforge HTTP server.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"sheetforge/api"
	"sheetforge/core/ai"
	"sheetforge/internal/config"
	"sheetforge/internal/logging"
)

const version = "1.0.0"

func main() {
	addr := flag.String("addr", "", "Server address (overrides config)")
	configPath := flag.String("config", "sheetforge.json", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	// Chat stays disabled when no provider credentials are present;
	// workbook generation works regardless.
	provider, err := ai.NewProvider(cfg.AI)
	if err != nil {
		logging.Warn("AI provider unavailable, chat endpoint disabled", zap.Error(err))
		provider = nil
	}

	server := api.NewServerWithProvider(version, provider)

	listenAddr := cfg.Server.Addr
	if *addr != "" {
		listenAddr = *addr
	}

	logging.Info("sheetforge server starting",
		zap.String("version", version),
		zap.String("addr", listenAddr),
		zap.Bool("chat_enabled", provider != nil))

	if err := http.ListenAndServe(listenAddr, server); err != nil {
		logging.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
}
