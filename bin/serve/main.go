package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"bus-route/pkg/config"
	"bus-route/pkg/content"
	"bus-route/pkg/server"
)

func main() {
	// Load configuration
	cfg, err := config.Load("busroute.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	source, err := content.NewSource(cfg.ServeContent)
	if err != nil {
		logger.Fatal("Invalid content location", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start server
	srv := server.New(cfg.PublicDir, source, logger)
	cfg.PrintServerStartMessage()
	if err := srv.Run(ctx, cfg.ServerAddress()); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
