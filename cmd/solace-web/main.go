package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/solacehq/solace/internal/ai"
	"github.com/solacehq/solace/internal/backup"
	"github.com/solacehq/solace/internal/config"
	"github.com/solacehq/solace/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := server.OpenStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	gateway, err := ai.NewGeminiGateway(ctx, ai.GeminiConfig{
		APIKey:        cfg.AI.APIKey,
		ChatModel:     cfg.AI.ChatModel,
		ClassifyModel: cfg.AI.ClassifyModel,
		Timeout:       cfg.AI.Timeout,
	})
	if err != nil {
		log.Fatalf("Failed to initialize AI gateway: %v", err)
	}

	// Periodic sqlite snapshots; the hosted engines rely on their
	// provider's backups.
	if cfg.Storage.StorageEngine == "sqlite" || cfg.Storage.StorageEngine == "" {
		backupSvc, err := backup.NewService(backup.Config{
			DBPath: filepath.Join(cfg.Storage.DataPath, "solace.db"),
		})
		if err != nil {
			log.Printf("Backups disabled: %v", err)
		} else {
			go backupSvc.Run(ctx)
		}
	}

	addr, _, err := server.Start(ctx, cfg, store, gateway)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
	log.Printf("Solace backend running at http://%s (storage: %s)", addr, cfg.Storage.StorageEngine)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")
	cancel()
	time.Sleep(1 * time.Second) // Give time for connections to close

	log.Println("Shutdown complete")
}
