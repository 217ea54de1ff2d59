package main

import (
	"log"

	"github.com/joho/godotenv"

	"csvalign/adapters/llm"
	"csvalign/app"
	"csvalign/internal"
	"csvalign/internal/config"
	"csvalign/ui"
)

func main() {
	// .env is optional; deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	catalog, err := llm.LoadCatalog()
	if err != nil {
		log.Fatalf("Failed to load provider catalog: %v", err)
	}

	registry := llm.NewRegistry(cfg.AI.Timeout)
	service := app.NewCompareService(registry, cfg.AI, logger)

	server, err := ui.NewServer(service, catalog, cfg.Server, logger)
	if err != nil {
		log.Fatalf("Failed to initialize web server: %v", err)
	}

	logger.Info("[Main] starting csvalign on port %s", cfg.Server.Port)
	if err := server.Start(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
