package main

import (
	"log"

	"github.com/cinegraph/cinegraph-api/internal/config"
	"github.com/cinegraph/cinegraph-api/internal/server"
)

func main() {
	log.Println("Starting CineGraph API...")

	// Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}
