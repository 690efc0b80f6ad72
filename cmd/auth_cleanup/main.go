package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"surveyhub/internal/database"
	"surveyhub/internal/repository"
)

// One-shot purge of expired refresh tokens, for deployments that prefer a
// cron job over the in-process sweeper.
func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	tokenRepo := repository.NewRefreshTokenRepository(db)
	deleted, err := tokenRepo.DeleteExpired(context.Background(), time.Now().UTC())
	if err != nil {
		log.Fatalf("cleanup refresh_tokens failed: %v", err)
	}

	log.Printf("auth cleanup completed: refresh_tokens=%d", deleted)
}
