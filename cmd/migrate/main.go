package main

import (
	"context"
	"os"
	"time"

	"loja-api/config"
	"loja-api/internal/database"
	"loja-api/internal/logger"
	"loja-api/internal/migrate"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	isDev := os.Getenv("APP_ENV") != "production"
	logger.Init(isDev)
	defer logger.Sync()
	log := logger.L()

	cfg := config.Load(log)

	db := database.Connect(&cfg.DB, log)
	defer database.Close(db, log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := migrate.Run(ctx, db, log); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
}
