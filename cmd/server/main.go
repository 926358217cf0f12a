package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/sitenexus/sitenexus/internal/server"
	"github.com/sitenexus/sitenexus/internal/server/config"
)

func main() {

	if os.Getenv("APP_ENV") != "production" {
		// Missing .env is fine, env vars may come from the environment.
		_ = godotenv.Load()
	}

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
