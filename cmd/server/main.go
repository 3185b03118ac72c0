package main

import (
	"context"
	"log"

	"workhub/internal/app/server"
	"workhub/internal/platform/config"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()
	app, err := server.New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
