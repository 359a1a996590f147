package main

import (
	"context"
	"log"

	"techjays-chat-be/internal/bootstrap"
	"techjays-chat-be/internal/config"
	"techjays-chat-be/internal/server"
	"techjays-chat-be/internal/tracer"
	"techjays-chat-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	// 5. Initialize & Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
