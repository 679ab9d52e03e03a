package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maritime-assistant-be/internal/bootstrap"
	"maritime-assistant-be/internal/config"
	"maritime-assistant-be/internal/server"
	"maritime-assistant-be/internal/tracer"
	"maritime-assistant-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 0. Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(ctx)
	defer shutdownTracer(context.Background())

	// 1. Configuration
	cfg := config.Load()
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	// 2. Database; without a DSN the in-memory store is used
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		var err error
		gormDB, err = database.NewGormDBFromDSN(cfg.Database.Connection, cfg.App.Environment != "production")
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
	}

	// 3. Dependencies
	container := bootstrap.NewContainer(ctx, gormDB, cfg)
	defer container.Close()
	defer container.Logger.Sync()

	// 4. Background services
	if err := container.Start(ctx); err != nil {
		log.Panicf("Unable to start background services: %v", err)
	}

	// 5. Server
	srv := server.New(cfg, container)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
