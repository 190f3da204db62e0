package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"product-chatbot-be/internal/bootstrap"
	"product-chatbot-be/internal/config"
	"product-chatbot-be/internal/pkg/logger"
	"product-chatbot-be/internal/server"
	"product-chatbot-be/internal/tracer"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Unable to load configuration: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer appLogger.Sync()

	// 2. Tracing (off unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(cfg.Tracing, appLogger)
	defer shutdownTracer(context.Background())

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(cfg, appLogger)
	if err != nil {
		appLogger.Error("MAIN", "Startup failed", map[string]interface{}{"error": err.Error()})
		_ = appLogger.Sync()
		os.Exit(1)
	}

	// 4. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			appLogger.Error("MAIN", "Shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// 5. Run Server
	if err := srv.Run(); err != nil {
		appLogger.Error("MAIN", "Server stopped", map[string]interface{}{"error": err.Error()})
	}
}
