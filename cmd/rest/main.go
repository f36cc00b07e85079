package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ramabhadrarao/face-recognition/internal/bootstrap"
	"github.com/ramabhadrarao/face-recognition/internal/config"
	"github.com/ramabhadrarao/face-recognition/internal/server"
	"github.com/ramabhadrarao/face-recognition/internal/tracer"
	"github.com/ramabhadrarao/face-recognition/pkg/database"
)

func main() {
	// 0. Initialize tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load configuration
	cfg := config.Load()

	// 2. Initialize database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap dependencies
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start background services
	go func() {
		log.Println("Background: Starting capture event forwarding...")
		if err := container.StreamService.Start(context.Background()); err != nil {
			log.Printf("Background stream error: %v", err)
		}
	}()

	// 5. Release the camera deterministically on shutdown.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down, releasing capture session...")
		container.CaptureCore.Close()
		os.Exit(0)
	}()

	// 6. Run server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
