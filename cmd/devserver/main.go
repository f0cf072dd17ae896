// Command devserver runs the development backend for the AuctionHub client.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auctionhub/internal/config"
	"auctionhub/internal/devserver"
	"auctionhub/internal/observability"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := devserver.OpenDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "seed" {
		if err := devserver.Seed(db, devserver.DefaultSeedOptions()); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
		log.Println("Database seeded")
		return
	}

	logger := observability.NewLogger(nil)
	srv := devserver.NewServer(cfg, db, logger, devserver.WithMetrics("auctionhub-devserver"))
	app := srv.App()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	log.Printf("Dev server starting on port %s...", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
