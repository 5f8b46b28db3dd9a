// server/cmd/api/main.go
package main

import (
	"context"
	"log"
	"time"

	"freight-shipment-api-server/config"
	"freight-shipment-api-server/internal/api/routes"
	"freight-shipment-api-server/internal/auth"
	"freight-shipment-api-server/internal/database"
	"freight-shipment-api-server/internal/risk"
	"freight-shipment-api-server/internal/s3"
	"freight-shipment-api-server/internal/shipment"
	"freight-shipment-api-server/internal/shipment/store"
	"freight-shipment-api-server/internal/socket"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load .env (ignored when absent) and configuration
	godotenv.Load()
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	auth.SetSecret(cfg.JWT.Secret)

	// 2. Connect to MongoDB
	db, err := database.Connect(cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	// 3. Make sure an admin account exists
	if err := database.SeedAdmin(db); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	// 4. S3 uploader for delivery-proof photos
	s3Uploader, err := s3.NewUploader(cfg.S3)
	if err != nil {
		log.Fatalf("Failed to create S3 uploader: %v", err)
	}

	// 5. Shipment service over the Mongo-backed store
	shipmentService := shipment.NewService(store.NewMongoStore(db))

	// 6. WebSocket hub + background risk monitor
	wsHub := socket.NewHub()

	interval, err := time.ParseDuration(cfg.Risk.CheckInterval)
	if err != nil {
		log.Printf("Invalid risk.checkInterval %q, falling back to 5m", cfg.Risk.CheckInterval)
		interval = 5 * time.Minute
	}
	monitor := risk.NewMonitor(shipmentService, wsHub, interval)
	go monitor.Run(context.Background())

	// 7. Router and server
	router := routes.SetupRouter(shipmentService, cfg, db, s3Uploader, wsHub)

	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
