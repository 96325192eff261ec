package main

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/coffee-outlets/config"
	"github.com/yeremiapane/coffee-outlets/database"
	"github.com/yeremiapane/coffee-outlets/events"
	"github.com/yeremiapane/coffee-outlets/kds"
	"github.com/yeremiapane/coffee-outlets/router"
	"github.com/yeremiapane/coffee-outlets/services"
	"github.com/yeremiapane/coffee-outlets/utils"
)

func main() {
	cfg := config.Load()

	utils.SetLevel(cfg.LogLevel)
	if cfg.IsProduction() {
		utils.SetJSONFormat()
	}

	if cfg.JWTSecret == "" {
		utils.InfoLogger.Warn("JWT_SECRET is not set; admin routes and the order board will reject every token")
	}
	utils.SetJWTSecret(cfg.JWTSecret)

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize DB
	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	hub := kds.NewHub()
	publishers := events.Multi{hub}

	if cfg.AMQPURL != "" {
		rabbit, err := events.DialRabbit(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			utils.ErrorLogger.Errorf("RabbitMQ unavailable, continuing without it: %v", err)
		} else {
			defer rabbit.Close()
			publishers = append(publishers, rabbit)
			utils.InfoLogger.Printf("Publishing outlet events to exchange %q", cfg.AMQPExchange)
		}
	}

	svc := services.NewOutletService(database.NewGateway(db), publishers)

	// Setup router
	r := router.SetupRouter(cfg, svc, hub)

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
