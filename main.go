package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/SajeedAninda/Sovereign-Assets-Server/config"
	"github.com/SajeedAninda/Sovereign-Assets-Server/database"
	"github.com/SajeedAninda/Sovereign-Assets-Server/handlers"
	"github.com/SajeedAninda/Sovereign-Assets-Server/middleware"
	"github.com/SajeedAninda/Sovereign-Assets-Server/payments"
	"github.com/SajeedAninda/Sovereign-Assets-Server/routes"
	"github.com/SajeedAninda/Sovereign-Assets-Server/store"
	"github.com/SajeedAninda/Sovereign-Assets-Server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it")
	}

	config.LoadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Database connection
	client, err := database.Connect(config.MongoURI)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	stores := store.NewMongo(client, config.DatabaseName)
	gateway := payments.NewClient(config.PaymentAPIURL, config.PaymentAPIKey, logger)
	hub := websocket.NewHub(logger)

	set := &routes.Set{
		Auth:      &handlers.AuthHandler{Users: stores.Users, Logger: logger},
		Assets:    &handlers.AssetHandler{Assets: stores.Assets, Users: stores.Users, Activity: stores.Activity, Hub: hub, Logger: logger},
		Requests:  &handlers.RequestHandler{Requests: stores.Requests, Assets: stores.Assets, Users: stores.Users, Activity: stores.Activity, Hub: hub, Logger: logger},
		Custom:    &handlers.CustomRequestHandler{CustomRequests: stores.CustomRequests, Users: stores.Users, Logger: logger},
		Team:      &handlers.TeamHandler{Users: stores.Users, Activity: stores.Activity, Hub: hub, Logger: logger},
		Analytics: &handlers.AnalyticsHandler{Requests: stores.Requests, Activity: stores.Activity, Logger: logger},
		Payments:  &handlers.PaymentHandler{Gateway: gateway, Logger: logger},
		Export:    &handlers.ExportHandler{Assets: stores.Assets, Logger: logger},
		Health:    &handlers.HealthHandler{Client: client},
		Hub:       hub,
		Users:     stores.Users,
	}

	// Router setup
	router := mux.NewRouter()
	routes.RegisterRoutes(router, set)

	// Global middlewares (order matters!)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.CorsMiddleware)

	// HTTP server configuration
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Sovereign Assets server listening", zap.String("port", config.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced shutdown", zap.Error(err))
	}

	database.Disconnect(client)
	logger.Info("server stopped gracefully")
}
