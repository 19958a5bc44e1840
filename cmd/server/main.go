package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/light-bringer/storefront-catalog-service/internal/services"
	transport "github.com/light-bringer/storefront-catalog-service/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run() error {
	// 1. Load configuration (.env is optional)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	config := loadConfig()

	log.Printf("Starting Storefront Catalog Service...")
	log.Printf("Store API: %s", config.StoreAPIURL)
	log.Printf("HTTP Port: %s", config.HTTPPort)

	// 2. Initialize service dependencies
	serviceOpts, err := services.NewServiceOptions(services.Config{
		StoreAPIURL:     config.StoreAPIURL,
		PublishableKey:  config.PublishableKey,
		SalesChannelID:  config.SalesChannelID,
		ProviderTimeout: config.ProviderTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}

	// 3. Build router and HTTP server
	router := transport.NewRouter(serviceOpts.ProductsHandler)
	httpServer := &http.Server{
		Addr:    ":" + config.HTTPPort,
		Handler: router,
	}

	// 4. Start HTTP server in background
	go func() {
		log.Printf("HTTP server listening on :%s", config.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// 5. Graceful shutdown handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	return nil
}

// Config holds application configuration.
type Config struct {
	HTTPPort        string
	StoreAPIURL     string
	PublishableKey  string
	SalesChannelID  string
	ProviderTimeout time.Duration
}

// loadConfig loads configuration from environment variables with defaults.
func loadConfig() Config {
	httpPort := os.Getenv("HTTP_PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	storeAPIURL := os.Getenv("STORE_API_URL")
	if storeAPIURL == "" {
		// Default for local development against a local platform instance
		storeAPIURL = "http://localhost:9000"
	}

	timeout := 15 * time.Second
	if raw := os.Getenv("PROVIDER_TIMEOUT_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	return Config{
		HTTPPort:        httpPort,
		StoreAPIURL:     storeAPIURL,
		PublishableKey:  os.Getenv("STORE_PUBLISHABLE_KEY"),
		SalesChannelID:  os.Getenv("SALES_CHANNEL_ID"),
		ProviderTimeout: timeout,
	}
}
