// Package main implements the chess API server with user authentication
// and optional SQLite persistence.
package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chesskit/cmd/chess-server/cli"
	"chesskit/internal/config"
	"chesskit/internal/service"
	"chesskit/internal/storage"
	"chesskit/internal/transport/http"
)

const gracefulShutdownTimeout = time.Second * 5

func main() {
	// Check for CLI database commands
	if len(os.Args) > 1 && os.Args[1] == "db" {
		if err := cli.Run(os.Args[2:]); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		os.Exit(0)
	}

	var (
		configPath  = flag.String("config", "", "Path to YAML config file (optional)")
		apiHost     = flag.String("api-host", "", "API server host (overrides config)")
		apiPort     = flag.Int("api-port", 0, "API server port (overrides config)")
		dev         = flag.Bool("dev", false, "Development mode (relaxed rate limits, WAL)")
		storagePath = flag.String("storage-path", "", "Path to SQLite database file (disables persistence if empty)")
		pidPath     = flag.String("pid", "", "Optional path to write PID file")
		pidLock     = flag.Bool("pid-lock", false, "Lock PID file to allow only one instance (requires -pid)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags override file values
	if *apiHost != "" {
		cfg.API.Host = *apiHost
	}
	if *apiPort != 0 {
		cfg.API.Port = *apiPort
	}
	if *dev {
		cfg.Dev = true
	}
	if *storagePath != "" {
		cfg.Storage.Path = *storagePath
	}
	if *pidPath != "" {
		cfg.PID.Path = *pidPath
	}
	if *pidLock {
		cfg.PID.Lock = true
	}

	if cfg.PID.Lock && cfg.PID.Path == "" {
		log.Fatal("Error: PID locking requires a PID file path")
	}

	// Manage PID file if requested
	if cfg.PID.Path != "" {
		cleanup, err := managePIDFile(cfg.PID.Path, cfg.PID.Lock)
		if err != nil {
			log.Fatalf("Failed to manage PID file: %v", err)
		}
		defer cleanup()
		log.Printf("PID file created at: %s (lock: %v)", cfg.PID.Path, cfg.PID.Lock)
	}

	// Initialize storage (optional)
	var store *storage.Store
	if cfg.Storage.Path != "" {
		log.Printf("Initializing persistent storage at: %s", cfg.Storage.Path)
		store, err = storage.NewStore(cfg.Storage.Path, cfg.Dev)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		if err := store.InitDB(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
	} else {
		log.Printf("Persistent storage disabled (use -storage-path to enable)")
	}

	// Token secret management
	var jwtSecret []byte
	if cfg.Dev {
		// Fixed secret in dev mode for testing consistency
		jwtSecret = []byte("dev-secret-minimum-32-characters-long")
		log.Printf("Using fixed token secret (dev mode)")
	} else {
		jwtSecret = make([]byte, 32)
		if _, err := rand.Read(jwtSecret); err != nil {
			log.Fatalf("Failed to generate token secret: %v", err)
		}
		log.Printf("Token secret generated (sessions valid until restart)")
	}

	// Initialize the service with optional storage and auth
	svc := service.New(store, jwtSecret)

	// Start cleanup job for expired sessions
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	go svc.RunCleanupJob(cleanupCtx, service.CleanupJobInterval)

	app := http.NewFiberApp(svc, cfg.Dev)

	apiAddr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)

	go func() {
		log.Printf("Chess API server starting...")
		log.Printf("API listening on: http://%s", apiAddr)
		if cfg.Dev {
			log.Printf("Rate limit: 20 requests/second per IP (DEV MODE)")
		} else {
			log.Printf("Rate limit: 10 requests/second per IP")
		}
		if cfg.Storage.Path != "" {
			log.Printf("Storage: enabled (%s)", cfg.Storage.Path)
		} else {
			log.Printf("Storage: disabled (auth features unavailable)")
		}
		log.Printf("Game endpoints: http://%s/api/v1/games", apiAddr)
		log.Printf("Auth endpoints: http://%s/api/v1/auth/[register|login|me]", apiAddr)
		log.Printf("Health: http://%s/health", apiAddr)

		if err := app.Listen(apiAddr); err != nil {
			log.Printf("API server listen error: %v", err)
		}
	}()

	// Wait for an interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer shutdownCancel()

	if err = app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	cleanupCancel() // Stop cleanup job

	// Service shutdown closes the wait registry and storage
	if err = svc.Shutdown(gracefulShutdownTimeout); err != nil {
		log.Printf("Service shutdown error: %v", err)
	}

	log.Println("Server exited")
}
