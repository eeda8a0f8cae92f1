package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/adapters/openai"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/adapters/postgres"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/adapters/rest"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/adapters/spotify"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/adapters/sqlite"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/config"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/ports"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/resonance"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/services"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/worker"
)

func main() {
	// 1. Configuration. Crash early if required config is missing.
	cfg := config.Load()
	if cfg.SpotifyClientID == "" || cfg.SpotifyClientSecret == "" {
		log.Fatal("FATAL: SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET environment variables are required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable is required")
	}

	// 2. Initialize "driven" adapters.
	var repo ports.Repository
	var repoCloser func() error

	switch cfg.StorageDriver {
	case "sqlite":
		dbAdapter, err := sqlite.NewAdapter(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize database: %v", err)
		}
		repo = dbAdapter
		repoCloser = dbAdapter.Close
	case "postgres":
		if cfg.PostgresURL == "" {
			log.Fatal("FATAL: DATABASE_URL is required with STORAGE_DRIVER=postgres")
		}
		dbAdapter, err := postgres.NewAdapter(cfg.PostgresURL)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize database: %v", err)
		}
		repo = dbAdapter
		repoCloser = dbAdapter.Close
	default:
		log.Fatalf("Unknown storage driver: %s", cfg.StorageDriver)
	}
	defer repoCloser()

	catalog := spotify.NewClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret)

	var narrator ports.NarrativeGenerator
	if cfg.OpenAIAPIKey != "" {
		narrator = openai.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey)
	} else {
		log.Println("WARN: OPENAI_API_KEY not set, playlist descriptions use the template fallback")
	}

	// 3. Initialize core logic and the background analysis pool.
	scorer := resonance.NewScorer()
	svc := services.NewOrchestrator(catalog, repo, narrator, scorer)

	pool := worker.NewPool(repo, worker.NewPreviewAnalyzer(), scorer, cfg.QueueSize)
	pool.Start(cfg.Workers)
	defer pool.Stop()

	// 4. Initialize the "driving" adapter.
	handler := rest.NewHandler(svc, pool, []byte(cfg.JWTSecret))

	// 5. Start the server.
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Println("------------------------------------------------")
	log.Printf("🪐 Sonifyr API is running on http://localhost%s", addr)
	log.Println("------------------------------------------------")

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
