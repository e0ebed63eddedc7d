package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/zaribae/spendwise-expense-tracker-app/internal/api/handlers"
	"github.com/zaribae/spendwise-expense-tracker-app/internal/api/middleware"
	"github.com/zaribae/spendwise-expense-tracker-app/internal/config"
	"github.com/zaribae/spendwise-expense-tracker-app/internal/logger"
	"github.com/zaribae/spendwise-expense-tracker-app/internal/pipeline"
	"github.com/zaribae/spendwise-expense-tracker-app/internal/store"
)

func main() {
	log := logger.New()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	// Store and inference clients are created once per process and reused
	// across requests.
	db, err := store.OpenBadger(cfg.BadgerPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.BadgerPath).Msg("Failed to open store")
	}
	defer db.Close()
	badgerStore := store.NewBadgerStore(db)

	model, err := pipeline.NewGeminiClient(ctx, cfg.GeminiModel)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create model client")
	}

	extractor := pipeline.NewExtractor(model, badgerStore, log)

	// Initialize handlers
	transactionsHandler := handlers.NewTransactionsHandler(badgerStore, log)
	extractionHandler := handlers.NewExtractionHandler(extractor, log)
	statsHandler := handlers.NewStatsHandler(badgerStore, log)
	assetsHandler := handlers.NewAssetsHandler(badgerStore, log)

	// Create router
	mux := newRouter(transactionsHandler, extractionHandler, statsHandler, assetsHandler)

	// Health check endpoint, outside the auth boundary.
	health := http.NewServeMux()
	health.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	health.Handle("/api/", middleware.Auth(cfg.JWTSecret)(mux))

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.RequestID(log)(
			middleware.Logger(
				middleware.CORS(health),
			),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// newRouter wires the API routes. Unknown paths under /api/ get a JSON
// not-found body rather than the mux's plain-text default.
func newRouter(
	transactionsHandler *handlers.TransactionsHandler,
	extractionHandler *handlers.ExtractionHandler,
	statsHandler *handlers.StatsHandler,
	assetsHandler *handlers.AssetsHandler,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusNotFound, "Not Found")
	})

	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			transactionsHandler.List(w, r)
		case http.MethodPost:
			transactionsHandler.Create(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions/", func(w http.ResponseWriter, r *http.Request) {
		transactionID := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
		if transactionID == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Transaction ID is required")
			return
		}
		switch r.Method {
		case http.MethodPut:
			transactionsHandler.Update(w, r, transactionID)
		case http.MethodDelete:
			transactionsHandler.Delete(w, r, transactionID)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/process-text", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			extractionHandler.ProcessText(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/stats", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			statsHandler.Get(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/assets", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			assetsHandler.List(w, r)
		case http.MethodPost:
			assetsHandler.Create(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	return mux
}
