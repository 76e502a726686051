package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/yolksters/internal/auth"
	"github.com/mmynk/yolksters/internal/config"
	"github.com/mmynk/yolksters/internal/metrics"
	"github.com/mmynk/yolksters/internal/middleware"
	"github.com/mmynk/yolksters/internal/recipe"
	"github.com/mmynk/yolksters/internal/service"
	"github.com/mmynk/yolksters/internal/storage/sqlite"
	"github.com/mmynk/yolksters/pkg/api/apiconnect"
	"github.com/mmynk/yolksters/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup()
		return err
	}

	// Validate already rejected unknown levels.
	level, _ := logging.ParseLevel(cfg.Log.Level)
	logger := logging.SetupWithLevel(level)

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.Database.Path)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)
	m := metrics.New()
	fetcher := recipe.NewFetcher(
		recipe.WithTimeout(cfg.Recipe.FetchTimeout),
		recipe.WithUserAgent(cfg.Recipe.UserAgent),
		recipe.WithMaxBodyBytes(cfg.Recipe.MaxBodyBytes),
	)

	required := middleware.Stack(logger, m, middleware.RequireAuth(jwtManager))
	optional := middleware.Stack(logger, m, middleware.OptionalAuth(jwtManager))

	mux := http.NewServeMux()

	// Register Connect services
	shoppingPath, shoppingHandler := apiconnect.NewShoppingListServiceHandler(service.NewShoppingService(store, logger, m), required)
	mux.Handle(shoppingPath, shoppingHandler)

	recipePath, recipeHandler := apiconnect.NewRecipeServiceHandler(service.NewRecipeService(fetcher, logger), optional)
	mux.Handle(recipePath, recipeHandler)

	authPath, authHandler := apiconnect.NewAuthServiceHandler(service.NewAuthService(authenticator, jwtManager, store, logger), optional)
	mux.Handle(authPath, authHandler)

	mux.Handle("GET /metrics", m.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/", statusHandler(shoppingPath, recipePath, authPath))

	// Add logging and CORS middleware
	handler := loggingMiddleware(logger, corsMiddleware(cfg.Server.Origins(), mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Connect server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// statusHandler answers the root path with the service listing. Anything
// else is a 404.
func statusHandler(paths ...string) http.HandlerFunc {
	services := make([]string, len(paths))
	for i, p := range paths {
		services[i] = strings.Trim(p, "/")
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":   "ok",
			"services": services,
		})
	}
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		logger.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		logger.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access. An origin list of
// "*" allows any origin.
func corsMiddleware(origins []string, next http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case allowAll:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case allowed[origin]:
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
