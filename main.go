package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/spf13/pflag"

	"github.com/dcode-github/dormdash/config"
	"github.com/dcode-github/dormdash/gateway"
	"github.com/dcode-github/dormdash/routes"
	"github.com/dcode-github/dormdash/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var addr, backend, envFile string

	flagSet := pflag.NewFlagSet("dormdash", pflag.ContinueOnError)
	flagSet.StringVar(&addr, "addr", "", "listen address (default :$PORT)")
	flagSet.StringVar(&backend, "backend", "", "backend origin (default $BACKEND_URL)")
	flagSet.StringVar(&envFile, "env-file", ".env", "environment file to load before reading config")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	config.LoadEnv(envFile)
	cfg := config.Load()
	if backend != "" {
		cfg.BackendURL = backend
	}
	if addr == "" {
		addr = ":" + cfg.Port
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := config.NewRedis(ctx, cfg)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Printf("Error closing Redis connection: %v", err)
			}
			log.Println("Redis connection closed")
		}()
	}

	gw := gateway.New(cfg.BackendURL, nil)
	registry := session.NewRegistry(tokenFactory(redisClient), cfg.SessionIdle)
	go sweepSessions(ctx, registry)

	router := mux.NewRouter()
	routes.Routes(router, gw, registry, routes.Options{BackendSearch: cfg.BackendSearch})

	corsOptions := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:           addr,
		Handler:        corsOptions.Handler(router),
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server running on %s, backend %s", addr, cfg.BackendURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Println("Server gracefully stopped")
	return nil
}

// sweepSessions drops idle sessions until ctx is done.
func sweepSessions(ctx context.Context, registry *session.Registry) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := registry.Sweep(ctx)
			if err != nil {
				log.Printf("Error sweeping sessions: %v", err)
			}
			if n > 0 {
				log.Printf("Dropped %d idle sessions", n)
			}
		}
	}
}

// tokenFactory persists tokens in redis when it is configured and in
// memory otherwise.
func tokenFactory(client *redis.Client) session.TokenFactory {
	if client == nil {
		return nil
	}
	return func(sessionID string) gateway.TokenStore {
		return gateway.NewRedisTokenStore(client, sessionID)
	}
}
