package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/minhvu-dev/crm-backend/internal/auth"
	"github.com/minhvu-dev/crm-backend/internal/config"
	"github.com/minhvu-dev/crm-backend/internal/db"
	"github.com/minhvu-dev/crm-backend/internal/handlers"
	"github.com/minhvu-dev/crm-backend/internal/store"
	"github.com/minhvu-dev/crm-backend/internal/token"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	if cfg.UsingDevSecret() {
		logger.Warn("TOKEN_SECRET not set, using development default")
	}

	var userStore store.UserStore
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			logger.Error("db connect", "err", err)
			os.Exit(1)
		}
		defer dbConn.Close()
		userStore = store.NewPostgresStore(dbConn)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory store")
		userStore = store.NewMemoryStore()
	}

	codec := token.New(cfg.TokenSecret, cfg.TokenTTL)
	svc := auth.NewService(userStore, codec, logger)
	h := handlers.NewHandler(svc)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handlers.Router(h, codec, cfg.CORSAllowedOrigins),
	}

	go func() {
		logger.Info("CRM backend listening", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "err", err)
		os.Exit(1)
	}

	logger.Info("server exited")
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.Production() {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
