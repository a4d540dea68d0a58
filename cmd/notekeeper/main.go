package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/zsigidavid/notekeeper/internal/app"
	"github.com/zsigidavid/notekeeper/internal/config"
	"github.com/zsigidavid/notekeeper/internal/storage"
	"github.com/zsigidavid/notekeeper/internal/storage/inmemory"
	"github.com/zsigidavid/notekeeper/internal/storage/postgres"
	"github.com/zsigidavid/notekeeper/pkg/auth"
	"github.com/zsigidavid/notekeeper/pkg/logger/handlers/slogpretty"
	"github.com/zsigidavid/notekeeper/pkg/logger/sl"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.Load()
	log := setupLogger(cfg.Env)

	log.Info("starting notekeeper", slog.String("env", cfg.Env))
	log.Debug("debug log enabled")

	var store storage.Storage
	if cfg.StoragePath == ":memory:" {
		store = inmemory.New()
		log.Warn("using in-memory storage, data will not survive a restart")
	} else {
		pg, err := postgres.New(cfg.StoragePath)
		if err != nil {
			log.Error("failed to init storage", sl.Err(err))
			os.Exit(1)
		}
		store = pg
	}

	tokens := auth.NewTokenManager(cfg.Token.Secret, cfg.Token.TTL)
	router := app.NewRouter(log, store, tokens)

	log.Info("starting server", slog.String("address", cfg.Address))
	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Error("failed to start server", sl.Err(err))
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}
	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}
	handler := opts.NewPrettyHandler(os.Stdout)
	return slog.New(handler)
}
