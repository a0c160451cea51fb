package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evernight/auth"
	"github.com/evernight/auth/internal/config"
	"github.com/evernight/auth/internal/logger"
	"github.com/evernight/auth/internal/server"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log := logger.Logger.With().
		Str("service", "authd").
		Str("env", cfg.AppEnv).
		Logger()

	if !cfg.EnvFileLoaded {
		log.Debug().Msg(".env file not found, using process environment")
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := auth.NewStore(auth.Config{
		CookieName:     cfg.CookieName,
		CardTTL:        cfg.CardTTL,
		InsecureCookie: cfg.InsecureCookie,
	}).WithLogger(log)
	go store.RunJanitor(rootCtx, cfg.JanitorEvery)

	httpHandler := server.NewRouter(server.RouterDeps{
		Handler:      server.NewHandler(store),
		SubmitLimit:  cfg.SubmitRateLimit,
		SubmitWindow: cfg.SubmitRateWindow,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Port).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-rootCtx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("http server crashed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
	log.Info().Msg("shutdown complete")
}
