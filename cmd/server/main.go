package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hc2580411/vwms/internal/config"
	"github.com/hc2580411/vwms/internal/infra"
	"github.com/hc2580411/vwms/internal/router"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Env == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	db, err := infra.NewDatabase(cfg.StoreDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}

	blobs, err := infra.NewFilesystemBlobStore(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open blob store")
	}
	snapshots := infra.NewSnapshotStore(db, blobs)

	// Boot sequence: restore the snapshot when one exists, otherwise create
	// and seed a fresh store. Either way EnsureSchema runs, so additive
	// migrations apply to restored data from older releases of the same
	// schema version.
	restored, err := snapshots.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load snapshot")
	}
	if err := infra.EnsureSchema(db); err != nil {
		log.Fatal().Err(err).Msg("failed to prepare schema")
	}
	if err := snapshots.Save(); err != nil {
		log.Fatal().Err(err).Msg("failed to write initial snapshot")
	}
	log.Info().Bool("restored", restored).Str("key", infra.SnapshotKey()).Msg("store ready")

	rates := infra.NewRateClient(cfg.RateAPIBaseURL)

	r := router.New(cfg, db, snapshots, rates)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("vwms listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}

	// Final snapshot flush. A reset in this session leaves the handle closed,
	// which is fine — the whole point of reset is to not persist.
	if err := snapshots.Save(); err != nil && err != infra.ErrStoreClosed {
		log.Error().Err(err).Msg("final snapshot flush failed")
	}
	log.Info().Msg("server exited")
}
