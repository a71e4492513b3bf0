// Command toneserve runs the personal color diagnosis HTTP API.
package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"tonelab/internal/config"
	"tonelab/internal/diagnose"
	"tonelab/internal/logging"
	"tonelab/internal/server"
	"tonelab/internal/version"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	log.Info().
		Str("version", version.Version).
		Str("addr", cfg.HTTPAddr).
		Str("pipeline", cfg.Pipeline).
		Str("strategy", cfg.Strategy).
		Msg("Starting diagnosis API")

	engine, err := diagnose.NewEngine(cfg, logging.NewComponentLogger("diagnose"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build diagnosis engine")
	}

	srv := server.NewServer(cfg, engine, logging.NewComponentLogger("api"))
	if err := srv.Setup(); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up API server")
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutdown signal received")

	if err := srv.Stop(); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	} else {
		log.Info().Msg("Server shutdown complete")
	}
}
