package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "livegate/internal/adapters/http"
	"livegate/internal/adapters/roomsvc"
	"livegate/internal/app"
	"livegate/internal/app/grant"
	"livegate/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	encoder, err := grant.NewEncoder(cfg.LiveKitAPIKey, cfg.LiveKitSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("signing key misconfigured")
	}

	registry := app.NewRegistry(encoder.TTL())
	prom := prometheus.NewRegistry()
	prom.MustRegister(collectors.NewGoCollector())
	metrics := app.NewMetrics(prom, registry)

	issuer := app.NewIssuer(registry, encoder, metrics)
	directory := app.NewDirectory(roomsvc.New(cfg.LiveKitURL, cfg.LiveKitAPIKey, cfg.LiveKitSecret))

	r := router.SetupRouter(cfg, issuer, directory, prom)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("livegate broker started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
