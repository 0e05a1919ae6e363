package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"livegate/internal/client"
	"livegate/internal/client/events"
	"livegate/internal/config"
	"livegate/internal/domain"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	identity := cfg.Identity
	if identity == "" {
		identity = "guest-" + uuid.NewString()[:8]
	}
	role := domain.Role(cfg.Role)

	sink := events.NewSink(log.Logger)

	boot := client.NewBootstrap(
		&client.DeviceAudio{Sink: sink},
		&client.HTTPFetcher{
			BrokerURL: cfg.BrokerURL,
			Room:      domain.RoomName(cfg.Room),
			Identity:  domain.Identity(identity),
			Publisher: role.CanPublish(),
		},
		sink,
	)
	boot.Retries = cfg.FetchRetries
	boot.Delay = cfg.FetchRetryDelay

	result, err := boot.Run(ctx)
	if err != nil {
		for _, ev := range sink.Recent(10) {
			log.Error().Str("level", string(ev.Level)).Msg(ev.Message)
		}
		log.Fatal().Err(err).Msg("bootstrap failed")
	}
	defer result.Close()

	resolver := client.NewResolver(role, sink)
	conn, err := client.Connect(cfg.LiveKitURL, result.Token, resolver, sink)
	if err != nil {
		log.Fatal().Err(err).Msg("transport connect failed")
	}
	defer conn.Disconnect()

	log.Info().Str("room", cfg.Room).Str("identity", identity).Str("role", string(role)).Msg("connected")

	<-ctx.Done()
	log.Info().Msg("client exiting")
}
