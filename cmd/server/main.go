package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/fast-home/internal/config"
	"github.com/MKhiriev/fast-home/internal/handler"
	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/internal/mailer"
	"github.com/MKhiriev/fast-home/internal/server"
	"github.com/MKhiriev/fast-home/internal/service"
	"github.com/MKhiriev/fast-home/internal/store"
	"github.com/MKhiriev/fast-home/internal/token"
	"github.com/MKhiriev/fast-home/internal/validators"
	"github.com/MKhiriev/fast-home/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("fast-home-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log = logger.NewLogger("fast-home-server", logger.WithLevel(cfg.App.LogLevel))

	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("mailer_mode", cfg.Mailer.Mode).
		Str("photos_dir", cfg.Storage.Photos.Dir).
		Str("photos_bucket", cfg.Storage.Photos.S3Bucket).
		Dur("action_token_ttl", cfg.App.ActionTokenTTL).
		Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	mail, err := mailer.NewMailer(cfg.Mailer, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating mailer")
	}
	defer mail.Close()

	codec, err := token.NewCodec(cfg.App.TokenSignKey, cfg.App.TokenIssuer)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating token codec")
	}

	services, err := service.NewServices(storages, mail, codec, *cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, validators.NewValidator(), *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
