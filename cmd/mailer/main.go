// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command mailer consumes mail jobs published by the server in queue mode
// and delivers them over SMTP.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/fast-home/internal/config"
	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/internal/mailer"
	"github.com/MKhiriev/fast-home/internal/workers"
)

func main() {
	log := logger.NewLogger("fast-home-mailer")
	cfg, err := config.GetMailerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log = logger.NewLogger("fast-home-mailer", logger.WithLevel(cfg.App.LogLevel))

	renderer, err := mailer.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading mail templates")
	}
	smtp := mailer.NewSMTPMailer(cfg.Mailer, renderer, log)

	consumer, err := mailer.NewConsumer(cfg.Mailer.Queue, cfg.Workers.MailConsumers, smtp, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating mail consumer")
	}
	defer consumer.Close()

	pool := make([]workers.Worker, cfg.Workers.MailConsumers)
	for i := range pool {
		pool[i] = consumer
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	log.Info().Int("consumers", len(pool)).Str("queue", cfg.Mailer.Queue.Name).Msg("mail worker started")
	if err = workers.NewWorkers(log, pool...).Run(ctx); err != nil {
		log.Error().Err(err).Msg("mail worker stopped with error")
		return
	}
	log.Info().Msg("mail worker stopped")
}
