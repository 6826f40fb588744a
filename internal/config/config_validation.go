// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the merged [StructuredConfig] has everything the
// HTTP server needs before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return ErrEmptyTokenSignKey
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrEmptyDSN
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrEmptyHTTPAddress
	}

	if cfg.App.ActionTokenTTL < 0 || cfg.App.SessionTokenDuration < 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.Photos.S3Bucket != "" && cfg.Storage.Photos.PublicURL == "" {
		return fmt.Errorf("%w: public url is required for bucket storage", ErrInvalidStorageConfigs)
	}

	return cfg.validateMailer()
}

// validateMailWorker checks the settings used by the queue consumer: it
// reads from RabbitMQ and delivers through SMTP regardless of Mode.
func (cfg *StructuredConfig) validateMailWorker() error {
	if cfg.Mailer.Queue.URL == "" || cfg.Mailer.Queue.Name == "" {
		return fmt.Errorf("%w: queue url and name are required", ErrInvalidMailerConfigs)
	}
	if cfg.Mailer.SMTP.Host == "" {
		return fmt.Errorf("%w: smtp host is required", ErrInvalidMailerConfigs)
	}
	if cfg.Workers.MailConsumers < 1 {
		return ErrInvalidWorkerConfigs
	}
	return nil
}

func (cfg *StructuredConfig) validateMailer() error {
	switch cfg.Mailer.Mode {
	case MailerModeSMTP:
		if cfg.Mailer.SMTP.Host == "" {
			return fmt.Errorf("%w: smtp host is required", ErrInvalidMailerConfigs)
		}
	case MailerModeQueue:
		if cfg.Mailer.Queue.URL == "" || cfg.Mailer.Queue.Name == "" {
			return fmt.Errorf("%w: queue url and name are required", ErrInvalidMailerConfigs)
		}
	case MailerModeAPI:
		if cfg.Mailer.API.URL == "" {
			return fmt.Errorf("%w: api url is required", ErrInvalidMailerConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidMailerConfigs, cfg.Mailer.Mode)
	}
	return nil
}
