package config

import "time"

const (
	defaultTokenIssuer          = "fast-home"
	defaultSessionTokenDuration = 24 * time.Hour
	defaultActionTokenTTL       = 11 * time.Minute
	defaultRequestTimeout       = 30 * time.Second
	defaultMaxUploadBytes       = 32 << 20
	defaultPhotosDir            = "uploads"
	defaultMailerAPITimeout     = 10 * time.Second
	defaultSMTPPort             = 587
	defaultQueueName            = "mail"
	defaultMailConsumers        = 1
	defaultVersion              = "dev"
	defaultCatalogCacheTTL      = 10 * time.Minute
)

// applyDefaults fills zero fields left after all sources were merged.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.SessionTokenDuration == 0 {
		cfg.App.SessionTokenDuration = defaultSessionTokenDuration
	}
	if cfg.App.ActionTokenTTL == 0 {
		cfg.App.ActionTokenTTL = defaultActionTokenTTL
	}
	if cfg.App.Version == "" {
		cfg.App.Version = defaultVersion
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.Storage.Photos.S3Bucket == "" && cfg.Storage.Photos.Dir == "" {
		cfg.Storage.Photos.Dir = defaultPhotosDir
	}
	if cfg.Storage.Cache.RedisURL != "" && cfg.Storage.Cache.CatalogTTL == 0 {
		cfg.Storage.Cache.CatalogTTL = defaultCatalogCacheTTL
	}
	if cfg.Mailer.Mode == "" {
		cfg.Mailer.Mode = MailerModeSMTP
	}
	if cfg.Mailer.SMTP.Port == 0 {
		cfg.Mailer.SMTP.Port = defaultSMTPPort
	}
	if cfg.Mailer.Queue.Name == "" {
		cfg.Mailer.Queue.Name = defaultQueueName
	}
	if cfg.Mailer.API.Timeout == 0 {
		cfg.Mailer.API.Timeout = defaultMailerAPITimeout
	}
	if cfg.Workers.MailConsumers == 0 {
		cfg.Workers.MailConsumers = defaultMailConsumers
	}
}
