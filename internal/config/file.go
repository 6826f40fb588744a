package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// fileConfig mirrors [StructuredConfig] for config files. It carries only
// json/yaml tags so that cleanenv does not pick up environment variables
// while reading it; env handling stays with caarlos0/env.
type fileConfig struct {
	App struct {
		TokenSignKey         string   `json:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer          string   `json:"token_issuer" yaml:"token_issuer"`
		SessionTokenDuration Duration `json:"session_token_duration" yaml:"session_token_duration"`
		ActionTokenTTL       Duration `json:"action_token_ttl" yaml:"action_token_ttl"`
		PublicBaseURL        string   `json:"public_base_url" yaml:"public_base_url"`
		Version              string   `json:"version" yaml:"version"`
		LogLevel             string   `json:"log_level" yaml:"log_level"`
	} `json:"app" yaml:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db" yaml:"db"`
		Photos struct {
			Dir         string `json:"dir" yaml:"dir"`
			PublicURL   string `json:"public_url" yaml:"public_url"`
			S3Bucket    string `json:"s3_bucket" yaml:"s3_bucket"`
			S3Region    string `json:"s3_region" yaml:"s3_region"`
			S3Endpoint  string `json:"s3_endpoint" yaml:"s3_endpoint"`
			S3AccessKey string `json:"s3_access_key" yaml:"s3_access_key"`
			S3SecretKey string `json:"s3_secret_key" yaml:"s3_secret_key"`
		} `json:"photos" yaml:"photos"`
		Cache struct {
			RedisURL   string   `json:"redis_url" yaml:"redis_url"`
			CatalogTTL Duration `json:"catalog_ttl" yaml:"catalog_ttl"`
		} `json:"cache" yaml:"cache"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
		MaxUploadBytes int64    `json:"max_upload_bytes" yaml:"max_upload_bytes"`
	} `json:"server" yaml:"server"`

	Mailer struct {
		Mode string `json:"mode" yaml:"mode"`
		From string `json:"from" yaml:"from"`
		SMTP struct {
			Host     string `json:"host" yaml:"host"`
			Port     int    `json:"port" yaml:"port"`
			Username string `json:"username" yaml:"username"`
			Password string `json:"password" yaml:"password"`
		} `json:"smtp" yaml:"smtp"`
		Queue struct {
			URL  string `json:"url" yaml:"url"`
			Name string `json:"name" yaml:"name"`
		} `json:"queue" yaml:"queue"`
		API struct {
			URL     string   `json:"url" yaml:"url"`
			Key     string   `json:"key" yaml:"key"`
			Timeout Duration `json:"timeout" yaml:"timeout"`
		} `json:"api" yaml:"api"`
	} `json:"mailer" yaml:"mailer"`

	Workers struct {
		MailConsumers int `json:"mail_consumers" yaml:"mail_consumers"`
	} `json:"workers" yaml:"workers"`
}

// parseFile reads a JSON or YAML config file; the format is picked by
// cleanenv from the file extension.
func parseFile(path string) (*StructuredConfig, error) {
	var fc fileConfig
	if err := cleanenv.ReadConfig(path, &fc); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:         fc.App.TokenSignKey,
			TokenIssuer:          fc.App.TokenIssuer,
			SessionTokenDuration: time.Duration(fc.App.SessionTokenDuration),
			ActionTokenTTL:       time.Duration(fc.App.ActionTokenTTL),
			PublicBaseURL:        fc.App.PublicBaseURL,
			Version:              fc.App.Version,
			LogLevel:             fc.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{DSN: fc.Storage.DB.DSN},
			Photos: Photos{
				Dir:         fc.Storage.Photos.Dir,
				PublicURL:   fc.Storage.Photos.PublicURL,
				S3Bucket:    fc.Storage.Photos.S3Bucket,
				S3Region:    fc.Storage.Photos.S3Region,
				S3Endpoint:  fc.Storage.Photos.S3Endpoint,
				S3AccessKey: fc.Storage.Photos.S3AccessKey,
				S3SecretKey: fc.Storage.Photos.S3SecretKey,
			},
			Cache: Cache{
				RedisURL:   fc.Storage.Cache.RedisURL,
				CatalogTTL: time.Duration(fc.Storage.Cache.CatalogTTL),
			},
		},
		Server: Server{
			HTTPAddress:    fc.Server.HTTPAddress,
			RequestTimeout: time.Duration(fc.Server.RequestTimeout),
			MaxUploadBytes: fc.Server.MaxUploadBytes,
		},
		Mailer: Mailer{
			Mode: fc.Mailer.Mode,
			From: fc.Mailer.From,
			SMTP: SMTP{
				Host:     fc.Mailer.SMTP.Host,
				Port:     fc.Mailer.SMTP.Port,
				Username: fc.Mailer.SMTP.Username,
				Password: fc.Mailer.SMTP.Password,
			},
			Queue: Queue{
				URL:  fc.Mailer.Queue.URL,
				Name: fc.Mailer.Queue.Name,
			},
			API: MailerAPI{
				URL:     fc.Mailer.API.URL,
				Key:     fc.Mailer.API.Key,
				Timeout: time.Duration(fc.Mailer.API.Timeout),
			},
		},
		Workers: Workers{
			MailConsumers: fc.Workers.MailConsumers,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that accepts strings like
// "1h" or "30s" from JSON and YAML, and plain nanosecond numbers from JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.UnmarshalText([]byte(value))
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d *Duration) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = 0
		return nil
	}
	tmp, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
