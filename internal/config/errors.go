package config

import "errors"

// Validation errors returned when required configuration is incomplete or
// invalid.
var (
	// ErrEmptyTokenSignKey indicates that no token signing secret was provided.
	ErrEmptyTokenSignKey = errors.New("token sign key is required")
	// ErrEmptyDSN indicates that no database connection string was provided.
	ErrEmptyDSN = errors.New("database dsn is required")
	// ErrEmptyHTTPAddress indicates that the HTTP listen address is missing.
	ErrEmptyHTTPAddress = errors.New("http address is required")
	// ErrInvalidStorageConfigs indicates inconsistent photo storage settings.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid token lifetimes.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidMailerConfigs indicates a mail transport missing its settings.
	ErrInvalidMailerConfigs = errors.New("invalid mailer configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
