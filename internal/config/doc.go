// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Config file (JSON or YAML)
//  2. Environment variables
//  3. Command-line flags
//
// The main entry points are [GetStructuredConfig] for the HTTP server and
// [GetMailerConfig] for the mail queue worker.
package config
