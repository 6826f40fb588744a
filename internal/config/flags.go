package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags from os.Args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config config file path (json or yaml)
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-session-duration session token lifetime (e.g. "24h")
//	-action-token-ttl verification/reset token lifetime (e.g. "11m")
//	-public-url base URL used in mailed links
//	-request-timeout request timeout (e.g. "30s")
//	-photos-dir local photo directory
//	-mailer-mode smtp, queue or api
func ParseFlags() (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN string
	var configPath string
	var tokenSignKey string
	var tokenIssuer string
	var sessionDuration time.Duration
	var actionTokenTTL time.Duration
	var publicURL string
	var requestTimeout time.Duration
	var photosDir string
	var mailerMode string

	fs := flag.CommandLine
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&configPath, "c", "", "Config file path")
	fs.StringVar(&configPath, "config", "", "Config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&sessionDuration, "session-duration", 0, "Session token duration (e.g., 24h)")
	fs.DurationVar(&actionTokenTTL, "action-token-ttl", 0, "Verification and reset token duration (e.g., 11m)")
	fs.StringVar(&publicURL, "public-url", "", "Public base URL used in emails")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&photosDir, "photos-dir", "", "Local photo storage directory")
	fs.StringVar(&mailerMode, "mailer-mode", "", "Mail transport: smtp, queue or api")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:         tokenSignKey,
			TokenIssuer:          tokenIssuer,
			SessionTokenDuration: sessionDuration,
			ActionTokenTTL:       actionTokenTTL,
			PublicBaseURL:        publicURL,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Photos: Photos{
				Dir: photosDir,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Mailer: Mailer{
			Mode: mailerMode,
		},
		FilePath: configPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
