// Package config holds and validates the ece CLI's flag/file
// configuration. The structs carry mapstructure tags; package cmd fills
// them field by field from viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-ece/ece/keystore"
)

// LogConfig controls the default slog handler's verbosity.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(l.Level) {
	case "", "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("unsupported log level: %s", l.Level)
	}
}

// HTTPConfig configures the optional encrypt/decrypt HTTP service.
type HTTPConfig struct {
	IP       string `mapstructure:"ip"`
	Port     string `mapstructure:"port"`
	CertPath string `mapstructure:"cert"`
	KeyPath  string `mapstructure:"key"`
}

// ListenAddress returns the concatenated IP:Port address for listening.
func (h *HTTPConfig) ListenAddress() string {
	return h.IP + ":" + h.Port
}

// UseTLS returns true if TLS should be used (cert and key are both set).
func (h *HTTPConfig) UseTLS() bool {
	return h.CertPath != "" && h.KeyPath != ""
}

func (h *HTTPConfig) validate() error {
	if h.Port == "" {
		return errors.New("the server's HTTP port is required")
	}
	if (h.CertPath == "") != (h.KeyPath == "") {
		return errors.New("both certificate and key must be provided together, or neither")
	}
	return nil
}

// KeystoreConfig selects and configures the ece.KeyStore backend.
type KeystoreConfig struct {
	// Type is one of "memory" (the default), "sqlite", or "postgres".
	Type string `mapstructure:"type"`
	DSN  string `mapstructure:"dsn"`
}

func (k *KeystoreConfig) validate() error {
	switch strings.ToLower(k.Type) {
	case "", "memory":
		return nil
	case "sqlite", "postgres":
		if k.DSN == "" {
			return fmt.Errorf("keystore type %q requires a dsn", k.Type)
		}
		return nil
	default:
		return fmt.Errorf("unsupported keystore type: %s (must be 'memory', 'sqlite' or 'postgres')", k.Type)
	}
}

// Open constructs the Store this config describes.
func (k *KeystoreConfig) Open() (keystore.Store, error) {
	switch strings.ToLower(k.Type) {
	case "", "memory":
		return keystore.NewMemory(), nil
	case "sqlite":
		return keystore.OpenSQLite(k.DSN)
	case "postgres":
		return keystore.OpenPostgres(k.DSN)
	default:
		return nil, fmt.Errorf("unsupported keystore type: %s", k.Type)
	}
}

// RateLimitConfig bounds the rate at which a single remote address may
// call the encrypt/decrypt endpoints.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

func (r *RateLimitConfig) validate() error {
	if r.RPS < 0 {
		return errors.New("rate_limit.rps must not be negative")
	}
	if r.Burst < 0 {
		return errors.New("rate_limit.burst must not be negative")
	}
	return nil
}

// Enabled reports whether a positive rate has been configured.
func (r *RateLimitConfig) Enabled() bool {
	return r.RPS > 0
}

// ServerConfig is the top-level configuration unmarshaled from viper
// for the `ece serve` command.
type ServerConfig struct {
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Keystore  KeystoreConfig  `mapstructure:"keystore"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// Validate checks every section of the configuration.
func (c *ServerConfig) Validate() error {
	if err := c.Log.validate(); err != nil {
		return err
	}
	if err := c.HTTP.validate(); err != nil {
		return err
	}
	if err := c.Keystore.validate(); err != nil {
		return err
	}
	if err := c.RateLimit.validate(); err != nil {
		return err
	}
	return nil
}
