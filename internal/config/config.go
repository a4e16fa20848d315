// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types, and validates that required
// values are present so they can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability, email).
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it is loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the VECTA_ prefix. Keys are lowercased, the prefix
	is removed and a double underscore marks nesting:

	  VECTA_SERVER__PORT             -> server.port        -> Config.Server.Port
	  VECTA_AUTH__API_KEY            -> auth.api_key       -> Config.Auth.APIKey
	  VECTA_EMAIL__RESEND_API_KEY    -> email.resend_api_key
*/

const (
	envPrefix    = "VECTA_"
	envDelimiter = "__"

	EnvDevelopment = "development"
	EnvLocal       = "local"
	EnvProduction  = "production"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Auth          AuthConfig           `koanf:"auth"`
	Email         EmailConfig          `koanf:"email"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=development local staging production"`
}

// IsDevelopment reports whether access checks should be bypassed.
// The local env is a developer machine as well.
func (p Primary) IsDevelopment() bool {
	return p.Env == EnvDevelopment || p.Env == EnvLocal
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string `koanf:"port" validate:"required"`
	ReadTimeout        int    `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int    `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int    `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins string `koanf:"cors_allowed_origins"`
	CORSStrict         bool   `koanf:"cors_strict"`
}

// AllowedOrigins splits the comma-separated origin list.
func (s ServerConfig) AllowedOrigins() []string {
	return splitList(s.CORSAllowedOrigins)
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// DSN builds a postgres:// connection string. The password is URL-escaped
// and IPv6 hosts are bracketed.
func (d DatabaseConfig) DSN() string {
	hostPort := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		d.User,
		url.QueryEscape(d.Password),
		hostPort,
		d.Name,
		d.SSLMode,
	)
}

// AuthConfig stores the shared secret checked against X-API-Key and the
// referer prefixes accepted on the public contact form.
type AuthConfig struct {
	APIKey          string `koanf:"api_key"`
	AllowedReferers string `koanf:"allowed_referers"`
}

// Referers splits the comma-separated referer prefix list.
func (a AuthConfig) Referers() []string {
	return splitList(a.AllowedReferers)
}

// EmailConfig configures the contact notification email.
// An empty ResendAPIKey disables sending.
type EmailConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	From         string `koanf:"from" validate:"omitempty,email"`
	FromName     string `koanf:"from_name"`
	To           string `koanf:"to" validate:"omitempty,email"`
	Timezone     string `koanf:"timezone"`
}

// Enabled reports whether enough is configured to actually send mail.
func (e EmailConfig) Enabled() bool {
	return e.ResendAPIKey != "" && e.From != "" && e.To != ""
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, validates it and applies defaults.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, envDelimiter, ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Email.Timezone == "" {
		mainConfig.Email.Timezone = DefaultTimezone
	}
	if mainConfig.Email.FromName == "" {
		mainConfig.Email.FromName = DefaultFromName
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are not user-configurable.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

const (
	ServiceName     = "vecta-backend"
	DefaultTimezone = "Asia/Tokyo"
	DefaultFromName = "Vectaお知らせ"
)

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
