package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()

	t.Setenv("VECTA_PRIMARY__ENV", "production")
	t.Setenv("VECTA_SERVER__PORT", "8080")
	t.Setenv("VECTA_SERVER__READ_TIMEOUT", "30")
	t.Setenv("VECTA_SERVER__WRITE_TIMEOUT", "30")
	t.Setenv("VECTA_SERVER__IDLE_TIMEOUT", "60")
	t.Setenv("VECTA_DATABASE__HOST", "localhost")
	t.Setenv("VECTA_DATABASE__PORT", "5432")
	t.Setenv("VECTA_DATABASE__USER", "vecta")
	t.Setenv("VECTA_DATABASE__PASSWORD", "p@ss word")
	t.Setenv("VECTA_DATABASE__NAME", "vecta")
	t.Setenv("VECTA_DATABASE__SSL_MODE", "disable")
	t.Setenv("VECTA_DATABASE__MAX_OPEN_CONNS", "10")
	t.Setenv("VECTA_DATABASE__MAX_IDLE_CONNS", "2")
	t.Setenv("VECTA_DATABASE__CONN_MAX_LIFETIME", "300")
	t.Setenv("VECTA_DATABASE__CONN_MAX_IDLE_TIME", "60")
}

func TestLoadConfig(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("VECTA_SERVER__CORS_ALLOWED_ORIGINS", "https://vecta.example.com, https://admin.vecta.example.com")
	t.Setenv("VECTA_SERVER__CORS_STRICT", "true")
	t.Setenv("VECTA_AUTH__API_KEY", "secret")
	t.Setenv("VECTA_AUTH__ALLOWED_REFERERS", "https://vecta.example.com/")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Primary.Env)
	assert.False(t, cfg.Primary.IsDevelopment())
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Server.CORSStrict)
	assert.Equal(t,
		[]string{"https://vecta.example.com", "https://admin.vecta.example.com"},
		cfg.Server.AllowedOrigins(),
	)
	assert.Equal(t, "secret", cfg.Auth.APIKey)
	assert.Equal(t, []string{"https://vecta.example.com/"}, cfg.Auth.Referers())
	assert.Equal(t, 5432, cfg.Database.Port)

	t.Run("applies defaults", func(t *testing.T) {
		assert.Equal(t, DefaultTimezone, cfg.Email.Timezone)
		assert.Equal(t, DefaultFromName, cfg.Email.FromName)
		assert.False(t, cfg.Email.Enabled())

		require.NotNil(t, cfg.Observability)
		assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
		assert.Equal(t, "production", cfg.Observability.Environment)
		assert.False(t, cfg.Observability.NewRelicEnabled())
	})
}

func TestLoadConfigMissingRequired(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("VECTA_SERVER__PORT", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadConfigRejectsUnknownEnv(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("VECTA_PRIMARY__ENV", "qa")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestPrimaryIsDevelopment(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{EnvDevelopment, true},
		{EnvLocal, true},
		{"staging", false},
		{EnvProduction, false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, Primary{Env: tt.env}.IsDevelopment())
		})
	}
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "::1",
		Port:     5432,
		User:     "vecta",
		Password: "p@ss word",
		Name:     "vecta",
		SSLMode:  "require",
	}

	assert.Equal(t, "postgres://vecta:p%40ss+word@[::1]:5432/vecta?sslmode=require", d.DSN())
}

func TestEmailConfigEnabled(t *testing.T) {
	assert.True(t, EmailConfig{ResendAPIKey: "re_123", From: "info@vecta.example.com", To: "owner@vecta.example.com"}.Enabled())
	assert.False(t, EmailConfig{From: "info@vecta.example.com", To: "owner@vecta.example.com"}.Enabled())
	assert.False(t, EmailConfig{ResendAPIKey: "re_123", From: "info@vecta.example.com"}.Enabled())
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList("  "))
	assert.Equal(t, []string{"a", "b"}, splitList("a,, b ,"))
}

func TestObservabilityValidate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestGetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = EnvProduction
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = EnvDevelopment
	assert.Equal(t, "debug", cfg.GetLogLevel())

	cfg.Logging.Level = "warn"
	assert.Equal(t, "warn", cfg.GetLogLevel())
}
