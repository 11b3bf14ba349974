package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("ACCESS_SECRET", "access-secret")
	t.Setenv("REFRESH_SECRET", "refresh-secret")
	t.Setenv("ADMIN_PANEL_PASSWORD", "letmein")
	t.Setenv("STORE_DRIVER", "memory")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTTL)
	assert.Equal(t, "5000", cfg.App.Port)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, 3, cfg.Mail.MaxConnections)
	assert.Equal(t, 50, cfg.Mail.MaxMessages)
	assert.Equal(t, 10*time.Second, cfg.Mail.Timeout)
	assert.Equal(t, time.Minute, cfg.Contact.RateWindow)
	assert.Equal(t, int64(5*1024*1024), cfg.Media.MaxUploadBytes)
	assert.True(t, cfg.Mail.Secure)
	assert.False(t, cfg.App.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ACCESS_EXPIRES", "30m")
	t.Setenv("REFRESH_EXPIRES", "1d12h")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SMTP_PORT", "587")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTTL)
	assert.Equal(t, 36*time.Hour, cfg.Auth.RefreshTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.CORSOrigins)
	assert.True(t, cfg.App.IsProduction())
	assert.False(t, cfg.Mail.Secure)
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("ACCESS_EXPIRES", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "ACCESS_EXPIRES")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Auth: AuthConfig{
				AccessSecret:  "a",
				RefreshSecret: "b",
				AdminPassword: "pw",
				AccessTTL:     time.Minute,
				RefreshTTL:    time.Hour,
			},
			Store:   StoreConfig{Driver: StoreDriverMemory},
			Contact: ContactConfig{RateWindow: time.Minute},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing access secret", mutate: func(c *Config) { c.Auth.AccessSecret = "" }, wantErr: "ACCESS_SECRET is required"},
		{name: "identical secrets", mutate: func(c *Config) { c.Auth.RefreshSecret = "a" }, wantErr: "must differ"},
		{name: "missing admin password", mutate: func(c *Config) { c.Auth.AdminPassword = "" }, wantErr: "ADMIN_PANEL_PASSWORD"},
		{name: "mongo without url", mutate: func(c *Config) { c.Store.Driver = StoreDriverMongo }, wantErr: "MONGO_URL"},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Store.Driver = StoreDriverPostgres }, wantErr: "POSTGRES_DSN"},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "cassandra" }, wantErr: "unsupported STORE_DRIVER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParseDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"7d":    7 * 24 * time.Hour,
		"15m":   15 * time.Minute,
		"2d30m": 48*time.Hour + 30*time.Minute,
	}
	for in, want := range cases {
		got, err := ParseDuration(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDuration("xd")
	assert.Error(t, err)
}
