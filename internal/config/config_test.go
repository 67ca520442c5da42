package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("GOOGLE_SHEET_ID", "")
	t.Setenv("WHATSAPP_TOKEN", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("TIMEZONE", "")
	t.Setenv("UPLOAD_MAX_BYTES", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("METRICS_ENABLED", "")
	t.Setenv("UPLOAD_RATE_LIMIT", "")

	cfg, err := Load("testdata/missing.env")
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Server.MetricsEnabled)
	assert.Equal(t, 1.0, cfg.Server.UploadRateLimit)
	assert.Equal(t, DriverMongoDB, cfg.Store.Driver)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, int64(10485760), cfg.Upload.MaxBytes)
	assert.False(t, cfg.Sheets.Enabled())
	assert.False(t, cfg.WhatsApp.Enabled())
	assert.Equal(t, "America/Santiago", cfg.Location().String())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("METRICS_ENABLED", "true")
	t.Setenv("UPLOAD_RATE_LIMIT", "0")

	cfg, err := Load("testdata/missing.env")
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.True(t, cfg.Server.MetricsEnabled)
	assert.Zero(t, cfg.Server.UploadRateLimit)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	t.Setenv("UPLOAD_RATE_LIMIT", "fast")

	_, err := Load("testdata/missing.env")
	assert.ErrorContains(t, err, "UPLOAD_RATE_LIMIT")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8000"},
			Store:     StoreConfig{Driver: DriverMongoDB},
			MongoDB:   MongoDBConfig{URI: "mongodb://localhost:27017", DBName: "carwash"},
			Reporting: ReportingConfig{Timezone: "UTC"},
			Upload:    UploadConfig{MaxBytes: 1},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.Store.Driver = "postgres" }},
		{"missing uri", func(c *Config) { c.MongoDB.URI = "" }},
		{"bad timezone", func(c *Config) { c.Reporting.Timezone = "Mars/Olympus" }},
		{"sheet without credentials", func(c *Config) { c.Sheets.SpreadsheetID = "sheet" }},
		{"no upload budget", func(c *Config) { c.Upload.MaxBytes = 0 }},
		{"negative upload rate", func(c *Config) { c.Server.UploadRateLimit = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}
