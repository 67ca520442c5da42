package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMongoDB = "mongodb"
	DriverMemory  = "memory"
)

// Config represents the full application configuration surface.
type Config struct {
	LogLevel  string
	Server    ServerConfig
	Store     StoreConfig
	MongoDB   MongoDBConfig
	Reporting ReportingConfig
	Upload    UploadConfig
	Sheets    SheetsConfig
	WhatsApp  WhatsAppConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port            string
	AllowedOrigins  []string
	MetricsEnabled  bool
	UploadRateLimit float64
}

// StoreConfig selects the record store implementation.
type StoreConfig struct {
	Driver string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// ReportingConfig holds the settings of the aggregation layer and its scheduled alerts.
type ReportingConfig struct {
	Timezone   string
	AlertsCron string
}

// UploadConfig limits spreadsheet uploads.
type UploadConfig struct {
	MaxBytes int64
}

// SheetsConfig points at an optional Google Sheet holding the daily operations log.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
	SyncCron        string
}

// Enabled reports whether a spreadsheet was configured.
func (c SheetsConfig) Enabled() bool {
	return c.SpreadsheetID != ""
}

// WhatsAppConfig contains credentials for the optional alert digest sent through the Meta WhatsApp Cloud API.
type WhatsAppConfig struct {
	AccessToken    string
	PhoneNumberID  string
	AlertRecipient string
	BaseURL        string
	APIVersion     string
}

// Enabled reports whether alert digests should be sent.
func (c WhatsAppConfig) Enabled() bool {
	return c.AccessToken != "" && c.PhoneNumberID != "" && c.AlertRecipient != ""
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// A missing .env is fine when the environment is set directly.
		_ = godotenv.Load()
	}

	maxBytes, err := strconv.ParseInt(getenvWithDefault("UPLOAD_MAX_BYTES", "10485760"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("UPLOAD_MAX_BYTES must be an integer: %w", err)
	}

	metricsEnabled, err := strconv.ParseBool(getenvWithDefault("METRICS_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("METRICS_ENABLED must be a boolean: %w", err)
	}

	uploadRate, err := strconv.ParseFloat(getenvWithDefault("UPLOAD_RATE_LIMIT", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("UPLOAD_RATE_LIMIT must be a number: %w", err)
	}

	cfg := &Config{
		LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Port:            getenvWithDefault("APP_PORT", "8000"),
			AllowedOrigins:  splitList(getenvWithDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
			MetricsEnabled:  metricsEnabled,
			UploadRateLimit: uploadRate,
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getenvWithDefault("STORE_DRIVER", DriverMongoDB)),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("DATABASE_NAME", "carwash"),
		},
		Reporting: ReportingConfig{
			Timezone:   getenvWithDefault("TIMEZONE", "America/Santiago"),
			AlertsCron: getenvWithDefault("ALERTS_CRON", "0 20 * * *"),
		},
		Upload: UploadConfig{
			MaxBytes: maxBytes,
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_ID"),
			Range:           getenvWithDefault("GOOGLE_SHEET_RANGE", "Registro!A:Z"),
			SyncCron:        getenvWithDefault("SHEETS_SYNC_CRON", "0 23 * * *"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:    os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID:  os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			AlertRecipient: os.Getenv("WHATSAPP_ALERT_RECIPIENT"),
			BaseURL:        getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:     getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Store.Driver {
	case DriverMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("DATABASE_NAME must be provided")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER %q is not supported", c.Store.Driver)
	}

	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE is invalid: %w", err)
	}

	if c.Server.UploadRateLimit < 0 {
		return errors.New("UPLOAD_RATE_LIMIT must not be negative")
	}

	if c.Upload.MaxBytes <= 0 {
		return errors.New("UPLOAD_MAX_BYTES must be positive")
	}

	if c.Sheets.Enabled() {
		if c.Sheets.CredentialsPath == "" {
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when GOOGLE_SHEET_ID is set")
		}
		if c.Sheets.Range == "" {
			return errors.New("GOOGLE_SHEET_RANGE must not be empty")
		}
	}

	if c.WhatsApp.Enabled() {
		if c.WhatsApp.BaseURL == "" {
			return errors.New("WHATSAPP_BASE_URL must not be empty")
		}
		if c.WhatsApp.APIVersion == "" {
			return errors.New("WHATSAPP_API_VERSION must not be empty")
		}
	}

	return nil
}

// Location resolves the reporting timezone. Validate has already checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Reporting.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
