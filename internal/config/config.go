package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"pet-wellness-timeline/internal/platform/logger"
)

type Config struct {
	Port string

	// DBDriver: postgres | sqlite. Vacío con DB_DSN seteado = postgres.
	DBDriver string
	DBDSN    string

	DataServiceURL     string
	DataServiceAPIKey  string
	DataServiceTimeout time.Duration

	Timezone     string
	DisplayLimit int

	LogLevel  string
	LogFormat string
	AppName   string
}

func Parse() Config {
	cfg := Config{
		Port:               getString("PORT", "8080"),
		DBDriver:           strings.ToLower(getString("DB_DRIVER", "")),
		DBDSN:              getString("DB_DSN", ""),
		DataServiceURL:     getString("DATA_SERVICE_URL", ""),
		DataServiceAPIKey:  getString("DATA_SERVICE_API_KEY", ""),
		DataServiceTimeout: time.Duration(getInt("DATA_SERVICE_TIMEOUT_MS", 10_000)) * time.Millisecond,
		Timezone:           getString("TIMEZONE", "Local"),
		DisplayLimit:       getInt("TIMELINE_DISPLAY_LIMIT", 12),
		LogLevel:           getString("LOG_LEVEL", "info"),
		LogFormat:          getString("LOG_FORMAT", "text"),
		AppName:            getString("APP_NAME", "pet-wellness-timeline"),
	}
	if cfg.DBDriver == "" && cfg.DBDSN != "" {
		cfg.DBDriver = "postgres"
	}
	return cfg
}

// Validate revisa lo que Parse no puede corregir solo. Devuelve todos los
// problemas juntos.
func (c Config) Validate() error {
	var errs []error
	switch c.DBDriver {
	case "", "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER: unsupported driver %q", c.DBDriver))
	}
	if c.DBDriver != "" && c.DBDSN == "" {
		errs = append(errs, errors.New("DB_DSN: required when DB_DRIVER is set"))
	}
	if c.DataServiceURL != "" && c.DataServiceAPIKey == "" {
		errs = append(errs, errors.New("DATA_SERVICE_API_KEY: required with DATA_SERVICE_URL"))
	}
	if c.DisplayLimit <= 0 {
		errs = append(errs, fmt.Errorf("TIMELINE_DISPLAY_LIMIT: must be > 0, got %d", c.DisplayLimit))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	}
	if _, err := logger.LookupLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	return errors.Join(errs...)
}

// Location resuelve Timezone; "Local" o vacío es time.Local.
func (c Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" || tz == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(tz)
}

func getString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
