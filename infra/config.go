package infra

import (
	"fmt"
	"time"
)

type PgConfig struct {
	ConnectionString   string
	Database           string
	Hostname           string
	Password           string
	Port               string
	User               string
	SslMode            string
	MaxPoolConnections int
}

func (config PgConfig) GetConnectionString() string {
	if config.ConnectionString != "" {
		return config.ConnectionString
	}

	if config.SslMode == "" {
		config.SslMode = "prefer"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s database=%s sslmode=%s",
		config.Hostname, config.Port, config.User, config.Password, config.Database, config.SslMode)
}

type MonitoringConfig struct {
	// ForecastInterval is how often the predictive monitoring job runs per
	// organization.
	ForecastInterval time.Duration
	// ForecastLookbackDays is the telemetry window fed to the trend forecaster.
	ForecastLookbackDays int
	// RegulationCacheTTL bounds how stale the active regulation set may be.
	RegulationCacheTTL time.Duration
	// AlertDedupWindow is the window within which identical governance alerts
	// are suppressed.
	AlertDedupWindow time.Duration
}

type EncryptionConfig struct {
	// Key is the raw AES-256 key protecting violation descriptions.
	Key []byte
}
