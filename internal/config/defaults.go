package config

import (
	"time"

	"github.com/Zedonkay/rent/internal/fairsplit"
)

// Default values for configuration fields.
const (
	DefaultTotalRent      = 2380.0
	DefaultFallbackPolicy = fairsplit.PolicySequential

	DefaultDatabasePath = "rent.db"

	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "json"

	DefaultListenAddress   = "127.0.0.1:5000"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultShutdownTimeout = 10 * time.Second

	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "rent"
)

// DefaultRooms are the room labels of the original household.
var DefaultRooms = []string{"Backyard Window Room", "Small Room", "Middle Room"}

// ApplyDefaults fills zero-valued fields with their defaults. Fields that
// are already set are left alone.
func ApplyDefaults(cfg *Config) {
	if cfg.TotalRent == 0 {
		cfg.TotalRent = DefaultTotalRent
	}
	if len(cfg.Rooms) == 0 {
		cfg.Rooms = append([]string(nil), DefaultRooms...)
	}
	if cfg.FallbackPolicy == "" {
		cfg.FallbackPolicy = DefaultFallbackPolicy
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = DefaultDatabasePath
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}

	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Metrics.Enabled == nil {
		enabled := DefaultMetricsEnabled
		cfg.Metrics.Enabled = &enabled
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
}

// Default returns a configuration built purely from defaults.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
