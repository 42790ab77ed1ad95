package config

import (
	"time"

	"github.com/Zedonkay/rent/internal/fairsplit"
)

// Config is the complete rent configuration.
type Config struct {
	// TotalRent is the monthly rent every valuation vector must sum to.
	TotalRent float64 `yaml:"total_rent" json:"total_rent"`

	// Rooms holds the display label for each room, indexed by room number.
	Rooms []string `yaml:"rooms" json:"rooms"`

	// FallbackPolicy names the heuristic used when no envy-free split exists.
	FallbackPolicy string `yaml:"fallback_policy" json:"fallback_policy"`

	Database DatabaseConfig `yaml:"database" json:"database"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
	Server   ServerConfig   `yaml:"server" json:"server"`
	Metrics  MetricsConfig  `yaml:"metrics" json:"metrics"`
}

// DatabaseConfig locates the SQLite store.
type DatabaseConfig struct {
	Path string `yaml:"path" json:"path"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	ListenAddress   string        `yaml:"listen_address" json:"listen_address"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// MetricsConfig configures the prometheus collector.
type MetricsConfig struct {
	// Enabled is a pointer so an explicit false survives ApplyDefaults.
	Enabled   *bool  `yaml:"enabled" json:"enabled"`
	Namespace string `yaml:"namespace" json:"namespace"`
}

// MetricsEnabled reports whether metrics are on.
func (c *Config) MetricsEnabled() bool {
	return c.Metrics.Enabled == nil || *c.Metrics.Enabled
}

// RoomLabels returns the room labels as a fixed-size array.
func (c *Config) RoomLabels() [fairsplit.N]string {
	var labels [fairsplit.N]string
	copy(labels[:], c.Rooms)
	return labels
}

// Policy resolves the configured fallback policy.
func (c *Config) Policy() (fairsplit.FallbackPolicy, error) {
	return fairsplit.PolicyByName(c.FallbackPolicy)
}
