package config

import (
	"fmt"
	"math"
	"net"
	"strings"

	"github.com/Zedonkay/rent/internal/fairsplit"
	"github.com/Zedonkay/rent/internal/logging"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the field (e.g., "server.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every field error found in a configuration.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:\n", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}

// Validate checks the configuration and returns a ValidationError listing
// every problem, or nil.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateRound(cfg)...)
	errs = append(errs, validateLogging(&cfg.Logging)...)
	errs = append(errs, validateServer(&cfg.Server)...)

	if cfg.Database.Path == "" {
		errs = append(errs, FieldError{Field: "database.path", Message: "database path is required"})
	}
	if cfg.MetricsEnabled() && cfg.Metrics.Namespace == "" {
		errs = append(errs, FieldError{Field: "metrics.namespace", Message: "namespace is required when metrics are enabled"})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateRound(cfg *Config) []FieldError {
	var errs []FieldError

	if math.IsNaN(cfg.TotalRent) || math.IsInf(cfg.TotalRent, 0) || cfg.TotalRent <= 0 {
		errs = append(errs, FieldError{
			Field:   "total_rent",
			Message: "total rent must be a positive number",
		})
	}

	if len(cfg.Rooms) != fairsplit.N {
		errs = append(errs, FieldError{
			Field:   "rooms",
			Message: fmt.Sprintf("exactly %d room labels are required, got %d", fairsplit.N, len(cfg.Rooms)),
		})
	} else {
		seen := make(map[string]bool, len(cfg.Rooms))
		for i, label := range cfg.Rooms {
			label = strings.TrimSpace(label)
			if label == "" {
				errs = append(errs, FieldError{Field: fmt.Sprintf("rooms[%d]", i), Message: "room label is required"})
				continue
			}
			if seen[label] {
				errs = append(errs, FieldError{Field: fmt.Sprintf("rooms[%d]", i), Message: fmt.Sprintf("duplicate room label %q", label)})
			}
			seen[label] = true
		}
	}

	if _, err := fairsplit.PolicyByName(cfg.FallbackPolicy); err != nil {
		errs = append(errs, FieldError{Field: "fallback_policy", Message: err.Error()})
	}

	return errs
}

func validateLogging(cfg *LoggingConfig) []FieldError {
	var errs []FieldError

	if _, err := logging.ParseLevel(cfg.Level); err != nil {
		errs = append(errs, FieldError{Field: "logging.level", Message: err.Error()})
	}
	if cfg.Format != logging.FormatJSON && cfg.Format != logging.FormatConsole {
		errs = append(errs, FieldError{
			Field:   "logging.format",
			Message: fmt.Sprintf("format must be %q or %q", logging.FormatJSON, logging.FormatConsole),
		})
	}

	return errs
}

func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{Field: "server.listen_address", Message: "listen address is required"})
	} else if _, _, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
		errs = append(errs, FieldError{Field: "server.listen_address", Message: fmt.Sprintf("invalid listen address: %v", err)})
	}

	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.read_timeout", Message: "read timeout must be positive"})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.write_timeout", Message: "write timeout must be positive"})
	}
	if cfg.ShutdownTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"})
	}

	return errs
}
