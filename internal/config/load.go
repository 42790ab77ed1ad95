package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Load reads the configuration at path, applies defaults and RENT_*
// environment overrides, and validates the result. An empty path skips
// the file.
func Load(path string) (*Config, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		cfg, err = Parse(path, data)
		if err != nil {
			return nil, err
		}
	}

	ApplyDefaults(cfg)

	if err := applyEnvOverrides(cfg, getenv); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes configuration source without applying defaults. The file
// extension selects the format: .cue is CUE, anything else is YAML. Both
// are checked against the embedded schema before decoding.
func Parse(filename string, data []byte) (*Config, error) {
	ctx := cuecontext.New()

	var value cue.Value
	if filepath.Ext(filename) == ".cue" {
		value = ctx.CompileBytes(data, cue.Filename(filename))
	} else {
		file, err := cueyaml.Extract(filename, data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", filename, err)
		}
		value = ctx.BuildFile(file)
	}
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", filename, err)
	}

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue")).
		LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile config schema: %w", err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("configuration %q does not match schema: %w", filename, err)
	}

	// JSON is valid YAML, so one strict decoder handles both formats.
	// yaml.v3 also parses duration strings into time.Duration.
	raw, err := unified.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("export configuration %q: %w", filename, err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode configuration %q: %w", filename, err)
	}
	return &cfg, nil
}

// applyEnvOverrides applies RENT_SECTION_FIELD environment variables.
// Malformed numeric, boolean or duration values are reported as field errors.
func applyEnvOverrides(cfg *Config, getenv func(string) string) error {
	var errs []FieldError

	if val := getenv("RENT_TOTAL_RENT"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.TotalRent = f
		} else {
			errs = append(errs, envError("RENT_TOTAL_RENT", "total_rent", err))
		}
	}
	if val := getenv("RENT_FALLBACK_POLICY"); val != "" {
		cfg.FallbackPolicy = val
	}
	if val := getenv("RENT_DATABASE_PATH"); val != "" {
		cfg.Database.Path = val
	}
	if val := getenv("RENT_LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := getenv("RENT_LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
	if val := getenv("RENT_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}

	durations := []struct {
		env   string
		field string
		dst   *time.Duration
	}{
		{"RENT_SERVER_READ_TIMEOUT", "server.read_timeout", &cfg.Server.ReadTimeout},
		{"RENT_SERVER_WRITE_TIMEOUT", "server.write_timeout", &cfg.Server.WriteTimeout},
		{"RENT_SERVER_SHUTDOWN_TIMEOUT", "server.shutdown_timeout", &cfg.Server.ShutdownTimeout},
	}
	for _, d := range durations {
		val := getenv(d.env)
		if val == "" {
			continue
		}
		parsed, err := time.ParseDuration(val)
		if err != nil {
			errs = append(errs, envError(d.env, d.field, err))
			continue
		}
		*d.dst = parsed
	}

	if val := getenv("RENT_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = &b
		} else {
			errs = append(errs, envError("RENT_METRICS_ENABLED", "metrics.enabled", err))
		}
	}
	if val := getenv("RENT_METRICS_NAMESPACE"); val != "" {
		cfg.Metrics.Namespace = val
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func envError(env, field string, err error) FieldError {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		msg = msg[i+2:]
	}
	return FieldError{Field: field, Message: fmt.Sprintf("invalid %s: %s", env, msg)}
}
