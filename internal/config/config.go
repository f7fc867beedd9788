// Package config loads the stream engine's runtime tunables from
// environment variables, the way the broker it was distilled from does
// (see internal/config in the reference broker service): sane defaults,
// explicit overrides, and every invalid override accumulated into a
// single descriptive error instead of failing on the first problem.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultUnitsPollRate is the tick cadence for polling tracked units/statics.
	DefaultUnitsPollRate = 5 * time.Second
	// DefaultUnitsMaxBackoff bounds the adaptive per-entity back-off.
	DefaultUnitsMaxBackoff = 30 * time.Second
	// DefaultWeaponsPollRate is the tick cadence for polling tracked weapons.
	DefaultWeaponsPollRate = 1000 * time.Millisecond
	// DefaultIncludeStaticObjects controls whether units subscriptions track
	// static objects alongside units unless a client overrides it.
	DefaultIncludeStaticObjects = false
	// DefaultOutboundCapacity bounds the engine-to-transport channel.
	DefaultOutboundCapacity = 128

	// DefaultLogLevel controls verbosity for stream engine logs.
	DefaultLogLevel = "info"
	// DefaultLogPath is where structured logs are written.
	DefaultLogPath = "streamcore.log"
	// DefaultLogMaxSizeMB caps the size of a single log file before rotation.
	DefaultLogMaxSizeMB = 100
	// DefaultLogMaxBackups limits retained rotated log files.
	DefaultLogMaxBackups = 10
	// DefaultLogMaxAgeDays controls how long rotated log files are kept on disk.
	DefaultLogMaxAgeDays = 7
	// DefaultLogCompress toggles gzip compression for rotated log files.
	DefaultLogCompress = true
)

// Config captures all runtime tunables for the stream engine service.
type Config struct {
	UnitsPollRate        time.Duration
	UnitsMaxBackoff      time.Duration
	WeaponsPollRate      time.Duration
	IncludeStaticObjects bool
	OutboundCapacity     int

	Logging LoggingConfig
}

// LoggingConfig captures structured logging configuration options.
type LoggingConfig struct {
	Level      string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Load reads the stream engine configuration from environment variables,
// applying sane defaults and returning descriptive errors for invalid
// overrides.
func Load() (*Config, error) {
	cfg := &Config{
		UnitsPollRate:        DefaultUnitsPollRate,
		UnitsMaxBackoff:      DefaultUnitsMaxBackoff,
		WeaponsPollRate:      DefaultWeaponsPollRate,
		IncludeStaticObjects: DefaultIncludeStaticObjects,
		OutboundCapacity:     DefaultOutboundCapacity,
		Logging: LoggingConfig{
			Level:      getString("STREAMCORE_LOG_LEVEL", DefaultLogLevel),
			Path:       getString("STREAMCORE_LOG_PATH", DefaultLogPath),
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
			MaxAgeDays: DefaultLogMaxAgeDays,
			Compress:   DefaultLogCompress,
		},
	}

	var problems []string

	if raw := strings.TrimSpace(os.Getenv("STREAMCORE_UNITS_POLL_RATE")); raw != "" {
		duration, err := time.ParseDuration(raw)
		if err != nil || duration <= 0 {
			problems = append(problems, fmt.Sprintf("STREAMCORE_UNITS_POLL_RATE must be a positive duration, got %q", raw))
		} else {
			cfg.UnitsPollRate = duration
		}
	}

	if raw := strings.TrimSpace(os.Getenv("STREAMCORE_UNITS_MAX_BACKOFF")); raw != "" {
		duration, err := time.ParseDuration(raw)
		if err != nil || duration <= 0 {
			problems = append(problems, fmt.Sprintf("STREAMCORE_UNITS_MAX_BACKOFF must be a positive duration, got %q", raw))
		} else {
			cfg.UnitsMaxBackoff = duration
		}
	}

	if raw := strings.TrimSpace(os.Getenv("STREAMCORE_WEAPONS_POLL_RATE")); raw != "" {
		duration, err := time.ParseDuration(raw)
		if err != nil || duration <= 0 {
			problems = append(problems, fmt.Sprintf("STREAMCORE_WEAPONS_POLL_RATE must be a positive duration, got %q", raw))
		} else {
			cfg.WeaponsPollRate = duration
		}
	}

	if raw := strings.TrimSpace(os.Getenv("STREAMCORE_INCLUDE_STATIC_OBJECTS")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("STREAMCORE_INCLUDE_STATIC_OBJECTS must be a boolean value, got %q", raw))
		} else {
			cfg.IncludeStaticObjects = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("STREAMCORE_OUTBOUND_CAPACITY")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			problems = append(problems, fmt.Sprintf("STREAMCORE_OUTBOUND_CAPACITY must be a positive integer, got %q", raw))
		} else {
			cfg.OutboundCapacity = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("STREAMCORE_LOG_MAX_SIZE_MB")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			problems = append(problems, fmt.Sprintf("STREAMCORE_LOG_MAX_SIZE_MB must be a positive integer, got %q", raw))
		} else {
			cfg.Logging.MaxSizeMB = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("STREAMCORE_LOG_MAX_BACKUPS")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("STREAMCORE_LOG_MAX_BACKUPS must be a non-negative integer, got %q", raw))
		} else {
			cfg.Logging.MaxBackups = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("STREAMCORE_LOG_MAX_AGE_DAYS")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("STREAMCORE_LOG_MAX_AGE_DAYS must be a non-negative integer, got %q", raw))
		} else {
			cfg.Logging.MaxAgeDays = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("STREAMCORE_LOG_COMPRESS")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("STREAMCORE_LOG_COMPRESS must be a boolean value, got %q", raw))
		} else {
			cfg.Logging.Compress = value
		}
	}

	if cfg.UnitsMaxBackoff < cfg.UnitsPollRate {
		cfg.UnitsMaxBackoff = cfg.UnitsPollRate
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
