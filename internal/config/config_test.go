package config

import (
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"STREAMCORE_UNITS_POLL_RATE",
		"STREAMCORE_UNITS_MAX_BACKOFF",
		"STREAMCORE_WEAPONS_POLL_RATE",
		"STREAMCORE_INCLUDE_STATIC_OBJECTS",
		"STREAMCORE_OUTBOUND_CAPACITY",
		"STREAMCORE_LOG_LEVEL",
		"STREAMCORE_LOG_PATH",
		"STREAMCORE_LOG_MAX_SIZE_MB",
		"STREAMCORE_LOG_MAX_BACKUPS",
		"STREAMCORE_LOG_MAX_AGE_DAYS",
		"STREAMCORE_LOG_COMPRESS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.UnitsPollRate != DefaultUnitsPollRate {
		t.Fatalf("expected default units poll rate %v, got %v", DefaultUnitsPollRate, cfg.UnitsPollRate)
	}
	if cfg.UnitsMaxBackoff != DefaultUnitsMaxBackoff {
		t.Fatalf("expected default units max backoff %v, got %v", DefaultUnitsMaxBackoff, cfg.UnitsMaxBackoff)
	}
	if cfg.WeaponsPollRate != DefaultWeaponsPollRate {
		t.Fatalf("expected default weapons poll rate %v, got %v", DefaultWeaponsPollRate, cfg.WeaponsPollRate)
	}
	if cfg.IncludeStaticObjects != DefaultIncludeStaticObjects {
		t.Fatalf("expected default include static objects %t, got %t", DefaultIncludeStaticObjects, cfg.IncludeStaticObjects)
	}
	if cfg.OutboundCapacity != DefaultOutboundCapacity {
		t.Fatalf("expected default outbound capacity %d, got %d", DefaultOutboundCapacity, cfg.OutboundCapacity)
	}
	if cfg.Logging.Level != DefaultLogLevel {
		t.Fatalf("expected default log level %q, got %q", DefaultLogLevel, cfg.Logging.Level)
	}
	if cfg.Logging.Path != DefaultLogPath {
		t.Fatalf("expected default log path %q, got %q", DefaultLogPath, cfg.Logging.Path)
	}
	if cfg.Logging.MaxSizeMB != DefaultLogMaxSizeMB {
		t.Fatalf("expected default log max size %d, got %d", DefaultLogMaxSizeMB, cfg.Logging.MaxSizeMB)
	}
	if cfg.Logging.Compress != DefaultLogCompress {
		t.Fatalf("expected default log compress %t, got %t", DefaultLogCompress, cfg.Logging.Compress)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STREAMCORE_UNITS_POLL_RATE", "2s")
	t.Setenv("STREAMCORE_UNITS_MAX_BACKOFF", "20s")
	t.Setenv("STREAMCORE_WEAPONS_POLL_RATE", "250ms")
	t.Setenv("STREAMCORE_INCLUDE_STATIC_OBJECTS", "true")
	t.Setenv("STREAMCORE_OUTBOUND_CAPACITY", "256")
	t.Setenv("STREAMCORE_LOG_LEVEL", "debug")
	t.Setenv("STREAMCORE_LOG_PATH", "/var/log/streamcore.log")
	t.Setenv("STREAMCORE_LOG_MAX_SIZE_MB", "512")
	t.Setenv("STREAMCORE_LOG_MAX_BACKUPS", "4")
	t.Setenv("STREAMCORE_LOG_MAX_AGE_DAYS", "2")
	t.Setenv("STREAMCORE_LOG_COMPRESS", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.UnitsPollRate != 2*time.Second {
		t.Fatalf("expected units poll rate 2s, got %v", cfg.UnitsPollRate)
	}
	if cfg.UnitsMaxBackoff != 20*time.Second {
		t.Fatalf("expected units max backoff 20s, got %v", cfg.UnitsMaxBackoff)
	}
	if cfg.WeaponsPollRate != 250*time.Millisecond {
		t.Fatalf("expected weapons poll rate 250ms, got %v", cfg.WeaponsPollRate)
	}
	if !cfg.IncludeStaticObjects {
		t.Fatalf("expected include static objects to be enabled")
	}
	if cfg.OutboundCapacity != 256 {
		t.Fatalf("expected outbound capacity 256, got %d", cfg.OutboundCapacity)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected overridden log level debug, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.MaxBackups != 4 {
		t.Fatalf("expected log max backups 4, got %d", cfg.Logging.MaxBackups)
	}
	if cfg.Logging.Compress {
		t.Fatalf("expected log compression disabled")
	}
}

func TestLoadClampsMaxBackoffUpToPollRate(t *testing.T) {
	clearEnv(t)
	t.Setenv("STREAMCORE_UNITS_POLL_RATE", "10s")
	t.Setenv("STREAMCORE_UNITS_MAX_BACKOFF", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.UnitsMaxBackoff != 10*time.Second {
		t.Fatalf("expected max backoff clamped up to poll rate 10s, got %v", cfg.UnitsMaxBackoff)
	}
}

func TestLoadReturnsValidationErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("STREAMCORE_UNITS_POLL_RATE", "not-a-duration")
	t.Setenv("STREAMCORE_WEAPONS_POLL_RATE", "-1s")
	t.Setenv("STREAMCORE_OUTBOUND_CAPACITY", "-5")
	t.Setenv("STREAMCORE_LOG_MAX_SIZE_MB", "0")
	t.Setenv("STREAMCORE_LOG_COMPRESS", "notabool")
	t.Setenv("STREAMCORE_INCLUDE_STATIC_OBJECTS", "notabool")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error from invalid configuration, got nil")
	}

	for _, want := range []string{
		"STREAMCORE_UNITS_POLL_RATE",
		"STREAMCORE_WEAPONS_POLL_RATE",
		"STREAMCORE_OUTBOUND_CAPACITY",
		"STREAMCORE_LOG_MAX_SIZE_MB",
		"STREAMCORE_LOG_COMPRESS",
		"STREAMCORE_INCLUDE_STATIC_OBJECTS",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to mention %s, got %q", want, err.Error())
		}
	}
}
