package config

import (
	"os"
	"strconv"
)

// Environment variable names for overrides, prefixed per the distilled
// spec's ambient-stack section (§10). Mirrors the teacher's small,
// enumerated EnvOverrides struct in internal/config/env.go rather than a
// generic reflection-based binder.
const (
	EnvConfigPath   = "DESCRIPTORGEN_CONFIG"
	EnvLogLevel     = "DESCRIPTORGEN_LOG_LEVEL"
	EnvThreadCount  = "DESCRIPTORGEN_THREAD_COUNT"
)

// EnvOverrides holds values read from environment variables. Empty string
// (or, for ThreadCount, false) means "not set"; callers apply only the
// fields that were actually present.
type EnvOverrides struct {
	ConfigPath      string
	LogLevel        string
	ThreadCount     int
	ThreadCountSet  bool
}

// ReadEnvOverrides reads the recognized environment variables.
func ReadEnvOverrides() EnvOverrides {
	eo := EnvOverrides{
		ConfigPath: os.Getenv(EnvConfigPath),
		LogLevel:   os.Getenv(EnvLogLevel),
	}

	if raw := os.Getenv(EnvThreadCount); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			eo.ThreadCount = n
			eo.ThreadCountSet = true
		}
	}

	return eo
}

// Apply overlays non-empty/explicitly-set fields onto cfg, the env layer of
// the four-layer override chain (defaults -> file -> env -> CLI).
func (eo EnvOverrides) Apply(cfg *Config) {
	if eo.LogLevel != "" {
		cfg.Logging.LogLevel = eo.LogLevel
	}

	if eo.ThreadCountSet {
		cfg.Generator.ThreadCount = eo.ThreadCount
	}
}
