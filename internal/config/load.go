package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
)

// CLIOverrides carries the highest-priority layer of the four-layer chain:
// explicit flags passed on the command line.
type CLIOverrides struct {
	ConfigPath  string
	ThreadCount int
	SetThread   bool
}

func (cli CLIOverrides) apply(cfg *Config) {
	if cli.SetThread {
		cfg.Generator.ThreadCount = cli.ThreadCount
	}
}

// Load resolves the full four-layer override chain: defaults, an optional
// TOML file, environment variables, then CLI flags, in that order, then
// validates the result. path == "" falls back to env.ConfigPath; when both
// are empty the file layer is skipped and the result comes from defaults
// plus env/CLI only.
func Load(path string, env EnvOverrides, cli CLIOverrides, logger *slog.Logger) (*Config, error) {
	cfg := DefaultConfig()

	effectivePath := path
	if effectivePath == "" {
		effectivePath = env.ConfigPath
	}

	if effectivePath != "" {
		logger.Debug("loading config file", "path", effectivePath)

		data, err := os.ReadFile(effectivePath)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", effectivePath, err)
		}

		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", effectivePath, err)
		}

		warnUnknownKeys(&md, logger)
	}

	env.Apply(cfg)
	cli.apply(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	logger.Debug("config resolved",
		"thread_count", cfg.Generator.ThreadCount,
		"sampling_rate", cfg.Generator.SamplingRate,
		"log_level", cfg.Logging.LogLevel,
	)

	return cfg, nil
}

// warnUnknownKeys logs every key present in the config file but not decoded
// into Config. Unlike the teacher's checkUnknownKeys, which treats this as
// fatal, unrecognized keys here are only warned about — spec.md requires
// unknown keys to be ignored, not rejected.
func warnUnknownKeys(md *toml.MetaData, logger *slog.Logger) {
	for _, key := range md.Undecoded() {
		logger.Warn("config: ignoring unknown key", "key", key.String())
	}
}
