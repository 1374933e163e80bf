package config

import "github.com/tonimelisma/descriptorgen/internal/descriptor"

// Default values for the ambient sections. Generator defaults come
// straight from descriptor.DefaultSettings so the config layer and the
// core never drift apart.
const (
	defaultLogLevel  = "info"
	defaultLogFormat = "text"

	defaultSimTracks        = 20
	defaultSimFrames        = 200
	defaultSimSeed          = int64(1)
	defaultSimTrackLifetime = 30
	defaultSimDescriptor    = "track-stat"
)

// DefaultConfig returns a Config populated with every default value. Used
// both as the decode target (so unset TOML fields keep their defaults) and
// as the fallback when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		Generator: fromSettings(descriptor.DefaultSettings()),
		Logging: LoggingConfig{
			LogLevel:  defaultLogLevel,
			LogFormat: defaultLogFormat,
		},
		Sim: SimConfig{
			Tracks:        defaultSimTracks,
			Frames:        defaultSimFrames,
			Seed:          defaultSimSeed,
			TrackLifetime: defaultSimTrackLifetime,
			Descriptor:    defaultSimDescriptor,
		},
	}
}
