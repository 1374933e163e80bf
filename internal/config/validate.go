package config

import (
	"errors"
	"fmt"
)

// minSimTracks and friends bound the simulation harness section; the
// generator section's own bounds live in descriptor.Settings.Validate and
// are not duplicated here.
const (
	minSimTracks        = 1
	maxSimTracks        = 10_000
	minSimFrames         = 1
	maxSimFrames         = 10_000_000
	minSimTrackLifetime = 1
)

// Validate checks every section and accumulates every error found via
// errors.Join, so a user fixing a config file sees every problem in one
// pass rather than one at a time — the same shape as the teacher's
// internal/config.Validate.
func Validate(cfg *Config) error {
	var errs []error

	errs = append(errs, validateLogging(&cfg.Logging)...)
	errs = append(errs, validateSim(&cfg.Sim)...)

	if err := cfg.Generator.ToSettings().Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func validateLogging(l *LoggingConfig) []error {
	var errs []error

	switch l.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.log_level: unrecognized value %q", l.LogLevel))
	}

	switch l.LogFormat {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.log_format: unrecognized value %q", l.LogFormat))
	}

	return errs
}

func validateSim(s *SimConfig) []error {
	var errs []error

	if s.Tracks < minSimTracks || s.Tracks > maxSimTracks {
		errs = append(errs, fmt.Errorf("simulation.tracks: %d outside [%d,%d]", s.Tracks, minSimTracks, maxSimTracks))
	}

	if s.Frames < minSimFrames || s.Frames > maxSimFrames {
		errs = append(errs, fmt.Errorf("simulation.frames: %d outside [%d,%d]", s.Frames, minSimFrames, maxSimFrames))
	}

	if s.TrackLifetime < minSimTrackLifetime {
		errs = append(errs, fmt.Errorf("simulation.track_lifetime: must be >= %d", minSimTrackLifetime))
	}

	switch s.Descriptor {
	case "frame-stat", "track-stat":
	default:
		errs = append(errs, fmt.Errorf("simulation.descriptor: unrecognized value %q", s.Descriptor))
	}

	return errs
}
