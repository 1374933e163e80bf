// Package config implements TOML configuration loading, environment
// overrides, and validation for the descriptor-generation harness and CLI.
// Structure and validation style are grounded on the teacher's own
// internal/config package (four-layer override chain, accumulate-all-errors
// validation via errors.Join).
package config

import "github.com/tonimelisma/descriptorgen/internal/descriptor"

// Config is the top-level, TOML-decodable configuration. Its Generator
// section maps one-to-one onto descriptor.Settings; Logging controls the
// ambient obslog logger.
type Config struct {
	Generator GeneratorConfig `toml:"generator"`
	Logging   LoggingConfig   `toml:"logging"`
	Sim       SimConfig       `toml:"simulation"`
}

// GeneratorConfig is the TOML-facing mirror of descriptor.Settings. It
// exists as a separate type (rather than embedding descriptor.Settings
// directly) so the TOML field tags and validation live in this package,
// keeping the core package free of a config-file dependency.
type GeneratorConfig struct {
	ThreadCount       int    `toml:"thread_count"`
	SamplingRate      int    `toml:"sampling_rate"`
	FrameBufferLength int    `toml:"frame_buffer_length"`
	SafeMode          bool   `toml:"safe_mode"`
	ProcessTracks     bool   `toml:"process_tracks"`
	BufferContentCopy bool   `toml:"buffer_content_copy"`
	AppendModality    bool   `toml:"append_modality"`
	ModalitySuffix    string `toml:"modality_suffix"`
}

// LoggingConfig controls the ambient structured logger.
type LoggingConfig struct {
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// SimConfig controls the synthetic simulation harness (internal/sim).
type SimConfig struct {
	Tracks       int    `toml:"tracks"`
	Frames       int    `toml:"frames"`
	Seed         int64  `toml:"seed"`
	TrackLifetime int   `toml:"track_lifetime"`
	Descriptor   string `toml:"descriptor"`
}

// ToSettings converts the TOML-facing generator section into the core's
// own Settings type.
func (g GeneratorConfig) ToSettings() descriptor.Settings {
	return descriptor.Settings{
		ThreadCount:       g.ThreadCount,
		SamplingRate:      g.SamplingRate,
		FrameBufferLength: g.FrameBufferLength,
		SafeMode:          g.SafeMode,
		ProcessTracks:     g.ProcessTracks,
		BufferContentCopy: g.BufferContentCopy,
		AppendModality:    g.AppendModality,
		ModalitySuffix:    g.ModalitySuffix,
	}
}

func fromSettings(s descriptor.Settings) GeneratorConfig {
	return GeneratorConfig{
		ThreadCount:       s.ThreadCount,
		SamplingRate:      s.SamplingRate,
		FrameBufferLength: s.FrameBufferLength,
		SafeMode:          s.SafeMode,
		ProcessTracks:     s.ProcessTracks,
		BufferContentCopy: s.BufferContentCopy,
		AppendModality:    s.AppendModality,
		ModalitySuffix:    s.ModalitySuffix,
	}
}
