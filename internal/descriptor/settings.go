package descriptor

import "fmt"

// Validation range constants, mirrored after the teacher's validate.go
// constant-block style: named bounds instead of magic numbers scattered
// through the validator. Only lower bounds are specified — thread_count,
// sampling_rate, and frame_buffer_length have no stated ceiling.
const (
	minThreadCount  = 1
	minSamplingRate = 1
	minFrameBuffer  = 0
)

// Settings holds the recognized, validated options for a Generator. The
// zero value is not valid configuration; construct one via DefaultSettings
// and override individual fields before calling Generator.Configure.
type Settings struct {
	// ThreadCount is the worker-pool size. 1 means tasks run inline on the
	// calling goroutine with no pool at all.
	ThreadCount int

	// SamplingRate gates how often the per-frame/per-track pipeline runs:
	// once every SamplingRate frames. 1 means every frame.
	SamplingRate int

	// FrameBufferLength is the depth of the frame ring buffer.
	FrameBufferLength int

	// SafeMode enables descriptor-validation on emission.
	SafeMode bool

	// ProcessTracks enables per-track hook dispatch. When false, OnNewTrack,
	// OnUpdate, and OnTerminate are never called.
	ProcessTracks bool

	// BufferContentCopy selects deep-copy (true) vs reference (false)
	// storage for frames pushed into the frame buffer.
	BufferContentCopy bool

	// AppendModality, when true, appends ModalitySuffix to every emitted
	// descriptor's ID.
	AppendModality bool

	// ModalitySuffix is appended verbatim to descriptor IDs when
	// AppendModality is set. No separator is injected.
	ModalitySuffix string
}

// DefaultSettings returns the safe, conservative defaults: single-threaded,
// no sampling, a one-frame buffer, safe mode on, tracks processed, frames
// referenced not copied, no modality tagging.
func DefaultSettings() Settings {
	return Settings{
		ThreadCount:       1,
		SamplingRate:      1,
		FrameBufferLength: 1,
		SafeMode:          true,
		ProcessTracks:     true,
		BufferContentCopy: false,
		AppendModality:    false,
		ModalitySuffix:    "",
	}
}

// Validate checks every field against its allowed range and returns a
// wrapped ErrInvalidSettings describing the first violation found, or nil.
// Unlike the teacher's config.Validate, this does not accumulate every
// error — Configure must decide atomically whether to adopt a settings
// value at all, so the caller only needs to know it was rejected and why.
func (s Settings) Validate() error {
	if s.ThreadCount < minThreadCount {
		return fmt.Errorf("%w: thread_count %d below minimum %d", ErrInvalidSettings, s.ThreadCount, minThreadCount)
	}

	if s.SamplingRate < minSamplingRate {
		return fmt.Errorf("%w: sampling_rate %d below minimum %d", ErrInvalidSettings, s.SamplingRate, minSamplingRate)
	}

	if s.FrameBufferLength < minFrameBuffer {
		return fmt.Errorf("%w: frame_buffer_length %d below minimum %d", ErrInvalidSettings, s.FrameBufferLength, minFrameBuffer)
	}

	return nil
}
