// Package descriptors holds two illustrative concrete descriptor
// generators built on internal/descriptor. They are deliberately simple —
// real feature extraction (HOG/STHOG, color histograms, and the like) is
// out of scope — and exist to exercise the core's hook lifecycle from the
// simulation harness, the CLI, and the core's own integration tests.
package descriptors

import (
	"fmt"
	"log/slog"

	"github.com/tonimelisma/descriptorgen/internal/descriptor"
)

// Statable is implemented by frame payloads that carry a scalar value the
// sample generators can summarize. The synthetic frames produced by
// internal/sim implement it.
type Statable interface {
	Value() float64
}

// frameStatHooks emits one descriptor per sampled frame, independent of
// any tracks. Its default settings disable ProcessTracks, exercising the
// pass-through path where per-track hooks are never invoked; a caller that
// reconfigures it with ProcessTracks on gets the no-op BaseHooks per-track
// hooks.
type frameStatHooks struct {
	descriptor.BaseHooks

	gen *descriptor.Generator
}

// NewFrameStatGenerator builds a Generator whose hooks emit one descriptor
// per sampled frame, summarizing the frame's payload value if it
// implements Statable.
func NewFrameStatGenerator(logger *slog.Logger) *descriptor.Generator {
	h := &frameStatHooks{}
	g := descriptor.NewGenerator(h, logger)
	h.gen = g

	return g
}

func (h *frameStatHooks) DefaultSettings() descriptor.Settings {
	s := descriptor.DefaultSettings()
	s.ProcessTracks = false

	return s
}

func (h *frameStatHooks) OnFrame() error {
	f, ok := h.gen.LatestFrame()
	if !ok {
		return nil
	}

	value := 0.0
	if s, ok := f.Payload.(Statable); ok {
		value = s.Value()
	}

	h.gen.Emit(descriptor.Descriptor{
		ID:       fmt.Sprintf("frame-%d", f.Timestamp.FrameNumber),
		Start:    f.Timestamp,
		End:      f.Timestamp,
		History:  []descriptor.FrameTimestamp{f.Timestamp},
		Features: []float64{value},
	})

	return nil
}
