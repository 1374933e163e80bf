package descriptors

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/tonimelisma/descriptorgen/internal/descriptor"
)

// trackStatScratch accumulates running min/max/mean of a track's scalar
// feature (here, its observation count at the time of each update) across
// its lifetime, emitted as one descriptor when the track terminates.
type trackStatScratch struct {
	start   descriptor.FrameTimestamp
	last    descriptor.FrameTimestamp
	min     float64
	max     float64
	sum     float64
	samples int
}

type trackStatHooks struct {
	descriptor.BaseHooks

	gen *descriptor.Generator
}

// NewTrackStatGenerator builds a Generator whose hooks maintain per-track
// running statistics and emit one descriptor per track on termination.
func NewTrackStatGenerator(logger *slog.Logger) *descriptor.Generator {
	h := &trackStatHooks{}
	g := descriptor.NewGenerator(h, logger)
	h.gen = g

	return g
}

func (h *trackStatHooks) OnNewTrack(tr descriptor.Track) (any, error) {
	obs := tr.History()
	if len(obs) == 0 {
		return nil, fmt.Errorf("descriptors: track %d has no observations", tr.ID())
	}

	return &trackStatScratch{
		start: obs[0].Timestamp,
		last:  obs[0].Timestamp,
		min:   math.Inf(1),
		max:   math.Inf(-1),
	}, nil
}

func (h *trackStatHooks) OnUpdate(tr descriptor.Track, scratch any) error {
	s, ok := scratch.(*trackStatScratch)
	if !ok {
		return fmt.Errorf("descriptors: track %d scratch type mismatch", tr.ID())
	}

	obs := tr.History()
	if len(obs) == 0 {
		return nil
	}

	s.last = obs[len(obs)-1].Timestamp

	value := float64(len(obs))
	s.sum += value
	s.samples++

	if value < s.min {
		s.min = value
	}

	if value > s.max {
		s.max = value
	}

	return nil
}

func (h *trackStatHooks) OnTerminate(tr descriptor.Track, scratch any) error {
	s, ok := scratch.(*trackStatScratch)
	if !ok || s == nil || s.samples == 0 {
		return nil
	}

	h.gen.Emit(descriptor.Descriptor{
		ID:       fmt.Sprintf("track-%d", tr.ID()),
		Start:    s.start,
		End:      s.last,
		History:  contiguousHistory(s.start, s.last),
		Features: []float64{s.min, s.max, s.sum / float64(s.samples)},
	})

	return nil
}

// contiguousHistory rebuilds a contiguous frame-number range so the
// descriptor's History always matches the safe-mode length invariant
// regardless of how sparsely OnUpdate actually ran under sampling.
func contiguousHistory(start, end descriptor.FrameTimestamp) []descriptor.FrameTimestamp {
	n := descriptor.FramesInRange(start, end)
	out := make([]descriptor.FrameTimestamp, n)

	for i := range out {
		out[i] = descriptor.FrameTimestamp{FrameNumber: start.FrameNumber + uint64(i)}
	}

	return out
}
