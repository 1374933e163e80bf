package descriptor

// FrameBuffer remembers the most recently pushed frames in insertion order,
// index 0 being the oldest. It is not concurrency-safe: the generator only
// touches it from its own dispatching goroutine, between worker-pool
// batches, the same invariant the teacher's internal/sync.Buffer relies on
// for its pending map.
type FrameBuffer struct {
	depth  int
	frames []Frame
	copy   bool
}

// NewFrameBuffer constructs a buffer holding up to depth frames. A depth of
// 0 still keeps one slot so Back() is well-defined for the remainder of the
// step that just pushed; the next Push evicts it immediately. When copy is
// true, Push clones the payload via FramePayload.Clone instead of storing
// the given value directly.
func NewFrameBuffer(depth int, copyContent bool) *FrameBuffer {
	effective := depth
	if effective < 1 {
		effective = 1
	}

	return &FrameBuffer{
		depth:  depth,
		frames: make([]Frame, 0, effective),
		copy:   copyContent,
	}
}

// Push appends a frame, evicting the oldest if the buffer is at capacity.
func (b *FrameBuffer) Push(f Frame) {
	if b.copy && f.Payload != nil {
		f.Payload = f.Payload.Clone()
	}

	cap := b.depth
	if cap < 1 {
		cap = 1
	}

	b.frames = append(b.frames, f)
	if len(b.frames) > cap {
		b.frames = b.frames[len(b.frames)-cap:]
	}
}

// Back returns the most recently pushed frame, or ok=false if empty.
func (b *FrameBuffer) Back() (Frame, bool) {
	if len(b.frames) == 0 {
		return Frame{}, false
	}

	return b.frames[len(b.frames)-1], true
}

// At returns the i-th oldest frame (0 = oldest currently retained).
func (b *FrameBuffer) At(i int) (Frame, bool) {
	if i < 0 || i >= len(b.frames) {
		return Frame{}, false
	}

	return b.frames[i], true
}

// Size returns the number of frames currently retained.
func (b *FrameBuffer) Size() int {
	return len(b.frames)
}

// Reset drops all retained frames.
func (b *FrameBuffer) Reset() {
	b.frames = b.frames[:0]
}
