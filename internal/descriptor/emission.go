package descriptor

import "sync"

// emissionBuffer is an append-only collection of descriptors produced
// during one step. Multiple worker goroutines may append concurrently (one
// per in-flight per-track hook), so append is guarded by a mutex held only
// for the duration of the append itself, never across the hook's own
// computation.
type emissionBuffer struct {
	mu   sync.Mutex
	rows []Descriptor
}

func (b *emissionBuffer) append(d Descriptor) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.rows = append(b.rows, d.clone())
}

// reset truncates the buffer at the start of a new step, keeping capacity.
func (b *emissionBuffer) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.rows = b.rows[:0]
}

// snapshot returns a defensive deep copy of the current contents.
func (b *emissionBuffer) snapshot() []Descriptor {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Descriptor, len(b.rows))
	for i, d := range b.rows {
		out[i] = d.clone()
	}

	return out
}

// validate checks every descriptor currently buffered against the
// safe-mode invariants in one pass, returning the first violation found.
func (b *emissionBuffer) validate() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, d := range b.rows {
		if err := validateDescriptor(d); err != nil {
			return err
		}
	}

	return nil
}

func validateDescriptor(d Descriptor) error {
	if d.ID == "" {
		return wrapInvalid("empty id")
	}

	if d.End.FrameNumber < d.Start.FrameNumber {
		return wrapInvalid("end before start")
	}

	if want := FramesInRange(d.Start, d.End); len(d.History) != want {
		return wrapInvalid("history length mismatch")
	}

	for _, v := range d.Features {
		if v != v { // NaN check without importing math for one comparison
			return wrapInvalid("NaN feature value")
		}
	}

	return nil
}

func wrapInvalid(reason string) error {
	return &invalidDescriptorError{reason: reason}
}

type invalidDescriptorError struct {
	reason string
}

func (e *invalidDescriptorError) Error() string {
	return ErrInvalidDescriptor.Error() + ": " + e.reason
}

func (e *invalidDescriptorError) Unwrap() error {
	return ErrInvalidDescriptor
}
