package descriptor

// scratchEntry pairs a track's scratch with the most recently observed
// Track handle for that id, so a sweep like TerminateAllTracks can still
// call hooks with a valid Track even though the caller isn't actively
// reporting that track this step.
type scratchEntry struct {
	track   Track
	scratch any
}

// ScratchRegistry maps track identity to descriptor-private scratch state.
// Modeled after the teacher's DepTracker (internal/sync/tracker.go), which
// keeps an in-memory map keyed by a stable ID and mutates it only from the
// dispatching goroutine; unlike DepTracker this registry carries no
// dependency graph, only create/lookup/erase.
type ScratchRegistry struct {
	entries map[uint64]scratchEntry
}

// NewScratchRegistry returns an empty registry.
func NewScratchRegistry() *ScratchRegistry {
	return &ScratchRegistry{entries: make(map[uint64]scratchEntry)}
}

// Ensure returns the existing scratch for track, or calls factory to create
// and insert one if absent. factory may return (nil, nil) for tracks that
// need no scratch state. Either way the registry records track as the most
// recent handle seen for this id.
func (r *ScratchRegistry) Ensure(track Track, factory func() (any, error)) (any, error) {
	id := track.ID()

	if e, ok := r.entries[id]; ok {
		e.track = track
		r.entries[id] = e

		return e.scratch, nil
	}

	s, err := factory()
	if err != nil {
		return nil, err
	}

	r.entries[id] = scratchEntry{track: track, scratch: s}

	return s, nil
}

// View returns the scratch for trackID without creating one.
func (r *ScratchRegistry) View(trackID uint64) (any, bool) {
	e, ok := r.entries[trackID]

	return e.scratch, ok
}

// All returns every tracked (track, scratch) pair currently registered.
// Order is unspecified.
func (r *ScratchRegistry) All() []scratchEntry {
	out := make([]scratchEntry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}

	return out
}

// Erase drops the entry for trackID, closing it first if it implements
// io.Closer. Idempotent.
func (r *ScratchRegistry) Erase(trackID uint64) {
	e, ok := r.entries[trackID]
	if !ok {
		return
	}

	closeScratch(e.scratch)
	delete(r.entries, trackID)
}

// Clear drops every entry, closing each that implements io.Closer.
func (r *ScratchRegistry) Clear() {
	for id, e := range r.entries {
		closeScratch(e.scratch)
		delete(r.entries, id)
	}
}

// Len returns the number of tracked entries.
func (r *ScratchRegistry) Len() int {
	return len(r.entries)
}

type closer interface {
	Close() error
}

// closeScratch calls Close on scratch if it implements io.Closer, ignoring
// the error — scratch teardown failures are not fatal to the generator and
// have nowhere meaningful to surface during a registry sweep.
func closeScratch(scratch any) {
	if c, ok := scratch.(closer); ok {
		_ = c.Close()
	}
}
