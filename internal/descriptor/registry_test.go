package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTrack struct {
	id      uint64
	history []Observation
}

func (t *stubTrack) ID() uint64                { return t.id }
func (t *stubTrack) History() []Observation    { return t.history }

type closingScratch struct {
	closed *bool
}

func (c *closingScratch) Close() error {
	*c.closed = true

	return nil
}

func TestScratchRegistryEnsureCreatesOnce(t *testing.T) {
	r := NewScratchRegistry()
	calls := 0
	factory := func() (any, error) {
		calls++

		return "scratch", nil
	}

	tr := &stubTrack{id: 1}

	s1, err := r.Ensure(tr, factory)
	require.NoError(t, err)
	assert.Equal(t, "scratch", s1)

	s2, err := r.Ensure(tr, factory)
	require.NoError(t, err)
	assert.Equal(t, "scratch", s2)
	assert.Equal(t, 1, calls)
}

func TestScratchRegistryViewMiss(t *testing.T) {
	r := NewScratchRegistry()

	_, ok := r.View(99)
	assert.False(t, ok)
}

func TestScratchRegistryEraseClosesScratch(t *testing.T) {
	r := NewScratchRegistry()
	closed := false
	tr := &stubTrack{id: 1}

	_, err := r.Ensure(tr, func() (any, error) {
		return &closingScratch{closed: &closed}, nil
	})
	require.NoError(t, err)

	r.Erase(1)
	assert.True(t, closed)
	assert.Equal(t, 0, r.Len())

	// idempotent
	r.Erase(1)
}

func TestScratchRegistryClearClosesAll(t *testing.T) {
	r := NewScratchRegistry()
	closedA, closedB := false, false

	_, _ = r.Ensure(&stubTrack{id: 1}, func() (any, error) { return &closingScratch{closed: &closedA}, nil })
	_, _ = r.Ensure(&stubTrack{id: 2}, func() (any, error) { return &closingScratch{closed: &closedB}, nil })

	r.Clear()

	assert.True(t, closedA)
	assert.True(t, closedB)
	assert.Equal(t, 0, r.Len())
}

func TestScratchRegistryAllReturnsLatestTrackHandle(t *testing.T) {
	r := NewScratchRegistry()
	tr1 := &stubTrack{id: 1}
	_, err := r.Ensure(tr1, func() (any, error) { return "x", nil })
	require.NoError(t, err)

	tr1again := &stubTrack{id: 1, history: []Observation{{Timestamp: FrameTimestamp{FrameNumber: 5}}}}
	_, err = r.Ensure(tr1again, func() (any, error) { return "unused", nil })
	require.NoError(t, err)

	all := r.All()
	require.Len(t, all, 1)
	assert.Equal(t, "x", all[0].scratch)
	assert.Same(t, tr1again, all[0].track)
}
