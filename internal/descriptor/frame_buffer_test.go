package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPayload struct {
	tag     string
	cloned  bool
	clones  *int
}

func (p *stubPayload) Clone() FramePayload {
	if p.clones != nil {
		*p.clones++
	}

	return &stubPayload{tag: p.tag, cloned: true}
}

func frame(n uint64, payload FramePayload) Frame {
	return Frame{Timestamp: FrameTimestamp{FrameNumber: n}, Payload: payload}
}

func TestFrameBufferPushAndBack(t *testing.T) {
	b := NewFrameBuffer(3, false)
	assert.Equal(t, 0, b.Size())

	_, ok := b.Back()
	assert.False(t, ok)

	b.Push(frame(1, nil))
	b.Push(frame(2, nil))

	back, ok := b.Back()
	require.True(t, ok)
	assert.Equal(t, uint64(2), back.Timestamp.FrameNumber)
	assert.Equal(t, 2, b.Size())
}

func TestFrameBufferEvictsOldest(t *testing.T) {
	b := NewFrameBuffer(2, false)
	b.Push(frame(1, nil))
	b.Push(frame(2, nil))
	b.Push(frame(3, nil))

	require.Equal(t, 2, b.Size())

	at0, ok := b.At(0)
	require.True(t, ok)
	assert.Equal(t, uint64(2), at0.Timestamp.FrameNumber)

	at1, ok := b.At(1)
	require.True(t, ok)
	assert.Equal(t, uint64(3), at1.Timestamp.FrameNumber)

	_, ok = b.At(2)
	assert.False(t, ok)
}

func TestFrameBufferZeroDepthKeepsCurrentFrame(t *testing.T) {
	b := NewFrameBuffer(0, false)
	b.Push(frame(1, nil))

	back, ok := b.Back()
	require.True(t, ok)
	assert.Equal(t, uint64(1), back.Timestamp.FrameNumber)

	b.Push(frame(2, nil))

	back, ok = b.Back()
	require.True(t, ok)
	assert.Equal(t, uint64(2), back.Timestamp.FrameNumber)
	assert.Equal(t, 1, b.Size())
}

func TestFrameBufferCopyModeClones(t *testing.T) {
	clones := 0
	b := NewFrameBuffer(1, true)
	p := &stubPayload{tag: "x", clones: &clones}
	b.Push(frame(1, p))

	assert.Equal(t, 1, clones)

	back, ok := b.Back()
	require.True(t, ok)

	stored, ok := back.Payload.(*stubPayload)
	require.True(t, ok)
	assert.True(t, stored.cloned)
	assert.NotSame(t, p, stored)
}

func TestFrameBufferReset(t *testing.T) {
	b := NewFrameBuffer(2, false)
	b.Push(frame(1, nil))
	b.Reset()
	assert.Equal(t, 0, b.Size())

	_, ok := b.Back()
	assert.False(t, ok)
}
