package descriptor

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTarget struct {
	calls int32
}

func (r *recordingTarget) dispatchUpdate(Track, any) error {
	atomic.AddInt32(&r.calls, 1)

	return nil
}

func (r *recordingTarget) dispatchTerminate(Track, any) error {
	atomic.AddInt32(&r.calls, 1)

	return nil
}

type failingTarget struct{}

func (failingTarget) dispatchUpdate(Track, any) error    { return assert.AnError }
func (failingTarget) dispatchTerminate(Track, any) error { return assert.AnError }

type panickingTarget struct{}

func (panickingTarget) dispatchUpdate(Track, any) error {
	panic("boom")
}

func (panickingTarget) dispatchTerminate(Track, any) error { return nil }

func TestWorkerPoolRoundRobinAndJoin(t *testing.T) {
	p := newWorkerPool(2)
	defer p.close()

	rt := &recordingTarget{}
	tasks := []task{
		{action: taskUpdate, track: &stubTrack{id: 1}, generator: rt},
		{action: taskUpdate, track: &stubTrack{id: 2}, generator: rt},
		{action: taskUpdate, track: &stubTrack{id: 3}, generator: rt},
	}

	ok := p.submit(tasks)
	assert.True(t, ok)
	assert.Equal(t, int32(3), atomic.LoadInt32(&rt.calls))
}

func TestWorkerPoolReportsFailure(t *testing.T) {
	p := newWorkerPool(2)
	defer p.close()

	tasks := []task{
		{action: taskUpdate, track: &stubTrack{id: 1}, generator: failingTarget{}},
	}

	ok := p.submit(tasks)
	assert.False(t, ok)
}

func TestWorkerPoolRecoversPanic(t *testing.T) {
	p := newWorkerPool(1)
	defer p.close()

	tasks := []task{
		{action: taskUpdate, track: &stubTrack{id: 1}, generator: panickingTarget{}},
	}

	ok := p.submit(tasks)
	assert.False(t, ok)
}

func TestWorkerPoolParallelDisjointTracksOverlap(t *testing.T) {
	// Two workers, two long-running tasks assigned round-robin (i%2) to
	// distinct workers, must run concurrently rather than serially.
	p := newWorkerPool(2)
	defer p.close()

	var active int32

	var maxActive int32

	slow := slowTarget{active: &active, maxActive: &maxActive, sleep: 40 * time.Millisecond}
	tasks := []task{
		{action: taskUpdate, track: &stubTrack{id: 1}, generator: slow},
		{action: taskUpdate, track: &stubTrack{id: 2}, generator: slow},
	}

	start := time.Now()
	ok := p.submit(tasks)
	elapsed := time.Since(start)

	require.True(t, ok)
	assert.Less(t, elapsed, 80*time.Millisecond)
	assert.Equal(t, int32(2), atomic.LoadInt32(&maxActive))
}

type slowTarget struct {
	active    *int32
	maxActive *int32
	sleep     time.Duration
}

func (s slowTarget) dispatchUpdate(Track, any) error {
	n := atomic.AddInt32(s.active, 1)

	for {
		cur := atomic.LoadInt32(s.maxActive)
		if n <= cur || atomic.CompareAndSwapInt32(s.maxActive, cur, n) {
			break
		}
	}

	time.Sleep(s.sleep)
	atomic.AddInt32(s.active, -1)

	return nil
}

func (s slowTarget) dispatchTerminate(Track, any) error { return nil }

func TestWorkerPoolEmptyQueueWorkerFinishesImmediately(t *testing.T) {
	p := newWorkerPool(3)
	defer p.close()

	rt := &recordingTarget{}
	tasks := []task{
		{action: taskUpdate, track: &stubTrack{id: 1}, generator: rt},
	}

	ok := p.submit(tasks)
	assert.True(t, ok)

	// submit again to make sure idle workers didn't get stuck mid-wait.
	ok = p.submit(tasks)
	assert.True(t, ok)
	assert.Equal(t, int32(2), atomic.LoadInt32(&rt.calls))
}
