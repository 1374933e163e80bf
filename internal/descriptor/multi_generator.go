package descriptor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// MultiGenerator fans a single frame/track stream out to N inner
// generators that share one frame buffer and one worker pool, amortizing
// per-step setup. Grounded on the teacher's Orchestrator
// (internal/sync/orchestrator.go), which fans one sync run out across
// multiple drives, each driven independently but coordinated from one
// call; here the fan-out is frame-synchronous rather than per-drive
// goroutines, since children must share one dispatch batch per step.
type MultiGenerator struct {
	id       string
	children []*Generator
	frames   *FrameBuffer
	pool     *workerPool

	settings Settings
	started  bool
	counter  uint64
	logger   *slog.Logger
}

// NewMultiGenerator constructs an empty composite generator. Add children
// with AddChild before the first Step.
func NewMultiGenerator(settings Settings, logger *slog.Logger) (*MultiGenerator, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &MultiGenerator{
		id:       uuid.NewString(),
		frames:   NewFrameBuffer(settings.FrameBufferLength, settings.BufferContentCopy),
		settings: settings,
		logger:   logger,
	}, nil
}

// AddChild registers an inner generator to share this composite's frame
// buffer and worker pool. Children must be added before the first Step;
// afterward AddChild returns ErrGeneratorFrozen.
func (m *MultiGenerator) AddChild(child *Generator) error {
	if m.started {
		return ErrGeneratorFrozen
	}

	child.isChild = true
	child.frames = m.frames
	child.externalPool = nil // bound lazily in ensurePool, once threading is known

	m.children = append(m.children, child)

	return nil
}

func (m *MultiGenerator) ensurePool() {
	if m.pool == nil && m.settings.ThreadCount > 1 {
		m.pool = newWorkerPool(m.settings.ThreadCount)
		for _, c := range m.children {
			c.externalPool = m.pool
		}
	}
}

// Step pushes the frame once into the shared buffer, runs every child's
// OnFrame in order (stopping on first error), builds one combined task
// batch from every child's per-track policy, dispatches it as a single
// unified batch, then runs every child's OnFinal in order and finalizes
// each child's emission buffer independently.
func (m *MultiGenerator) Step(ctx context.Context, frame Frame, active, terminated []Track) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.started = true
	m.ensurePool()

	m.frames.Push(frame)

	sampled := m.counter%uint64(m.settings.SamplingRate) == 0
	m.counter++

	for _, c := range m.children {
		c.beginChildStep()
	}

	if !sampled {
		return nil
	}

	for _, c := range m.children {
		if err := c.runFrameHook(); err != nil {
			return err
		}
	}

	var combined []task

	for _, c := range m.children {
		tasks, err := c.buildTasks(active, terminated)
		if err != nil {
			return err
		}

		combined = append(combined, tasks...)
	}

	if !m.dispatch(combined) {
		return fmt.Errorf("%w: step had failing tasks", ErrTaskFailed)
	}

	for _, c := range m.children {
		if err := c.runFinalHook(); err != nil {
			return err
		}
	}

	for _, c := range m.children {
		c.purgeTerminated(terminated)

		if err := c.finalizeEmission(); err != nil {
			return err
		}
	}

	return nil
}

func (m *MultiGenerator) dispatch(tasks []task) bool {
	if len(tasks) == 0 {
		return true
	}

	if m.settings.ThreadCount <= 1 {
		ok := true

		for _, t := range tasks {
			if err := t.execute(); err != nil {
				m.logger.Error("task failed", slog.String("generator_id", m.id), slog.Any("error", err))

				ok = false
			}
		}

		return ok
	}

	return m.pool.submit(tasks)
}

// GetDescriptors returns the union of every child's emitted descriptors
// from the most recent Step (empty if that step was skipped by the
// sampling gate), in child-registration order.
func (m *MultiGenerator) GetDescriptors() []Descriptor {
	var out []Descriptor

	for _, c := range m.children {
		out = append(out, c.GetDescriptors()...)
	}

	return out
}

// Reset propagates to every child in order, then clears the shared frame
// buffer and step counter.
func (m *MultiGenerator) Reset() error {
	for _, c := range m.children {
		if err := c.Reset(); err != nil {
			return err
		}
	}

	m.frames.Reset()
	m.counter = 0

	return nil
}

// TerminateAllTracks synthesizes terminate tasks for every child's
// remaining tracked scratch and dispatches them as one combined batch,
// then clears every child's registry. Mirrors Generator.TerminateAllTracks
// but amortizes the dispatch the same way Step does.
func (m *MultiGenerator) TerminateAllTracks() error {
	m.ensurePool()

	var combined []task

	for _, c := range m.children {
		for _, e := range c.registry.All() {
			combined = append(combined, task{action: taskTerminate, track: e.track, generator: c, scratch: e.scratch})
		}
	}

	if !m.dispatch(combined) {
		return fmt.Errorf("%w: terminate_all_tracks had failing tasks", ErrTaskFailed)
	}

	for _, c := range m.children {
		c.registry.Clear()
	}

	return nil
}

// Close releases the shared worker pool, if one was created.
func (m *MultiGenerator) Close() {
	if m.pool != nil {
		m.pool.close()
		m.pool = nil
	}
}
