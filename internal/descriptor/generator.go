package descriptor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Generator orchestrates one descriptor-generation pipeline: frame
// buffering, per-track task generation, worker-pool dispatch, and
// descriptor emission, driven by a concrete Hooks implementation. Its
// Step algorithm is grounded on the teacher's Engine.RunOnce
// (internal/sync/engine.go), which documents its own pipeline as a
// numbered sequence of steps in exactly this style.
type Generator struct {
	id       string
	hooks    Hooks
	settings Settings

	configured bool
	isChild    bool

	frames   *FrameBuffer
	registry *ScratchRegistry
	emission *emissionBuffer
	pool     *workerPool

	// externalPool is set by MultiGenerator.AddChild so that a child's
	// dispatch (reached only via its own TerminateAllTracks — Step itself
	// is blocked for children) submits to the shared pool instead of
	// lazily creating its own.
	externalPool *workerPool

	counter uint64
	logger  *slog.Logger
}

// NewGenerator constructs a standalone Generator using hooks' default
// settings. Call Configure to override before the first Step.
func NewGenerator(hooks Hooks, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}

	g := &Generator{
		id:       uuid.NewString(),
		hooks:    hooks,
		registry: NewScratchRegistry(),
		emission: &emissionBuffer{},
		logger:   logger,
	}

	_ = g.Configure(hooks.DefaultSettings())

	return g
}

// ID returns the generator's instance identifier, used only for logging
// attribution when multiple generators share one process.
func (g *Generator) ID() string {
	return g.id
}

// Configure validates settings and, only if valid, adopts them. On
// rejection the generator's prior settings (or zero value, if never
// configured) are left untouched, matching the configuration-error
// contract in SPEC_FULL.md §7.
func (g *Generator) Configure(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	if g.pool != nil && s.ThreadCount != g.settings.ThreadCount {
		g.pool.close()
		g.pool = nil
	}

	g.settings = s
	g.frames = NewFrameBuffer(s.FrameBufferLength, s.BufferContentCopy)
	g.configured = true

	return nil
}

// DefaultSettings returns the settings the generator's hooks declare as
// their default.
func (g *Generator) DefaultSettings() Settings {
	return g.hooks.DefaultSettings()
}

// Step runs one full cycle of the algorithm described in SPEC_FULL.md §4.5:
// push the frame, apply the sampling gate, run the frame hook, build
// per-track tasks for terminated and active tracks, dispatch them across
// the worker pool (or inline for a single-threaded generator), run the
// final hook, purge terminated scratch, and validate/tag the emission
// buffer.
func (g *Generator) Step(ctx context.Context, frame Frame, active, terminated []Track) error {
	if !g.configured {
		return ErrNotConfigured
	}

	if g.isChild {
		return fmt.Errorf("descriptor: Step called directly on a MultiGenerator child")
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	g.frames.Push(frame)
	g.emission.reset()

	sampled := g.counter%uint64(g.settings.SamplingRate) == 0
	g.counter++

	if !sampled {
		return nil
	}

	if err := g.hooks.OnFrame(); err != nil {
		return fmt.Errorf("%w: on_frame: %w", ErrHookFailed, err)
	}

	tasks, err := g.buildTasks(active, terminated)
	if err != nil {
		return err
	}

	if !g.dispatch(tasks) {
		return fmt.Errorf("%w: step had failing tasks", ErrTaskFailed)
	}

	if err := g.hooks.OnFinal(); err != nil {
		return fmt.Errorf("%w: on_final: %w", ErrHookFailed, err)
	}

	g.purgeTerminated(terminated)

	return g.finalizeEmission()
}

// GetDescriptors returns a snapshot of the descriptors emitted by the most
// recent Step (empty if that step was skipped by the sampling gate), plus
// any emitted by a later TerminateAllTracks. The next Step clears the
// buffer.
func (g *Generator) GetDescriptors() []Descriptor {
	return g.emission.snapshot()
}

// Reset clears the frame buffer, drops all scratch, restarts the step
// counter, then invokes OnReset — clear-then-notify order, per the
// resolved Open Question in SPEC_FULL.md §9.
func (g *Generator) Reset() error {
	g.frames.Reset()
	g.registry.Clear()
	g.emission.reset()
	g.counter = 0

	if err := g.hooks.OnReset(); err != nil {
		return fmt.Errorf("%w: on_reset: %w", ErrHookFailed, err)
	}

	return nil
}

// TerminateAllTracks synthesizes a terminate task for every track still
// held in the registry and runs them, then clears the registry. It is not
// gated by sampling and is the required end-of-stream cleanup call — see
// SPEC_FULL.md §9 on gated-out terminations.
func (g *Generator) TerminateAllTracks() error {
	entries := g.registry.All()
	if len(entries) == 0 {
		return nil
	}

	tasks := make([]task, 0, len(entries))
	for _, e := range entries {
		tasks = append(tasks, task{action: taskTerminate, track: e.track, generator: g, scratch: e.scratch})
	}

	if !g.dispatch(tasks) {
		return fmt.Errorf("%w: terminate_all_tracks had failing tasks", ErrTaskFailed)
	}

	g.registry.Clear()

	return nil
}

// Close releases the worker pool, if one was created. Safe to call on a
// generator that never allocated a pool (ThreadCount stayed 1) or that is
// a MultiGenerator child (the pool belongs to the parent).
func (g *Generator) Close() {
	if g.pool != nil {
		g.pool.close()
		g.pool = nil
	}
}

// dispatchUpdate and dispatchTerminate satisfy hookTarget so a task built
// from this generator's buildTasks always calls back into its own hooks,
// whether it runs inline, on this generator's own pool, or — for a
// MultiGenerator child — on the shared parent pool.
func (g *Generator) dispatchUpdate(track Track, scratch any) error {
	return g.hooks.OnUpdate(track, scratch)
}

func (g *Generator) dispatchTerminate(track Track, scratch any) error {
	return g.hooks.OnTerminate(track, scratch)
}

// Emit appends a descriptor to this generator's emission buffer. Hooks
// call this from OnUpdate, OnTerminate, or OnFinal; it is safe to call
// concurrently from multiple worker goroutines.
func (g *Generator) Emit(d Descriptor) {
	g.emission.append(d)
}

// LatestFrame returns the most recently pushed frame, if any.
func (g *Generator) LatestFrame() (Frame, bool) {
	return g.frames.Back()
}

// FrameAt returns the i-th oldest retained frame.
func (g *Generator) FrameAt(i int) (Frame, bool) {
	return g.frames.At(i)
}

// buildTasks implements SPEC_FULL.md §4.5 steps 4-5: a terminate task per
// terminated track (if ProcessTracks) and an update task per active track,
// inducing scratch via OnNewTrack on first sight.
func (g *Generator) buildTasks(active, terminated []Track) ([]task, error) {
	if !g.settings.ProcessTracks {
		return nil, nil
	}

	tasks := make([]task, 0, len(active)+len(terminated))

	for _, tr := range terminated {
		scratch, _ := g.registry.View(tr.ID())
		tasks = append(tasks, task{action: taskTerminate, track: tr, generator: g, scratch: scratch})
	}

	for _, tr := range active {
		scratch, err := g.registry.Ensure(tr, func() (any, error) {
			return g.hooks.OnNewTrack(tr)
		})
		if err != nil {
			return nil, fmt.Errorf("%w: on_new_track: %w", ErrHookFailed, err)
		}

		tasks = append(tasks, task{action: taskUpdate, track: tr, generator: g, scratch: scratch})
	}

	return tasks, nil
}

// beginChildStep clears this generator's emission buffer. Used by
// MultiGenerator in place of the frame-push-and-clear half of Step, since
// the frame itself is pushed once into the shared buffer by the parent.
func (g *Generator) beginChildStep() {
	g.emission.reset()
}

// runFrameHook invokes OnFrame, wrapping any error.
func (g *Generator) runFrameHook() error {
	if err := g.hooks.OnFrame(); err != nil {
		return fmt.Errorf("%w: on_frame: %w", ErrHookFailed, err)
	}

	return nil
}

// runFinalHook invokes OnFinal, wrapping any error.
func (g *Generator) runFinalHook() error {
	if err := g.hooks.OnFinal(); err != nil {
		return fmt.Errorf("%w: on_final: %w", ErrHookFailed, err)
	}

	return nil
}

// purgeTerminated drops the registry entry for every terminated track,
// after their terminate tasks have already run.
func (g *Generator) purgeTerminated(terminated []Track) {
	for _, tr := range terminated {
		g.registry.Erase(tr.ID())
	}
}

// dispatch runs tasks inline when single-threaded, otherwise lazily
// allocates this generator's own worker pool and submits to it. A child
// generator under a MultiGenerator reaches this path only through its own
// TerminateAllTracks, and then submits to the parent's shared pool; its
// Step batches are dispatched by the parent.
func (g *Generator) dispatch(tasks []task) bool {
	if len(tasks) == 0 {
		return true
	}

	if g.settings.ThreadCount <= 1 {
		ok := true

		for _, t := range tasks {
			if err := t.execute(); err != nil {
				g.logger.Error("task failed", slog.String("generator_id", g.id), slog.Any("error", err))

				ok = false
			}
		}

		return ok
	}

	if g.isChild {
		return g.externalPool.submit(tasks)
	}

	if g.pool == nil {
		g.pool = newWorkerPool(g.settings.ThreadCount)
	}

	return g.pool.submit(tasks)
}

// finalizeEmission runs safe-mode validation (discarding the whole buffer
// on failure) and, if enabled, appends the modality suffix to every
// descriptor's ID.
func (g *Generator) finalizeEmission() error {
	if g.settings.SafeMode {
		if err := g.emission.validate(); err != nil {
			g.emission.reset()

			return err
		}
	}

	if g.settings.AppendModality {
		g.emission.mu.Lock()
		for i := range g.emission.rows {
			g.emission.rows[i].ID += g.settings.ModalitySuffix
		}
		g.emission.mu.Unlock()
	}

	return nil
}
