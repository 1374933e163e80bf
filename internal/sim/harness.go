// Package sim provides a deterministic synthetic frame/track generator
// that drives a descriptor-generation pipeline the way a real upstream
// tracker would: push frames, activate and terminate tracks on a
// schedule, step the generator, and collect results. It is grounded on
// the teacher's Engine.RunOnce (internal/sync/engine.go), which documents
// its own pipeline as a numbered sequence of steps and returns a
// SyncReport summarizing the run — here, Report plays that role.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/tonimelisma/descriptorgen/internal/descriptor"
)

// Config parameterizes one simulation run.
type Config struct {
	Tracks        int
	Frames        int
	Seed          int64
	TrackLifetime int
}

// Report summarizes a completed run, mirroring the shape of the teacher's
// SyncReport (counts plus duration). A terminal error is returned by Run
// alongside the Report, not stored in it.
type Report struct {
	FramesProcessed    int
	TracksSpawned      int
	DescriptorsEmitted int
	Duration           time.Duration
}

// Runner is the subset of descriptor.Generator / descriptor.MultiGenerator
// the harness needs to drive. Both satisfy it with identical method sets,
// so the harness works unmodified whether wired to a single generator or a
// MultiGenerator fan-out.
type Runner interface {
	Step(ctx context.Context, frame descriptor.Frame, active, terminated []descriptor.Track) error
	GetDescriptors() []descriptor.Descriptor
	TerminateAllTracks() error
}

// payload is the synthetic frame content; its scalar Value is what the
// sample descriptor generators in internal/descriptors summarize.
type payload struct {
	value float64
}

func (p payload) Value() float64 { return p.value }

func (p payload) Clone() descriptor.FramePayload { return p }

// track is the synthetic tracked object driven by the harness.
type track struct {
	id      uint64
	history []descriptor.Observation
}

func (t *track) ID() uint64 { return t.id }

func (t *track) History() []descriptor.Observation { return t.history }

// Run drives runner through cfg.Frames synthetic steps, spawning up to
// cfg.Tracks tracks over the run and terminating each after
// cfg.TrackLifetime frames, then flushes any still-active tracks via
// TerminateAllTracks. Descriptors are collected after every step; the
// caller is expected to have wired runner to a sink (e.g. its own
// in-memory slice) if it wants incremental access — Report only reports
// final counts.
func Run(ctx context.Context, runner Runner, cfg Config, logger *slog.Logger) (*Report, error) {
	if logger == nil {
		logger = slog.Default()
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	report := &Report{}
	started := time.Now()

	live := make(map[uint64]*track)
	spawnEvery := 1
	if cfg.Tracks > 0 && cfg.Frames > cfg.Tracks {
		spawnEvery = cfg.Frames / cfg.Tracks
	}

	var nextID uint64

	for frameNum := 1; frameNum <= cfg.Frames; frameNum++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if report.TracksSpawned < cfg.Tracks && (frameNum%spawnEvery == 0 || len(live) == 0) {
			nextID++

			t := &track{id: nextID}
			live[nextID] = t
			report.TracksSpawned++
		}

		ts := descriptor.FrameTimestamp{FrameNumber: uint64(frameNum), TimeUsec: int64(frameNum) * 33_000}
		frame := descriptor.Frame{Timestamp: ts, Payload: payload{value: rng.Float64()}}

		var active, terminated []descriptor.Track

		for id, t := range live {
			t.history = append(t.history, descriptor.Observation{Timestamp: ts})

			if len(t.history) >= cfg.TrackLifetime {
				terminated = append(terminated, t)
				delete(live, id)
			} else {
				active = append(active, t)
			}
		}

		if err := runner.Step(ctx, frame, active, terminated); err != nil {
			return report, fmt.Errorf("sim: step %d: %w", frameNum, err)
		}

		report.FramesProcessed++
		report.DescriptorsEmitted += len(runner.GetDescriptors())
	}

	beforeFinal := len(runner.GetDescriptors())

	if err := runner.TerminateAllTracks(); err != nil {
		return report, fmt.Errorf("sim: final terminate: %w", err)
	}

	// TerminateAllTracks appends to the same emission buffer the last Step
	// left in place rather than clearing it, so only the delta is new.
	report.DescriptorsEmitted += len(runner.GetDescriptors()) - beforeFinal
	report.Duration = time.Since(started)

	logger.Info("simulation complete",
		slog.Int("frames_processed", report.FramesProcessed),
		slog.Int("tracks_spawned", report.TracksSpawned),
		slog.Int("descriptors_emitted", report.DescriptorsEmitted),
		slog.Duration("duration", report.Duration),
	)

	return report, nil
}
