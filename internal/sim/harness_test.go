package sim

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonimelisma/descriptorgen/internal/descriptors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunDrivesTrackStatGenerator(t *testing.T) {
	g := descriptors.NewTrackStatGenerator(discardLogger())
	defer g.Close()

	cfg := Config{Tracks: 5, Frames: 50, Seed: 1, TrackLifetime: 8}

	report, err := Run(context.Background(), g, cfg, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 50, report.FramesProcessed)
	assert.Equal(t, 5, report.TracksSpawned)
	assert.Positive(t, report.DescriptorsEmitted)
}

func TestRunDrivesFrameStatGenerator(t *testing.T) {
	g := descriptors.NewFrameStatGenerator(discardLogger())
	defer g.Close()

	cfg := Config{Tracks: 0, Frames: 10, Seed: 2, TrackLifetime: 4}

	report, err := Run(context.Background(), g, cfg, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 10, report.FramesProcessed)
	assert.Equal(t, 10, report.DescriptorsEmitted)
}

func TestRunHonorsContextCancellation(t *testing.T) {
	g := descriptors.NewFrameStatGenerator(discardLogger())
	defer g.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := Config{Tracks: 0, Frames: 5, Seed: 1, TrackLifetime: 4}

	_, err := Run(ctx, g, cfg, discardLogger())
	assert.Error(t, err)
}
