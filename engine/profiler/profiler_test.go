package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfilerReportsAtInterval(t *testing.T) {
	start := time.Unix(0, 0)
	now := start
	var buf bytes.Buffer
	p := NewProfiler(
		WithInterval(time.Second),
		WithClock(func() time.Time { return now }),
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
	)

	for i := 1; i < 60; i++ {
		now = start.Add(time.Duration(i) * time.Second / 60)
		assert.False(t, p.Tick())
	}
	now = start.Add(time.Second)
	assert.True(t, p.Tick())

	assert.InDelta(t, 60, p.Last().FPS, 0.5)
	assert.Positive(t, p.Last().SysMB)
	assert.Contains(t, buf.String(), "fps=")
	assert.False(t, p.Tick(), "counter restarts after a report")
}
