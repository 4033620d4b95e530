package scheduler_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/logger"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/scheduler"
)

func TestNew_RejectsNonPositiveInterval(t *testing.T) {
	t.Parallel()

	_, err := scheduler.New(func(context.Context) {}, 0, false, logger.NewNop())
	require.ErrorIs(t, err, scheduler.ErrInvalidInterval)
}

func TestScheduler_RunOnStart(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32
	s, err := scheduler.New(func(context.Context) { runs.Add(1) }, time.Hour, true, logger.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Start())
	s.Stop()

	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_TriggerAllowsOverlap(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	var running, peak atomic.Int32
	pass := func(context.Context) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		<-release
		running.Add(-1)
	}

	s, err := scheduler.New(pass, time.Hour, false, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.Start())

	s.Trigger()
	s.Trigger()
	assert.Eventually(t, func() bool { return running.Load() == 2 }, time.Second, 5*time.Millisecond)

	close(release)
	s.Stop()
	assert.Equal(t, int32(2), peak.Load())
}

func TestScheduler_StopWaitsForInFlightPass(t *testing.T) {
	t.Parallel()

	var finished atomic.Bool
	pass := func(context.Context) {
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
	}

	s, err := scheduler.New(pass, time.Hour, false, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.Start())

	s.Trigger()
	s.Stop()
	assert.True(t, finished.Load())
}
