package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterSpacesCalls(t *testing.T) {
	interval := 50 * time.Millisecond
	l := New(interval)
	ctx := context.Background()

	var stamps []time.Time
	for i := 0; i < 3; i++ {
		require.NoError(t, l.Wait(ctx))
		stamps = append(stamps, time.Now())
	}

	for i := 1; i < len(stamps); i++ {
		gap := stamps[i].Sub(stamps[i-1])
		assert.GreaterOrEqual(t, gap, interval-5*time.Millisecond, "gap between call %d and %d", i-1, i)
	}
}

func TestLimiterFirstCallIsImmediate(t *testing.T) {
	l := New(time.Hour)

	start := time.Now()
	require.NoError(t, l.Wait(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestLimiterHonorsCancellation(t *testing.T) {
	l := New(time.Hour)
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	err := l.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLimiterSharedAcrossGoroutines(t *testing.T) {
	interval := 30 * time.Millisecond
	l := New(interval)
	ctx := context.Background()

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, l.Wait(ctx))
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, time.Since(start), 3*interval-5*time.Millisecond)
}

func TestLimiterZeroIntervalNeverBlocks(t *testing.T) {
	l := New(0)

	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, l.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestSleepZero(t *testing.T) {
	assert.NoError(t, Sleep(context.Background(), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Second), context.Canceled)
}
