package scheduler_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reshetovitsme/tg-channel-relay/internal/scheduler"
)

func TestEveryRunsUntilCancelled(t *testing.T) {
	s, err := scheduler.New(nil)
	require.NoError(t, err)

	var runs atomic.Int32
	require.NoError(t, s.Every("counter", 20*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestEveryRejectsInvalidInterval(t *testing.T) {
	s, err := scheduler.New(nil)
	require.NoError(t, err)

	err = s.Every("broken", 0, func(context.Context) error { return nil })
	assert.Error(t, err)
}
