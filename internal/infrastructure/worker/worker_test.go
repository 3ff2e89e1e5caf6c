package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RunsJobOnStartAndEveryInterval(t *testing.T) {
	clock := clockwork.NewFakeClock()
	manager := NewManager(clock)

	var calls atomic.Int32
	manager.Register(Job{
		Name:     "counter",
		Interval: time.Minute,
		Fn: func(ctx context.Context) error {
			calls.Add(1)
			return nil
		},
	})
	manager.Start()
	defer manager.Shutdown(time.Second)

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	clock.Advance(time.Minute)
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)

	clock.Advance(time.Minute)
	require.Eventually(t, func() bool { return calls.Load() == 3 }, time.Second, 5*time.Millisecond)
}

func TestManager_JobFailureKeepsWorkerRunning(t *testing.T) {
	clock := clockwork.NewFakeClock()
	manager := NewManager(clock)

	var calls atomic.Int32
	manager.Register(Job{
		Name:     "flaky",
		Interval: time.Minute,
		Fn: func(ctx context.Context) error {
			n := calls.Add(1)
			if n == 1 {
				panic("boom")
			}
			return errors.New("still failing")
		},
	})
	manager.Start()
	defer manager.Shutdown(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	clock.Advance(time.Minute)
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestManager_ShutdownCancelsJobContext(t *testing.T) {
	manager := NewManager(clockwork.NewFakeClock())

	started := make(chan struct{})
	manager.Register(Job{
		Name:     "blocking",
		Interval: time.Hour,
		Fn: func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			return ctx.Err()
		},
	})
	manager.Start()
	<-started

	done := make(chan struct{})
	go func() {
		manager.Shutdown(time.Second)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown did not return")
	}
}

func TestOwnerInvariantAuditJob(t *testing.T) {
	t.Run("reports offending leagues without failing", func(t *testing.T) {
		var called bool
		job := NewOwnerInvariantAuditJob(func(ctx context.Context) ([]uuid.UUID, error) {
			called = true
			return []uuid.UUID{uuid.New(), uuid.New()}, nil
		})

		assert.Equal(t, "owner_invariant_audit", job.Name)
		assert.Equal(t, 10*time.Minute, job.Interval)
		assert.NoError(t, job.Fn(context.Background()))
		assert.True(t, called)
	})

	t.Run("clean database", func(t *testing.T) {
		job := NewOwnerInvariantAuditJob(func(ctx context.Context) ([]uuid.UUID, error) {
			return nil, nil
		})
		assert.NoError(t, job.Fn(context.Background()))
	})

	t.Run("query error is returned", func(t *testing.T) {
		job := NewOwnerInvariantAuditJob(func(ctx context.Context) ([]uuid.UUID, error) {
			return nil, errors.New("db down")
		})
		assert.EqualError(t, job.Fn(context.Background()), "db down")
	})
}

func TestHealthCheckJob(t *testing.T) {
	job := NewHealthCheckJob(func(ctx context.Context) error { return errors.New("ping failed") })

	assert.Equal(t, "health_check", job.Name)
	assert.Error(t, job.Fn(context.Background()))
}
