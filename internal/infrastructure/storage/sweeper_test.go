package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpirer struct {
	mu      sync.Mutex
	cutoffs []time.Time
	removed int64
	err     error
	swept   chan struct{}
}

func (f *fakeExpirer) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	f.cutoffs = append(f.cutoffs, cutoff)
	f.mu.Unlock()
	if f.swept != nil {
		select {
		case f.swept <- struct{}{}:
		default:
		}
	}
	return f.removed, f.err
}

func TestSweepUsesTTLCutoff(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	target := &fakeExpirer{removed: 3}
	sweeper := NewSweeper(target, 24*time.Hour, time.Hour, log)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	sweeper.now = func() time.Time { return now }

	removed, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	require.Len(t, target.cutoffs, 1)
	assert.Equal(t, now.Add(-24*time.Hour), target.cutoffs[0])
	assert.Equal(t, int64(3), hook.LastEntry().Data["removed"])
}

func TestSweepReportsFailure(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	target := &fakeExpirer{err: errors.New("db down")}

	_, err := NewSweeper(target, time.Hour, time.Hour, log).Sweep(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "Storage sweep failed", hook.LastEntry().Message)
}

func TestRunSweepsUntilCanceled(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	target := &fakeExpirer{swept: make(chan struct{}, 1)}
	sweeper := NewSweeper(target, time.Hour, 5*time.Millisecond, log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-target.swept:
		case <-time.After(time.Second):
			t.Fatal("sweeper did not run")
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestRunDisabledWithoutTTL(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	target := &fakeExpirer{}
	NewSweeper(target, 0, time.Millisecond, log).Run(context.Background())
	assert.Empty(t, target.cutoffs)
}
