package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingLedger struct {
	mu    sync.Mutex
	calls int
	errs  []error
}

func (l *countingLedger) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if len(l.errs) > 0 {
		err := l.errs[0]
		l.errs = l.errs[1:]
		if err != nil {
			return 0, err
		}
	}
	return 1, nil
}

func (l *countingLedger) callCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func TestSweeper_SweepsImmediatelyAndOnTicks(t *testing.T) {
	ledger := &countingLedger{}
	s := NewSweeper(ledger, 20*time.Millisecond, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return ledger.callCount() >= 3 },
		time.Second, 5*time.Millisecond, "expected the initial sweep plus ticks")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on context cancellation")
	}
}

func TestSweeper_ErrorShortensRetryAndKeepsRunning(t *testing.T) {
	ledger := &countingLedger{errs: []error{errors.New("db gone")}}
	s := NewSweeper(ledger, time.Hour, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	// The first sweep fails; the retry must land on the short error
	// interval, not the hour-long one.
	assert.Eventually(t, func() bool { return ledger.callCount() >= 2 },
		time.Second, 5*time.Millisecond)
}

func TestSweeper_StopsBeforeFirstTick(t *testing.T) {
	ledger := &countingLedger{}
	s := NewSweeper(ledger, time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return ledger.callCount() == 1 },
		time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on context cancellation")
	}
	assert.Equal(t, 1, ledger.callCount())
}
