// Package worker holds the background maintenance jobs.
package worker

import (
	"context"
	"log"
	"time"
)

// Ledger is the slice of the refresh-token store the sweeper needs.
type Ledger interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Sweeper periodically purges expired refresh tokens. Revoked-but-unexpired
// rows are left alone so the audit trail survives until natural expiry.
type Sweeper struct {
	ledger     Ledger
	interval   time.Duration
	errorRetry time.Duration

	now func() time.Time
}

func NewSweeper(ledger Ledger, interval, errorRetry time.Duration) *Sweeper {
	return &Sweeper{
		ledger:     ledger,
		interval:   interval,
		errorRetry: errorRetry,
		now:        time.Now,
	}
}

// Run sweeps immediately, then on every tick until the context is
// cancelled. A failed sweep only shortens the wait before the next attempt;
// it never stops the loop or propagates out.
func (s *Sweeper) Run(ctx context.Context) {
	log.Printf("token_sweeper_started interval=%s", s.interval)

	wait := s.sweep(ctx)
	for {
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Printf("token_sweeper_stopped")
			return
		case <-timer.C:
			wait = s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) time.Duration {
	deleted, err := s.ledger.DeleteExpired(ctx, s.now().UTC())
	if err != nil {
		log.Printf("token_sweep_failed error=%v retry_in=%s", err, s.errorRetry)
		return s.errorRetry
	}
	if deleted > 0 {
		log.Printf("token_sweep_done deleted=%d", deleted)
	}
	return s.interval
}
