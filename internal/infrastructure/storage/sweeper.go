package storage

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Expirer is a store that can drop entries not written since cutoff.
// Drivers without native expiry implement it so sessions still age out.
type Expirer interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Sweeper removes entries older than ttl on a fixed interval
type Sweeper struct {
	target   Expirer
	ttl      time.Duration
	interval time.Duration
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewSweeper creates a sweeper over target
func NewSweeper(target Expirer, ttl, interval time.Duration, log logrus.FieldLogger) *Sweeper {
	return &Sweeper{target: target, ttl: ttl, interval: interval, log: log, now: time.Now}
}

// Sweep runs one pass and returns the number of entries removed
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	removed, err := s.target.DeleteBefore(ctx, s.now().Add(-s.ttl))
	if err != nil {
		s.log.WithError(err).Warn("Storage sweep failed")
		return 0, err
	}
	if removed > 0 {
		s.log.WithField("removed", removed).Info("Expired storage entries removed")
	}
	return removed, nil
}

// Run sweeps immediately and then every interval until ctx is done. A
// non-positive ttl or interval disables it.
func (s *Sweeper) Run(ctx context.Context) {
	if s.ttl <= 0 || s.interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		_, _ = s.Sweep(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
