package proptext

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"
)

const maxJitter = 100 * time.Millisecond

// ProcessPending runs ExtractTexts for batches of up to batch propositions
// every interval until ctx is done. The returned function blocks until the
// loop has stopped.
func (s *Service) ProcessPending(ctx context.Context, interval time.Duration, batch int) func() {
	interval = max(interval, maxJitter)

	var (
		jitterMax = min(maxJitter, interval/2)
		ticker    = time.NewTicker(interval - jitterMax/2)
		wg        = new(sync.WaitGroup)
	)
	wg.Go(func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if jitterMax > 0 {
					if err := jitter(ctx, rand.N(jitterMax)); err != nil {
						return
					}
				}

				stats, err := s.ExtractTexts(ctx, batch)
				if err != nil {
					if !errors.Is(err, context.Canceled) {
						s.logger.Error("process pending propositions", zap.Error(err))
					}
					continue
				}
				if stats.Total() > 0 {
					s.logger.Info("processed pending propositions", zap.Int("total", stats.Total()))
				}
			}
		}
	})

	return func() {
		wg.Wait()
		s.logger.Info("stopped processing propositions")
	}
}

func jitter(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
