package auth

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// StartSweeper removes expired sessions from store every interval until ctx
// is cancelled. It returns a channel closed when the loop exits.
func StartSweeper(ctx context.Context, store Store, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := store.Sweep(ctx)
				if err != nil {
					log.Warn().Err(err).Msg("session sweep failed")
					continue
				}
				if n > 0 {
					log.Debug().Int64("removed", n).Msg("expired sessions removed")
				}
			}
		}
	}()
	return done
}
