package driver

import (
	"context"
	"sync/atomic"
	"time"
)

// progressTicker periodically reports exploration progress (§4.13
// step 5) until ctx is cancelled.
func progressTicker(ctx context.Context, reporter Reporter, statesExplored, queued *atomic.Int64) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reporter.Progress(int(statesExplored.Load()), int(queued.Load()))
		}
	}
}
