package main

import (
	"context"
	"time"

	"github.com/ericogr/chimera-battle/internal/constants"
	"github.com/ericogr/chimera-battle/internal/logging"
	"github.com/ericogr/chimera-battle/internal/service"
)

const (
	scanInterval    = time.Second
	scanParallelism = 4
)

// startTimeoutScanner periodically forces enemy turns whose AI deadline
// passed, e.g. after a crash in the middle of a turn.
func startTimeoutScanner(ctx context.Context, battles *service.Battles, finder service.TimedOutFinder) {
	go func() {
		ticker := time.NewTicker(scanInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			n, err := battles.HandleTimedOutBattles(ctx, finder, scanParallelism)
			if err != nil {
				logging.Error("timeout scanner failed", err, nil)
				continue
			}
			if n > 0 {
				logging.Info("timeout scanner forced enemy turns", logging.Fields{constants.LogFieldCount: n})
			}
		}
	}()
}
