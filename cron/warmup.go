package cron

import (
	"context"
	"log"
	"time"

	"slotbook/services/booking"
)

// StartCacheWarmup refreshes the sheet list and directory on start and then
// hourly, so the first client after a quiet spell does not pay for a cold
// metadata cache.
func StartCacheWarmup(ctx context.Context, engine booking.BookingService) {
	warm := func() {
		warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := engine.Warm(warmCtx); err != nil {
			log.Printf("Cache warmup failed: %v", err)
		}
	}

	go func() {
		warm()

		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("Cache warmup shutdown signal received.")
				return
			case <-ticker.C:
				warm()
			}
		}
	}()
}
