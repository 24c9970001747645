package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"slotbook/database/sheets"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Sheets    bool      `json:"sheets"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory
// state. The sheets probe lists worksheets, which also keeps the service
// account token warm.
func StartHealthMonitor(redisClient *redis.Client, store sheets.Store) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

			redisHealthy := redisClient.Ping(ctx).Err() == nil
			_, err := store.ListSheets(ctx)
			sheetsHealthy := err == nil

			cancel()

			healthMu.Lock()
			currentHealth = HealthStatus{
				Sheets:    sheetsHealthy,
				Redis:     redisHealthy,
				CheckedAt: time.Now(),
			}
			healthMu.Unlock()
		}
	}()
}
