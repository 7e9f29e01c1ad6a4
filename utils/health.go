package utils

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Backend   bool      `json:"backend"`
	Cache     bool      `json:"cache"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// CheckHealth probes the backend base URL and the store once and records the result.
func CheckHealth(ctx context.Context, client *http.Client, backendURL string, store Store) HealthStatus {
	backendUp := false
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, backendURL, nil)
	if err == nil {
		if resp, err := client.Do(req); err == nil {
			resp.Body.Close()
			// Any HTTP answer means the server is reachable.
			backendUp = true
		}
	}

	status := HealthStatus{
		Backend:   backendUp,
		Cache:     store.Ping(ctx) == nil,
		CheckedAt: time.Now(),
	}

	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor performs periodic health checks until ctx is cancelled.
func StartHealthMonitor(ctx context.Context, client *http.Client, backendURL string, store Store) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		CheckHealth(ctx, client, backendURL, store)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				CheckHealth(ctx, client, backendURL, store)
			}
		}
	}()
}
