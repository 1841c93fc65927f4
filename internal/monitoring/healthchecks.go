package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const HEALTHCHECK_TIMER = 15

// Pinger is any dependency that can answer a liveness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MonitorValkeyHealth pings the dedupe store every HEALTHCHECK_TIMER seconds
// and records the outcome in healthy.
func MonitorValkeyHealth(ctx context.Context, valkey Pinger, healthy *atomic.Bool) {
	monitor(ctx, "Valkey", valkey, healthy, time.Second*HEALTHCHECK_TIMER)
}

func monitor(ctx context.Context, name string, dep Pinger, healthy *atomic.Bool, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			checkOnce(ctx, name, dep, healthy)
		}
	}
}

func checkOnce(ctx context.Context, name string, dep Pinger, healthy *atomic.Bool) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err := dep.Ping(pingCtx)
	wasHealthy := healthy.Swap(err == nil)
	switch {
	case err != nil:
		slog.Warn("[HealthCheck] Dependency is unhealthy",
			slog.String("dependency", name),
			slog.String("error", err.Error()))
	case !wasHealthy:
		slog.Info("[HealthCheck] Dependency recovered", slog.String("dependency", name))
	}
}
