package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"threadlink/contract"
	"threadlink/observability"
)

var _ contract.Worker = (*HeartbeatWorker)(nil)

// HeartbeatWorker periodically logs the process footprint together with
// the bridge counters, so a long-running relay is observable without
// any external control plane.
type HeartbeatWorker struct {
	log      *slog.Logger
	interval time.Duration
	metrics  *observability.Metrics
}

func NewHeartbeatWorker(log *slog.Logger, interval time.Duration, metrics *observability.Metrics) *HeartbeatWorker {
	return &HeartbeatWorker{log: log, interval: interval, metrics: metrics}
}

func (w *HeartbeatWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			attrs := []any{}
			if mem, err := p.MemoryInfo(); err == nil {
				attrs = append(attrs, "rss_mb", mem.RSS/1024/1024)
			}
			if cpu, err := p.CPUPercent(); err == nil {
				attrs = append(attrs, "cpu_pct", cpu)
			}
			for _, stat := range w.metrics.Snapshot() {
				attrs = append(attrs, stat.Name, stat.Value)
			}
			w.log.Info("bridge heartbeat", attrs...)
		}
	}
}
