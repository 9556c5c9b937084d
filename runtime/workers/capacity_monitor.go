package workers

import (
	"context"
	"log/slog"
	"time"
)

// CapacityProbe reports the current length and capacity of a bounded queue.
type CapacityProbe struct {
	Name  string
	Usage func() (length, capacity int)
}

// CapacityMonitor periodically samples bounded queues and logs their fill level.
// Reading len and cap of a channel never blocks, so sampling does not slow down
// the goroutines feeding it.
type CapacityMonitor struct {
	log       *slog.Logger
	probes    []CapacityProbe
	interval  time.Duration
	threshold float64
}

// NewCapacityMonitor builds a monitor warning once a queue is filled above threshold (0..1).
func NewCapacityMonitor(log *slog.Logger, interval time.Duration, threshold float64,
	probes ...CapacityProbe) *CapacityMonitor {
	return &CapacityMonitor{
		log:       log,
		probes:    probes,
		interval:  interval,
		threshold: threshold,
	}
}

func (m *CapacityMonitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.log.Debug("Context done, stopping capacity monitor")
			return nil
		case <-ticker.C:
			for _, probe := range m.probes {
				m.sample(probe)
			}
		}
	}
}

func (m *CapacityMonitor) sample(probe CapacityProbe) {
	length, capacity := probe.Usage()
	if capacity == 0 {
		return
	}
	if float64(length)/float64(capacity) >= m.threshold {
		m.log.Warn("Queue nearly full", "queue", probe.Name, "length", length, "capacity", capacity)
		return
	}
	m.log.Debug("Queue usage", "queue", probe.Name, "length", length, "capacity", capacity)
}
