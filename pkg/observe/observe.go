package observe

import (
	"context"
	"sync"
	"time"

	"github.com/slicehaus/slicehaus-backend/pkg/logger"
)

// Default thresholds for flagging slow operations.
const (
	ThresholdAPIRequest  = time.Second
	ThresholdQuery       = 500 * time.Millisecond
	ThresholdCalculation = 100 * time.Millisecond
	ThresholdFileOp      = 200 * time.Millisecond
)

const defaultMaxMetrics = 1000

// Metric is one recorded operation timing.
type Metric struct {
	Operation string        `json:"operation"`
	Duration  time.Duration `json:"duration"`
	Timestamp time.Time     `json:"timestamp"`
	Threshold time.Duration `json:"threshold"`
	Slow      bool          `json:"slow"`
}

// Monitor records operation timings into a bounded ring buffer and logs
// operations that exceed their threshold. A nil Monitor is a no-op, so
// services can treat instrumentation as optional.
type Monitor struct {
	mu      sync.Mutex
	logg    *logger.Logger
	metrics []Metric
	next    int
	filled  bool
}

func NewMonitor(logg *logger.Logger, maxMetrics int) *Monitor {
	if maxMetrics <= 0 {
		maxMetrics = defaultMaxMetrics
	}
	return &Monitor{
		logg:    logg,
		metrics: make([]Metric, maxMetrics),
	}
}

// Track runs fn, records its duration, and returns fn's error. The
// timing is recorded even when fn fails.
func (m *Monitor) Track(ctx context.Context, operation string, threshold time.Duration, fn func() error) error {
	if m == nil {
		return fn()
	}

	start := time.Now()
	err := fn()
	m.record(ctx, operation, time.Since(start), threshold)
	return err
}

func (m *Monitor) record(ctx context.Context, operation string, duration, threshold time.Duration) {
	metric := Metric{
		Operation: operation,
		Duration:  duration,
		Timestamp: time.Now().UTC(),
		Threshold: threshold,
		Slow:      threshold > 0 && duration > threshold,
	}

	m.mu.Lock()
	m.metrics[m.next] = metric
	m.next++
	if m.next == len(m.metrics) {
		m.next = 0
		m.filled = true
	}
	m.mu.Unlock()

	if metric.Slow && m.logg != nil {
		ctx = m.logg.WithFields(ctx, map[string]any{
			"operation":    operation,
			"duration_ms":  duration.Milliseconds(),
			"threshold_ms": threshold.Milliseconds(),
		})
		m.logg.Warn(ctx, "operation.slow")
	}
}

// Snapshot returns the recorded metrics, oldest first.
func (m *Monitor) Snapshot() []Metric {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.filled {
		out := make([]Metric, m.next)
		copy(out, m.metrics[:m.next])
		return out
	}

	out := make([]Metric, 0, len(m.metrics))
	out = append(out, m.metrics[m.next:]...)
	out = append(out, m.metrics[:m.next]...)
	return out
}

// SlowOperations filters the snapshot down to threshold violations.
func (m *Monitor) SlowOperations() []Metric {
	var slow []Metric
	for _, metric := range m.Snapshot() {
		if metric.Slow {
			slow = append(slow, metric)
		}
	}
	return slow
}
