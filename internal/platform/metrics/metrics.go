package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps cheap process-local counters for the HTTP surface and
// the model backend. Counters only grow; Snapshot is safe to call from any
// goroutine.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	totalDurationMs uint64
	aiCalls         uint64
	aiFailures      uint64
	aiDurationMs    uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) RecordRequest(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordAICall(duration time.Duration, failed bool) {
	atomic.AddUint64(&c.aiCalls, 1)
	if failed {
		atomic.AddUint64(&c.aiFailures, 1)
	}
	atomic.AddUint64(&c.aiDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	aiCalls := atomic.LoadUint64(&c.aiCalls)
	aiFailures := atomic.LoadUint64(&c.aiFailures)
	aiMs := atomic.LoadUint64(&c.aiDurationMs)

	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	aiAvg := float64(0)
	if aiCalls > 0 {
		aiAvg = float64(aiMs) / float64(aiCalls)
	}
	return map[string]any{
		"requestsTotal":   total,
		"errorsTotal":     errs,
		"avgDurationMs":   avg,
		"aiCallsTotal":    aiCalls,
		"aiFailuresTotal": aiFailures,
		"aiAvgDurationMs": aiAvg,
	}
}
