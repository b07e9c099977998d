// Package stats aggregates per-invocation latencies for a probe run.
package stats

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const maxTrackable = 10 * time.Minute

// Latency records invocation durations. Values are kept in microseconds,
// 1us to 10min at 3 significant figures. It is not safe for concurrent use;
// a run records from a single goroutine.
type Latency struct {
	hist *hdrhistogram.Histogram
}

// NewLatency creates an empty recorder.
func NewLatency() *Latency {
	return &Latency{
		hist: hdrhistogram.New(1, int64(maxTrackable/time.Microsecond), 3),
	}
}

// Record adds one duration. Values outside the trackable range are clamped.
func (l *Latency) Record(d time.Duration) {
	us := d.Microseconds()
	if us < 1 {
		us = 1
	}
	if limit := int64(maxTrackable / time.Microsecond); us > limit {
		us = limit
	}
	_ = l.hist.RecordValue(us)
}

// Count returns the number of recorded values.
func (l *Latency) Count() int64 {
	return l.hist.TotalCount()
}

// Quantile returns the duration at percentile q (0-100).
func (l *Latency) Quantile(q float64) time.Duration {
	return time.Duration(l.hist.ValueAtQuantile(q)) * time.Microsecond
}

// Max returns the largest recorded duration.
func (l *Latency) Max() time.Duration {
	return time.Duration(l.hist.Max()) * time.Microsecond
}

// Snapshot summarizes the recorded values.
func (l *Latency) Snapshot() Snapshot {
	if l.Count() == 0 {
		return Snapshot{}
	}
	return Snapshot{
		Count: l.Count(),
		P50Ms: ms(l.Quantile(50)),
		P99Ms: ms(l.Quantile(99)),
		MaxMs: ms(l.Max()),
	}
}

// Snapshot is a point-in-time latency summary in milliseconds.
type Snapshot struct {
	Count int64   `json:"count"`
	P50Ms float64 `json:"p50_ms"`
	P99Ms float64 `json:"p99_ms"`
	MaxMs float64 `json:"max_ms"`
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
