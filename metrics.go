package meshgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordNearest is called after each nearest-vertex query.
	// duration is the total time taken, err is nil if successful.
	RecordNearest(duration time.Duration, err error)

	// RecordContains is called after each containment query.
	RecordContains(duration time.Duration, err error)

	// RecordVolume is called after each total-volume computation.
	RecordVolume(duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordNearest(time.Duration, error)  {}
func (NoopMetricsCollector) RecordContains(time.Duration, error) {}
func (NoopMetricsCollector) RecordVolume(time.Duration)          {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	NearestCount      atomic.Int64
	NearestErrors     atomic.Int64
	NearestTotalNanos atomic.Int64

	ContainsCount      atomic.Int64
	ContainsErrors     atomic.Int64
	ContainsTotalNanos atomic.Int64

	VolumeCount      atomic.Int64
	VolumeTotalNanos atomic.Int64
}

// RecordNearest implements MetricsCollector.
func (c *BasicMetricsCollector) RecordNearest(duration time.Duration, err error) {
	c.NearestCount.Add(1)
	c.NearestTotalNanos.Add(int64(duration))
	if err != nil {
		c.NearestErrors.Add(1)
	}
}

// RecordContains implements MetricsCollector.
func (c *BasicMetricsCollector) RecordContains(duration time.Duration, err error) {
	c.ContainsCount.Add(1)
	c.ContainsTotalNanos.Add(int64(duration))
	if err != nil {
		c.ContainsErrors.Add(1)
	}
}

// RecordVolume implements MetricsCollector.
func (c *BasicMetricsCollector) RecordVolume(duration time.Duration) {
	c.VolumeCount.Add(1)
	c.VolumeTotalNanos.Add(int64(duration))
}
