package metrics

import "time"

// Gauge is a single metric reading. Valid is false when the underlying OS
// tool was missing or its output could not be parsed; a zero Value never
// stands in for "not collected".
type Gauge struct {
	Value float64
	Valid bool
}

// Ok returns a valid gauge holding v.
func Ok(v float64) Gauge {
	return Gauge{Value: v, Valid: true}
}

// Unavailable returns an invalid gauge.
func Unavailable() Gauge {
	return Gauge{}
}

// Sample is one polling tick's worth of host metrics.
// Samples are immutable once created.
type Sample struct {
	Timestamp time.Time

	// CPU is total CPU utilization in percent, clamped to [0,100].
	CPU Gauge

	// Memory is used memory in percent of total, clamped to [0,100].
	Memory Gauge

	// DiskIO is disk busy time in percent (Linux iostat %util) or
	// throughput in MB/s (macOS iostat), whichever the platform reports.
	DiskIO Gauge

	// NetworkIO is combined receive+transmit throughput in bytes per
	// second, derived from the delta between consecutive counter reads.
	NetworkIO Gauge
}
