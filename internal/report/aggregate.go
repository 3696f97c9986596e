// Package report aggregates sample windows and timing series into summary
// statistics and serializes them as timestamped JSON reports.
package report

import (
	"math"
	"sort"
)

// MetricSummary summarizes one system metric series.
type MetricSummary struct {
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// MethodStats summarizes one patch method's timing series.
type MethodStats struct {
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	StdDev  float64 `json:"std_dev"`
	Samples int     `json:"samples"`
}

// Summarize computes average/min/max over a series. Returns false for an
// empty series: statistics over nothing are omitted, never zero-filled.
func Summarize(values []float64) (MetricSummary, bool) {
	if len(values) == 0 {
		return MetricSummary{}, false
	}

	sum := 0.0
	minVal, maxVal := values[0], values[0]
	for _, v := range values {
		sum += v
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	return MetricSummary{
		Average: sum / float64(len(values)),
		Min:     minVal,
		Max:     maxVal,
	}, true
}

// SummarizeMethod computes timing statistics including the population
// standard deviation (N divisor).
func SummarizeMethod(values []float64) (MethodStats, bool) {
	summary, ok := Summarize(values)
	if !ok {
		return MethodStats{}, false
	}

	variance := 0.0
	for _, v := range values {
		d := v - summary.Average
		variance += d * d
	}
	variance /= float64(len(values))

	return MethodStats{
		Average: summary.Average,
		Min:     summary.Min,
		Max:     summary.Max,
		StdDev:  math.Sqrt(variance),
		Samples: len(values),
	}, true
}

// SummarizeTimings summarizes every non-empty series in the map.
func SummarizeTimings(series map[string][]float64) map[string]MethodStats {
	stats := make(map[string]MethodStats, len(series))
	for method, values := range series {
		if s, ok := SummarizeMethod(values); ok {
			stats[method] = s
		}
	}
	return stats
}

// BestMethod returns the method with the lowest mean time among those with
// at least one sample. order supplies the tie-break: on exactly equal
// means, the method listed first wins. Returns "" when no method has data.
func BestMethod(order []string, stats map[string]MethodStats) string {
	best := ""
	for _, method := range order {
		s, ok := stats[method]
		if !ok {
			continue
		}
		if best == "" || s.Average < stats[best].Average {
			best = method
		}
	}

	// Methods outside the configured order still participate, after it
	known := make(map[string]bool, len(order))
	for _, m := range order {
		known[m] = true
	}
	extras := make([]string, 0)
	for method := range stats {
		if !known[method] {
			extras = append(extras, method)
		}
	}
	sort.Strings(extras)
	for _, method := range extras {
		if best == "" || stats[method].Average < stats[best].Average {
			best = method
		}
	}

	return best
}
