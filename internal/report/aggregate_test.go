package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	s, ok := Summarize([]float64{1, 2, 3})
	require.True(t, ok)
	assert.InDelta(t, 2.0, s.Average, 1e-9)
	assert.InDelta(t, 1.0, s.Min, 1e-9)
	assert.InDelta(t, 3.0, s.Max, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	_, ok := Summarize(nil)
	assert.False(t, ok)

	_, ok = SummarizeMethod([]float64{})
	assert.False(t, ok)
}

func TestSummarizeMethod(t *testing.T) {
	s, ok := SummarizeMethod([]float64{1, 2, 3})
	require.True(t, ok)
	assert.Equal(t, 3, s.Samples)
	assert.InDelta(t, 2.0, s.Average, 1e-9)
	// population standard deviation: sqrt(2/3)
	assert.InDelta(t, 0.816496580927726, s.StdDev, 1e-9)
}

func TestSummarizeMethodSingleSample(t *testing.T) {
	s, ok := SummarizeMethod([]float64{5})
	require.True(t, ok)
	assert.Equal(t, 1, s.Samples)
	assert.InDelta(t, 5.0, s.Average, 1e-9)
	assert.InDelta(t, 0.0, s.StdDev, 1e-9)
}

func TestSummarizeTimingsSkipsEmptySeries(t *testing.T) {
	stats := SummarizeTimings(map[string][]float64{
		"quilt":  {1, 2, 3},
		"git":    {5},
		"script": {},
	})

	assert.Len(t, stats, 2)
	assert.Contains(t, stats, "quilt")
	assert.Contains(t, stats, "git")
	assert.NotContains(t, stats, "script")
}

func TestBestMethod(t *testing.T) {
	order := []string{"quilt", "git", "script"}

	tests := []struct {
		name  string
		stats map[string]MethodStats
		want  string
	}{
		{
			name: "lowest mean wins",
			stats: map[string]MethodStats{
				"quilt": {Average: 2.0},
				"git":   {Average: 5.0},
			},
			want: "quilt",
		},
		{
			name: "tie goes to first in order",
			stats: map[string]MethodStats{
				"git":    {Average: 1.5},
				"script": {Average: 1.5},
			},
			want: "git",
		},
		{
			name: "unknown method can still win",
			stats: map[string]MethodStats{
				"quilt":  {Average: 3.0},
				"custom": {Average: 1.0},
			},
			want: "custom",
		},
		{
			name:  "no data",
			stats: map[string]MethodStats{},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BestMethod(order, tt.stats))
		})
	}
}
