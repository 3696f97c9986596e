package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stripANSI(s string) string {
	var result strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}

func TestSparklineEmptyData(t *testing.T) {
	assert.Empty(t, Sparkline(nil, 10, ColorInfo))
	assert.Empty(t, Sparkline([]float64{}, 10, ColorInfo))
}

func TestSparklineInvalidWidth(t *testing.T) {
	assert.Empty(t, Sparkline([]float64{1, 2, 3}, 0, ColorInfo))
	assert.Empty(t, Sparkline([]float64{1, 2, 3}, -5, ColorInfo))
}

func TestSparklineScalesToRange(t *testing.T) {
	result := stripANSI(Sparkline([]float64{0, 50, 100}, 10, ColorInfo))
	runes := []rune(result)

	assert.Len(t, runes, 3)
	assert.Equal(t, '▁', runes[0], "minimum maps to lowest block")
	assert.Equal(t, '█', runes[2], "maximum maps to highest block")
}

func TestSparklineFlatSeries(t *testing.T) {
	result := stripANSI(Sparkline([]float64{50, 50, 50}, 10, ColorInfo))
	assert.Equal(t, "▅▅▅", result)
}

func TestSparklineTruncatesToWidth(t *testing.T) {
	data := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	result := stripANSI(Sparkline(data, 5, ColorInfo))
	assert.Len(t, []rune(result), 5, "keeps the most recent points")
}

func TestSparklineShorterThanWidth(t *testing.T) {
	result := stripANSI(Sparkline([]float64{25, 50, 75}, 10, ColorInfo))
	assert.Len(t, []rune(result), 3)
}

func TestSparklineNegativeValues(t *testing.T) {
	result := stripANSI(Sparkline([]float64{-50, -25, 0, 25, 50}, 10, ColorInfo))
	assert.Len(t, []rune(result), 5)
}

func TestPercentSparklineEmpty(t *testing.T) {
	assert.Empty(t, PercentSparkline(nil, 10))
}

func TestThresholdColor(t *testing.T) {
	tests := []struct {
		percent  float64
		expected string
	}{
		{0, string(ColorSuccess)},
		{59.9, string(ColorSuccess)},
		{60, string(ColorWarning)},
		{79.9, string(ColorWarning)},
		{80, string(ColorError)},
		{100, string(ColorError)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, string(ThresholdColor(tt.percent)),
			"percent %.1f", tt.percent)
	}
}

func TestMeter(t *testing.T) {
	result := stripANSI(Meter(50, 10))
	assert.Equal(t, "[█████░░░░░]  50%", result)
}

func TestMeterClampsPercent(t *testing.T) {
	assert.Contains(t, stripANSI(Meter(150, 4)), "[████] 100%")
	assert.Contains(t, stripANSI(Meter(-10, 4)), "[░░░░]   0%")
}

func TestMeterZeroWidth(t *testing.T) {
	assert.Empty(t, Meter(50, 0))
}

func TestDisableColors(t *testing.T) {
	DisableColors()
	defer EnableColors()

	assert.False(t, ColorsEnabled())
	result := Sparkline([]float64{0, 100}, 10, ColorError)
	assert.Equal(t, "▁█", result, "monochrome output carries no escape codes")
}
