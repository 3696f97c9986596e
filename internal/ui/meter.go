package ui

import (
	"fmt"
	"strings"
)

// Meter block characters.
const (
	meterFilled = '█'
	meterEmpty  = '░'
)

// Meter renders a usage percentage as a bracketed bar with the numeric
// value appended, colored by threshold.
// Output format: [████████░░░░]  67%
func Meter(percent float64, width int) string {
	if width <= 0 {
		return ""
	}

	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}

	filledCount := int((percent / 100.0) * float64(width))
	emptyCount := width - filledCount

	var sb strings.Builder
	sb.Grow(width + 10)

	sb.WriteRune('[')
	for i := 0; i < filledCount; i++ {
		sb.WriteRune(meterFilled)
	}
	for i := 0; i < emptyCount; i++ {
		sb.WriteRune(meterEmpty)
	}
	sb.WriteRune(']')

	return colorize(sb.String(), ThresholdColor(percent)) + fmt.Sprintf(" %3.0f%%", percent)
}
