package dashboard

import (
	"math"
	"strings"
)

// Gauge renders a horizontal bar of the given width filled to fraction
// (0..1), e.g. "[██████----]" at 0.6. Fractions outside 0..1 are clamped.
func Gauge(fraction float64, width int) string {
	if width < 3 {
		width = 3
	}
	inner := width - 2
	if math.IsNaN(fraction) {
		fraction = 0
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(math.Round(fraction * float64(inner)))

	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(strings.Repeat("█", filled))
	b.WriteString(strings.Repeat("-", inner-filled))
	b.WriteByte(']')
	return b.String()
}

// Sparkline renders values as a unicode block sparkline scaled to the value
// range. Fewer than two distinct values render a flat line.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune("▁▂▃▄▅▆▇█")

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	var b strings.Builder
	for _, v := range values {
		idx := 0
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(blocks)-1))
		}
		b.WriteRune(blocks[idx])
	}
	return b.String()
}
