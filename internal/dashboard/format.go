// Package dashboard provides aggregation and text-formatting helpers for the
// wraith dashboard: cards, gauges, and signal summaries shared by the UI.
package dashboard

import (
	"fmt"
	"strings"
	"time"
)

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	if len(s) > 3 {
		var b strings.Builder
		start := len(s) % 3
		if start > 0 {
			b.WriteString(s[:start])
		}
		for i := start; i < len(s); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}

// FormatMoney formats a dollar amount with B/M/K suffixes for large values.
func FormatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%s$%.1fB", sign, v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%s$%.1fM", sign, v/1e6)
	case v >= 1e5:
		return fmt.Sprintf("%s$%.1fK", sign, v/1e3)
	default:
		return fmt.Sprintf("%s$%.2f", sign, v)
	}
}

// FormatPrice formats a price as X.XX, or "-" for zero.
func FormatPrice(p float64) string {
	if p == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", p)
}

// FormatPct formats a fractional change as a signed percentage, e.g. +1.3%.
// Drops the decimal for values >= 100% to keep width compact.
func FormatPct(f float64) string {
	pct := f * 100
	switch {
	case pct >= 100 || pct <= -100:
		return fmt.Sprintf("%+.0f%%", pct)
	case pct == 0:
		return "0.0%"
	default:
		return fmt.Sprintf("%+.1f%%", pct)
	}
}

// FormatAge renders how long ago t was as a compact duration ("42s", "5m",
// "3h"), or "-" for a zero time.
func FormatAge(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// PadOrTrunc pads s with spaces to width, or truncates if longer.
func PadOrTrunc(s string, width int) string {
	n := len(s)
	if n >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-n)
}
