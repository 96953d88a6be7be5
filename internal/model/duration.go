package model

import (
	"fmt"
	"strings"
)

// Time unit constants
const (
	SecondsPerHour   = 3600
	SecondsPerMinute = 60
)

// DurationToken is one amount/unit pair parsed from a slicer time annotation,
// e.g. {2, "h"} or {30, "m"}.
type DurationToken struct {
	Amount int
	Unit   string // "h", "m" or "s"
}

// FormatDuration formats a second count as a compact display string like
// "2h 5m". Negative values clamp to zero; sub-minute values collapse to "0m".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / SecondsPerHour
	minutes := (seconds % SecondsPerHour) / SecondsPerMinute

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if len(parts) == 0 {
		return "0m"
	}
	return strings.Join(parts, " ")
}

// NormalizeDurationTokens folds h/m/s tokens into a display string. Seconds
// only matter when no minutes are present, in which case they promote to at
// least one minute so short prints do not display as zero.
func NormalizeDurationTokens(tokens []DurationToken) string {
	var hours, minutes, seconds int
	for _, tok := range tokens {
		switch tok.Unit {
		case "h":
			hours += tok.Amount
		case "m":
			minutes += tok.Amount
		case "s":
			seconds += tok.Amount
		}
	}
	if seconds > 0 && minutes == 0 {
		minutes = seconds / SecondsPerMinute
		if minutes < 1 {
			minutes = 1
		}
	}

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if len(parts) == 0 {
		return "0m"
	}
	return strings.Join(parts, " ")
}
