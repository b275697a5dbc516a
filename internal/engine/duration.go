// Package engine provides the pure offer-ranking and filtering functions of
// the flight search service. Every function is a total, side-effect-free
// transform over an in-memory offer list: no I/O, no shared state, and no
// mutation of inputs, so callers may derive any number of views from the same
// offer slice concurrently without coordination.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
)

// ISO-8601 duration components, matched independently. Upstream durations are
// restricted to hours and minutes (e.g. "PT5H30M", "PT45M", "PT2H").
var (
	durationHoursRegex   = regexp.MustCompile(`(\d+)H`)
	durationMinutesRegex = regexp.MustCompile(`(\d+)M`)
)

// ParseDurationMinutes converts an ISO-8601 hours-and-minutes duration string
// to total whole minutes. A missing component counts as 0, and malformed
// input degrades to 0 rather than failing.
func ParseDurationMinutes(iso string) int {
	total := 0
	if m := durationHoursRegex.FindStringSubmatch(iso); m != nil {
		hours, _ := strconv.Atoi(m[1])
		total += hours * 60
	}
	if m := durationMinutesRegex.FindStringSubmatch(iso); m != nil {
		minutes, _ := strconv.Atoi(m[1])
		total += minutes
	}
	return total
}

// FormatDuration renders total minutes as "{h}h {m}m". Both components are
// always present, including "0h 0m" for zero or negative input.
func FormatDuration(totalMinutes int) string {
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	return fmt.Sprintf("%dh %dm", totalMinutes/60, totalMinutes%60)
}
