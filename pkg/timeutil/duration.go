package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultLength is the point length used when none is provided.
	DefaultLength = "1h"

	// DateLayout and TimeLayout are how rows and forms print instants.
	DateLayout = "Jan 02"
	TimeLayout = "15:04"
	// InputLayout is accepted on the command line.
	InputLayout = "2006-01-02 15:04"
)

var (
	lengthPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitMap       = map[string]time.Duration{
		"m":       time.Minute,
		"min":     time.Minute,
		"mins":    time.Minute,
		"minute":  time.Minute,
		"minutes": time.Minute,
		"h":       time.Hour,
		"hr":      time.Hour,
		"hrs":     time.Hour,
		"hour":    time.Hour,
		"hours":   time.Hour,
		"d":       24 * time.Hour,
		"day":     24 * time.Hour,
		"days":    24 * time.Hour,
	}
)

// ParseLength parses a human-friendly length such as "2h", "1d" or "1d2h30m"
// and returns it together with its canonical FormatLength rendering. An empty
// input means DefaultLength. Zero is allowed since a point may start and
// finish at the same instant.
func ParseLength(input string) (time.Duration, string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		trimmed = DefaultLength
	}

	remaining := strings.ToLower(trimmed)
	total := time.Duration(0)
	for len(remaining) > 0 {
		matches := lengthPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("invalid length segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid length value %q: %w", matches[1], err)
		}
		unit, ok := unitMap[matches[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported length unit %q", matches[2])
		}
		total += time.Duration(value) * unit
		remaining = remaining[len(matches[0]):]
	}

	return total, FormatLength(total), nil
}

// FormatLength renders a point length as "02D 03H 15M", dropping leading
// zero units. Anything under a minute prints as "00M".
func FormatLength(d time.Duration) string {
	if d < time.Minute {
		return "00M"
	}
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute

	switch {
	case days > 0:
		return fmt.Sprintf("%02dD %02dH %02dM", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%02dH %02dM", hours, minutes)
	default:
		return fmt.Sprintf("%02dM", minutes)
	}
}

// ParseInstant reads InputLayout in loc.
func ParseInstant(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(InputLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, want %q", s, InputLayout)
	}
	return t, nil
}

// Span renders a start/finish pair the way the trip header shows it.
func Span(start, finish time.Time) string {
	if start.IsZero() {
		return ""
	}
	if start.Year() == finish.Year() && start.Month() == finish.Month() {
		return fmt.Sprintf("%s - %02d", start.Format(DateLayout), finish.Day())
	}
	return fmt.Sprintf("%s - %s", start.Format(DateLayout), finish.Format(DateLayout))
}
