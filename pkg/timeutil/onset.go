// Package timeutil parses the compact duration grammar used for symptom
// onsets ("30m", "1h30m", "2h") and report windows ("1w", "3d").
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is the report window used when none is provided.
const DefaultWindow = "1w"

var (
	onsetPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitMap      = map[string]time.Duration{
		"m":       time.Minute,
		"min":     time.Minute,
		"mins":    time.Minute,
		"minute":  time.Minute,
		"minutes": time.Minute,
		"h":       time.Hour,
		"hr":      time.Hour,
		"hrs":     time.Hour,
		"std":     time.Hour,
		"hour":    time.Hour,
		"hours":   time.Hour,
		"d":       24 * time.Hour,
		"day":     24 * time.Hour,
		"days":    24 * time.Hour,
		"w":       7 * 24 * time.Hour,
		"wk":      7 * 24 * time.Hour,
		"week":    7 * 24 * time.Hour,
		"weeks":   7 * 24 * time.Hour,
	}
)

// ParseOnset parses an onset such as "45", "30m" or "1h30m" and returns it
// in whole minutes together with its canonical form. A bare number is
// minutes. Empty input is zero.
func ParseOnset(input string) (int, string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return 0, FormatOnset(0), nil
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		if n < 0 {
			return 0, "", fmt.Errorf("onset must not be negative")
		}
		return n, FormatOnset(n), nil
	}

	remaining := trimmed
	total := time.Duration(0)
	for len(remaining) > 0 {
		matches := onsetPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("invalid onset segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid onset value %q: %w", matches[1], err)
		}
		base, ok := unitMap[matches[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported onset unit %q", matches[2])
		}
		total += time.Duration(value) * base
		remaining = remaining[len(matches[0]):]
	}

	minutes := int(total / time.Minute)
	return minutes, FormatOnset(minutes), nil
}

// FormatOnset renders minutes using day/hour/minute tokens.
func FormatOnset(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	units := []struct {
		label string
		value int
	}{
		{"d", 24 * 60},
		{"h", 60},
		{"m", 1},
	}

	var parts []string
	remaining := minutes
	for _, u := range units {
		if remaining < u.value {
			continue
		}
		count := remaining / u.value
		remaining -= count * u.value
		parts = append(parts, fmt.Sprintf("%d%s", count, u.label))
	}
	return strings.Join(parts, "")
}

// ParseWindow parses a report window such as "1w", "3d" or "1w2d" and returns
// it with its canonical form. Empty input is DefaultWindow.
func ParseWindow(input string) (time.Duration, string, error) {
	if strings.TrimSpace(input) == "" {
		input = DefaultWindow
	}
	minutes, _, err := ParseOnset(input)
	if err != nil {
		return 0, "", err
	}
	if minutes <= 0 {
		return 0, "", fmt.Errorf("window must be greater than zero")
	}
	d := time.Duration(minutes) * time.Minute
	return d, FormatOnset(minutes), nil
}
