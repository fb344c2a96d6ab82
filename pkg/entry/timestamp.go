package entry

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DisplayLayout is the stored date format, 24-hour clock.
	DisplayLayout = "02.01.2006 15:04"
	// DayLayout is the date-only part of DisplayLayout.
	DayLayout = "02.01.2006"
)

// EpochZero is returned by ParseDisplay for anything it cannot read.
var EpochZero = time.UnixMilli(0)

// clock is the validated parts of either representation.
type clock struct {
	year, month, day, hour, minute int
}

func (c clock) valid() bool {
	return c.month >= 1 && c.month <= 12 &&
		c.day >= 1 && c.day <= 31 &&
		c.hour >= 0 && c.hour <= 23 &&
		c.minute >= 0 && c.minute <= 59 &&
		c.year >= 1000 && c.year <= 3000
}

// number parses an unsigned decimal; signs, spaces and empty strings fail.
func number(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func numbers(parts ...string) ([]int, bool) {
	out := make([]int, len(parts))
	for i, p := range parts {
		n, ok := number(p)
		if !ok {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

func splitDisplay(s string) (clock, bool) {
	datePart, timePart, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok {
		return clock{}, false
	}
	d := strings.Split(datePart, ".")
	t := strings.Split(strings.TrimSpace(timePart), ":")
	if len(d) != 3 || len(t) != 2 {
		return clock{}, false
	}
	n, ok := numbers(d[0], d[1], d[2], t[0], t[1])
	if !ok {
		return clock{}, false
	}
	c := clock{day: n[0], month: n[1], year: n[2], hour: n[3], minute: n[4]}
	return c, c.valid()
}

func splitPicker(s string) (clock, bool) {
	datePart, timePart, ok := strings.Cut(strings.TrimSpace(s), "T")
	if !ok {
		return clock{}, false
	}
	d := strings.Split(datePart, "-")
	t := strings.Split(timePart, ":")
	// Some pickers append seconds.
	if len(t) == 3 {
		if _, ok := number(t[2]); !ok {
			return clock{}, false
		}
		t = t[:2]
	}
	if len(d) != 3 || len(t) != 2 {
		return clock{}, false
	}
	n, ok := numbers(d[0], d[1], d[2], t[0], t[1])
	if !ok {
		return clock{}, false
	}
	c := clock{year: n[0], month: n[1], day: n[2], hour: n[3], minute: n[4]}
	return c, c.valid()
}

// ParseDisplay reads "DD.MM.YYYY HH:MM" in local time. Malformed or out of
// range input yields EpochZero. Only ranges are checked, so "31.02.2024"
// rolls over into March the way time.Date normalises it.
func ParseDisplay(s string) time.Time {
	c, ok := splitDisplay(s)
	if !ok {
		return EpochZero
	}
	return time.Date(c.year, time.Month(c.month), c.day, c.hour, c.minute, 0, 0, time.Local)
}

// ToPicker converts a display string to "YYYY-MM-DDTHH:MM", or "" when the
// input is malformed.
func ToPicker(display string) string {
	c, ok := splitDisplay(display)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d", c.year, c.month, c.day, c.hour, c.minute)
}

// FromPicker converts "YYYY-MM-DDTHH:MM" back to the display format, or ""
// when the input is malformed.
func FromPicker(picker string) string {
	c, ok := splitPicker(picker)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%02d.%02d.%04d %02d:%02d", c.day, c.month, c.year, c.hour, c.minute)
}

// NormalizeDate accepts the display or the picker format and returns the
// display form. Anything else comes back trimmed and unchanged.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if ValidDisplay(s) {
		return s
	}
	if display := FromPicker(s); display != "" {
		return display
	}
	return s
}

// FormatDisplay renders t in the stored format.
func FormatDisplay(t time.Time) string {
	return t.Format(DisplayLayout)
}

// DayKey is the part of a display date before the first space. A date with
// no space is its own key.
func DayKey(date string) string {
	day, _, _ := strings.Cut(date, " ")
	return day
}

// ValidDisplay reports whether s passes the display codec's checks.
func ValidDisplay(s string) bool {
	_, ok := splitDisplay(s)
	return ok
}
