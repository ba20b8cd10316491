package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned for dates not in YYYY-MM-DD form.
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// DateLayout is the on-disk and CLI date format.
const DateLayout = "2006-01-02"

// DefaultTimezoneOffsets maps the supported zone names to whole-hour
// UTC offsets. Zones are fixed; daylight saving is not modelled.
func DefaultTimezoneOffsets() map[string]int {
	return map[string]int{
		"Asia/Taipei":   8,
		"Asia/Tokyo":    9,
		"Asia/Shanghai": 8,
		"US/Eastern":    -5,
		"US/Pacific":    -8,
		"Europe/London": 0,
		"Europe/Berlin": 1,
		"UTC":           0,
	}
}

// ResolveOffset returns the offset in hours for name. Unknown names
// resolve to 0.
func ResolveOffset(name string, table map[string]int) int {
	return table[name]
}

// Location turns a zone name into a fixed-offset location.
func Location(name string, table map[string]int) *time.Location {
	hours := ResolveOffset(name, table)
	if hours == 0 {
		return time.UTC
	}
	return time.FixedZone(fmt.Sprintf("UTC%+d", hours), hours*3600)
}

// ParseDate parses a YYYY-MM-DD date as local midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// Yesterday returns yesterday's date in loc, formatted YYYY-MM-DD.
func Yesterday(now time.Time, loc *time.Location) string {
	return now.In(loc).AddDate(0, 0, -1).Format(DateLayout)
}
