// services/availability/clock.go
package availability

import (
	"errors"
	"fmt"
	"strconv"
)

// SlotStep is the length in minutes of one bookable slot.
const SlotStep = 30

const minutesPerDay = 24 * 60

var (
	// ErrInvalidDate is returned for anything that is not a YYYY-MM-DD calendar date.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
	// ErrInvalidRange is returned for malformed or inverted HH:MM ranges.
	ErrInvalidRange = errors.New("invalid time range")
	// ErrInvalidTime is returned for a malformed HH:MM clock time.
	ErrInvalidTime = errors.New("invalid time, expected HH:MM")
)

// ParseClock converts a zero-padded 24h "HH:MM" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
		}
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:])
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return h*60 + m, nil
}

// FormatClock is the inverse of ParseClock. Values past midnight are
// rendered as-is (e.g. 1440 -> "24:00") so an exclusive range end of a
// late slot stays representable.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ValidClock reports whether s is a well-formed HH:MM time.
func ValidClock(s string) bool {
	_, err := ParseClock(s)
	return err == nil
}
