package availability

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date at local midnight.
func ParseDate(date string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return d, nil
}

// Weekday returns the day of the week of date, Sunday = 0.
func Weekday(date string) (int, error) {
	d, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return int(d.Weekday()), nil
}
