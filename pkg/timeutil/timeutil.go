package timeutil

import (
	"errors"
	"regexp"
	"time"
)

const (
	// DateLayout is the wire format for calendar dates
	DateLayout = "2006-01-02"
	// ClockLayout is the wire format for times of day
	ClockLayout = "15:04"
)

// clockPattern accepts 24-hour HH:MM with an optional leading zero on the hour
var clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

var (
	ErrInvalidClock = errors.New("invalid time of day, use HH:MM (24-hour)")
	ErrInvalidDate  = errors.New("invalid date, use YYYY-MM-DD")
)

// ParseClock parses an HH:MM string into minutes since midnight.
func ParseClock(s string) (int, error) {
	if !clockPattern.MatchString(s) {
		return 0, ErrInvalidClock
	}
	t, err := time.Parse(ClockLayout, normalize(s))
	if err != nil {
		return 0, ErrInvalidClock
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as zero-padded HH:MM.
func FormatClock(minutes int) string {
	return time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC).Format(ClockLayout)
}

// NormalizeClock re-renders a valid HH:MM string zero-padded so stored values
// compare correctly as strings.
func NormalizeClock(s string) (string, error) {
	minutes, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return FormatClock(minutes), nil
}

// ParseDate parses a YYYY-MM-DD calendar date. The result is midnight UTC;
// no timezone conversion is applied anywhere in the scheduling core.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Overlaps reports whether two half-open minute intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Back-to-back intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// MinutesBetween returns the length in minutes of [start, end) given as HH:MM
// strings. Both must already be valid.
func MinutesBetween(start, end string) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	return e - s, nil
}

func normalize(s string) string {
	if len(s) == 4 {
		return "0" + s
	}
	return s
}
