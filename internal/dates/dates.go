// Package dates produces the calendar window the tracker displays and the
// date keys completions are stored under.
package dates

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitrack/internal/constants"
)

// DisplayDate is the presentation form of a window date.
type DisplayDate struct {
	Day   string // weekday abbreviation, e.g. "Mon"
	Date  int    // day of month
	Month string // month abbreviation, e.g. "Oct"
}

// ValidWindow reports whether n is one of the supported window sizes.
func ValidWindow(n int) bool {
	return n == constants.WeekWindow || n == constants.MonthWindow
}

// GenerateDateRange returns windowSize consecutive calendar dates, oldest
// first, ending on ref's calendar day. Dates are pinned to noon in ref's
// location so that stepping across DST changes never skips or repeats a day.
func GenerateDateRange(windowSize int, ref time.Time) []time.Time {
	if windowSize <= 0 {
		return nil
	}
	dates := make([]time.Time, 0, windowSize)
	for i := windowSize - 1; i >= 0; i-- {
		dates = append(dates, DaysAgo(ref, i))
	}
	return dates
}

// DaysAgo returns the calendar day n days before ref, at noon in ref's location.
func DaysAgo(ref time.Time, n int) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day()-n, 12, 0, 0, 0, ref.Location())
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatISODate returns the YYYY-MM-DD key for t in t's own location.
func FormatISODate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// FormatDisplayDate splits t into its weekday, day-of-month and month labels.
func FormatDisplayDate(t time.Time) DisplayDate {
	return DisplayDate{
		Day:   t.Weekday().String()[:3],
		Date:  t.Day(),
		Month: t.Month().String()[:3],
	}
}

// ParseISODate parses a YYYY-MM-DD key into noon of that day in loc.
func ParseISODate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(constants.DateFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, loc), nil
}

// IsISODate reports whether s is a well-formed YYYY-MM-DD key.
func IsISODate(s string) bool {
	_, err := time.Parse(constants.DateFormat, s)
	return err == nil
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}
