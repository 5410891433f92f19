package clock

import "time"

// Clock abstracts time so that "today" is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in the configured location.
type System struct {
	Location *time.Location
}

func (c System) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// Fixed always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
