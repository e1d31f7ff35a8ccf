package clock

import "time"

type Clock interface {
	Now() time.Time
}

// DefaultClock implements the Clock interface using the system clock
type DefaultClock struct{}

// Now returns the current time in UTC
func (c *DefaultClock) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always returns the same instant
type Fixed struct {
	At time.Time
}

func (c *Fixed) Now() time.Time {
	return c.At
}
