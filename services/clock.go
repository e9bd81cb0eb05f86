package services

import "time"

// Clock supplies the current instant. All calendar logic derives the date in UTC.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// Now returns the current time in UTC.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant in UTC.
func (c FixedClock) Now() time.Time { return c.At.UTC() }

// Today returns the current UTC calendar date of c.
func Today(c Clock) time.Time {
	return DateOf(c.Now())
}

// DateOf truncates t to midnight of its UTC calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextMidnight returns the start of the UTC day following t.
func NextMidnight(t time.Time) time.Time {
	return DateOf(t).AddDate(0, 0, 1)
}
