// Package system provides the wall clock used to stamp generated records.
package system

import "time"

// Resolution matches Postgres timestamptz, so a stamped record compares equal to its stored copy.
const Resolution = time.Microsecond

// Clock implements content.Clock.
type Clock struct{}

// New creates a Clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current UTC time truncated to Resolution, without a monotonic reading.
func (Clock) Now() time.Time {
	return time.Now().UTC().Truncate(Resolution)
}
