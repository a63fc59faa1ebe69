package clock

import (
	"time"

	"taskchat/internal/application/port/output"
)

var _ output.Clock = System{}

type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always returns the same instant. Used in tests.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}
