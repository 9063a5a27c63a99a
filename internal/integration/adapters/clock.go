package adapters

import (
	"time"

	"github.com/vibe-budget/backend/internal/application/adapter"
)

type systemClock struct {
	loc *time.Location
}

// NewSystemClock returns a clock reading the wall time in loc.
// The budget's notion of "today" follows that location.
func NewSystemClock(loc *time.Location) adapter.Clock {
	if loc == nil {
		loc = time.UTC
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}
