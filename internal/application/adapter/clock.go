package adapter

import "time"

// Clock supplies the current time so that "today" can be pinned in tests.
type Clock interface {
	Now() time.Time
}
