// internal/domain/clock.go
package domain

import "time"

// Clock supplies the current time to aggregate queries that depend on it,
// keeping staleness checks deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

func SystemClock() Clock { return systemClock{} }

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

// FixedClock always reports t. Test helper.
func FixedClock(t time.Time) Clock { return fixedClock{t: t.UTC()} }
