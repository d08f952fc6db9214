// internal/domain/time_range.go
package domain

import "time"

// TimeRange is an immutable (start, end) pair with start <= end.
type TimeRange struct {
	start time.Time
	end   time.Time
}

func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if start.IsZero() || end.IsZero() {
		return TimeRange{}, newValidationError(KindInvalidTimeRange, "time_range", "start and end are required")
	}
	if end.Before(start) {
		return TimeRange{}, newValidationError(KindInvalidTimeRange, "time_range", "end must not be before start")
	}
	return TimeRange{start: start.UTC(), end: end.UTC()}, nil
}

func (r TimeRange) Start() time.Time { return r.start }
func (r TimeRange) End() time.Time   { return r.end }

func (r TimeRange) Duration() time.Duration {
	return r.end.Sub(r.start)
}

// Contains reports whether t falls inside the range, inclusive of both ends.
func (r TimeRange) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(r.start) && !t.After(r.end)
}

func (r TimeRange) Equals(other TimeRange) bool {
	return r.start.Equal(other.start) && r.end.Equal(other.end)
}
