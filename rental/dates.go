package rental

import (
	"fmt"
	"time"
)

// WeekBoundaryDay is the day hotel suite leases start and end on.
const WeekBoundaryDay = time.Sunday

const dateLayout = "2006-01-02"

// DateBounds is the global window all leases must lie in. Both ends are inclusive.
type DateBounds struct {
	Earliest time.Time
	Latest   time.Time
}

// DefaultDateBounds returns the window used when no bounds are configured.
func DefaultDateBounds() DateBounds {
	return DateBounds{
		Earliest: Date(2020, time.January, 1),
		Latest:   Date(2029, time.December, 31),
	}
}

// BuildDateBounds normalizes both ends to calendar dates and validates their order.
func BuildDateBounds(earliest time.Time, latest time.Time) (DateBounds, error) {
	b := DateBounds{Earliest: ToDate(earliest), Latest: ToDate(latest)}

	if err := b.Validate(); err != nil {
		return DateBounds{}, err
	}

	return b, nil
}

// Validate checks that both ends are set and Earliest is not after Latest.
func (b DateBounds) Validate() error {
	if b.Earliest.IsZero() || b.Latest.IsZero() {
		return fmt.Errorf("%w: date bounds must not be empty", ErrInvalidArgument)
	}

	if b.Earliest.After(b.Latest) {
		return fmt.Errorf("%w: earliest date %s is after latest date %s",
			ErrInvalidArgument, FormatDate(b.Earliest), FormatDate(b.Latest))
	}

	return nil
}

// Date returns midnight UTC of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ToDate drops the time of day and the location, keeping the calendar day as seen in t's location.
func ToDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}

	y, m, d := t.Date()

	return Date(y, m, d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidArgument, s)
	}

	return t, nil
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func addDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

func isWeekBoundary(t time.Time) bool {
	return t.Weekday() == WeekBoundaryDay
}

// previousWeekBoundary walks back day by day until it reaches the week boundary day.
// A date already on the boundary is returned as is.
func previousWeekBoundary(t time.Time) time.Time {
	for !isWeekBoundary(t) {
		t = addDays(t, -1)
	}

	return t
}
