package prayer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smokyabdulrahman/offline-prayer-times/internal/astro"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/geo"
)

var (
	// ErrInvalidCoordinate reports a latitude or longitude out of range.
	ErrInvalidCoordinate = geo.ErrInvalidCoordinate

	// ErrSunAngleUnreachable reports an event whose sun angle is never
	// reached on the day, e.g. Isha during white nights.
	ErrSunAngleUnreachable = astro.ErrAngleUnreachable

	// ErrFormatting reports a value that has no clock representation.
	ErrFormatting = errors.New("cannot format time")
)

// UnreachableError lists the events that could not be computed for a date.
// It matches ErrSunAngleUnreachable with errors.Is.
type UnreachableError struct {
	Date   time.Time
	Events []Event
}

func (e *UnreachableError) Error() string {
	names := make([]string, len(e.Events))
	for i, ev := range e.Events {
		names[i] = ev.String()
	}
	return fmt.Sprintf("%s: %s: %v", e.Date.Format(time.DateOnly), strings.Join(names, ", "), ErrSunAngleUnreachable)
}

func (e *UnreachableError) Unwrap() error {
	return ErrSunAngleUnreachable
}
