// Package schedule computes prayer schedules for many days at once: a
// calendar month, a whole year, or an arbitrary date range.
//
// A batch only fails as a whole for invalid input or when its context is
// cancelled. A day whose events cannot be placed is kept in the result with
// its error set, so callers can still show the rest of the month.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	cerrors "cloudeng.io/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/smokyabdulrahman/offline-prayer-times/internal/geo"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/prayer"
)

// ErrInvalidDateRange is returned when a range ends before it starts.
var ErrInvalidDateRange = errors.New("invalid date range")

// Result is the outcome for a single date.
type Result struct {
	Date time.Time
	Day  prayer.Day
	Err  error
}

// OK reports whether the day was computed.
func (r Result) OK() bool { return r.Err == nil }

// Day computes the schedule for a single date.
func Day(ctx context.Context, loc geo.Location, date time.Time, cfg prayer.Config) (prayer.Day, error) {
	if err := ctx.Err(); err != nil {
		return prayer.Day{}, err
	}
	return prayer.Compute(loc, date, cfg)
}

// Month computes every day of the given calendar month.
func Month(ctx context.Context, loc geo.Location, year int, month time.Month, cfg prayer.Config) ([]Result, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid month %d", month)
	}
	first := civil(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
	last := first.AddDate(0, 1, -1)
	return Range(ctx, loc, first, last, cfg)
}

// Year computes all twelve months of year. Months are computed concurrently;
// the result is indexed by month, January first.
func Year(ctx context.Context, loc geo.Location, year int, cfg prayer.Config) ([][]Result, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	months := make([][]Result, 12)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range months {
		g.Go(func() error {
			res, err := Month(ctx, loc, year, time.Month(i+1), cfg)
			if err != nil {
				return err
			}
			months[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return months, nil
}

// Range computes every date from start to end inclusive, one day apart.
// Only the calendar dates of start and end are used.
func Range(ctx context.Context, loc geo.Location, start, end time.Time, cfg prayer.Config) ([]Result, error) {
	first, last, err := bounds(loc, start, end)
	if err != nil {
		return nil, err
	}

	log := zerolog.Ctx(ctx)
	results := make([]Result, 0, days(first, last))
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, compute(log, loc, d, cfg))
	}
	return results, nil
}

// Stream is like Range but delivers results on a channel as they are
// computed. The channel is closed after the last date or once ctx is done.
func Stream(ctx context.Context, loc geo.Location, start, end time.Time, cfg prayer.Config) (<-chan Result, error) {
	first, last, err := bounds(loc, start, end)
	if err != nil {
		return nil, err
	}

	ch := make(chan Result)
	go func() {
		defer close(ch)
		log := zerolog.Ctx(ctx)
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			if ctx.Err() != nil {
				return
			}
			select {
			case ch <- compute(log, loc, d, cfg):
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

// Errors collects the per-day failures in results, or nil when every day
// was computed.
func Errors(results []Result) error {
	var errs cerrors.M
	for _, r := range results {
		if r.Err != nil {
			errs.Append(r.Err)
		}
	}
	return errs.Err()
}

// Days returns the successfully computed days in order.
func Days(results []Result) []prayer.Day {
	out := make([]prayer.Day, 0, len(results))
	for _, r := range results {
		if r.OK() {
			out = append(out, r.Day)
		}
	}
	return out
}

func compute(log *zerolog.Logger, loc geo.Location, date time.Time, cfg prayer.Config) Result {
	day, err := prayer.Compute(loc, date, cfg)
	if err != nil {
		log.Debug().Err(err).Str("date", date.Format(time.DateOnly)).Msg("day not computed")
	}
	return Result{Date: date, Day: day, Err: err}
}

func bounds(loc geo.Location, start, end time.Time) (time.Time, time.Time, error) {
	if err := loc.Validate(); err != nil {
		return time.Time{}, time.Time{}, err
	}
	first, last := civil(start), civil(end)
	if last.Before(first) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s is before %s",
			ErrInvalidDateRange, last.Format(time.DateOnly), first.Format(time.DateOnly))
	}
	return first, last, nil
}

// civil returns UTC midnight of t's calendar date.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// days counts the dates from first to last inclusive. Both are UTC
// midnights, so the Unix seconds differ by whole days.
func days(first, last time.Time) int {
	return int((last.Unix()-first.Unix())/secondsPerDay) + 1
}

const secondsPerDay = 24 * 60 * 60
