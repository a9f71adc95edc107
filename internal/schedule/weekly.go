// Package schedule provides the cancellable weekly trigger for the
// leaderboard post.
package schedule

import (
	"context"
	"log/slog"
	"time"
)

// Guard pause after a fire so clock skew around the target time cannot
// double-fire.
const refirePause = time.Minute

// Weekly fires once per week at a fixed local time.
type Weekly struct {
	weekday time.Weekday
	hour    int
	minute  int
	loc     *time.Location
	// now is swapped out in tests.
	now func() time.Time
}

func NewWeekly(loc *time.Location, weekday time.Weekday, hour int, minute int) *Weekly {
	return &Weekly{weekday: weekday, hour: hour, minute: minute, loc: loc, now: time.Now}
}

// Next computes the first fire time strictly after now.
func (w *Weekly) Next(now time.Time) time.Time {
	now = now.In(w.loc)
	daysAhead := (int(w.weekday) - int(now.Weekday()) + 7) % 7
	target := time.Date(now.Year(), now.Month(), now.Day()+daysAhead, w.hour, w.minute, 0, 0, w.loc)
	if !target.After(now) {
		target = target.AddDate(0, 0, 7)
	}

	return target
}

// Start runs the trigger loop until the context ends. Cancellation during the
// wait or mid-fire stops cleanly; a fire interrupted by shutdown simply has
// its result discarded by the callee.
func (w *Weekly) Start(ctx context.Context, fire func(context.Context)) {
	for {
		target := w.Next(w.now())
		wait := target.Sub(w.now())
		slog.Info("Next scheduled post", slog.Time("at", target), slog.Duration("wait", wait))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()

			return
		case <-timer.C:
		}

		fire(ctx)

		pause := time.NewTimer(refirePause)
		select {
		case <-ctx.Done():
			pause.Stop()

			return
		case <-pause.C:
		}
	}
}
