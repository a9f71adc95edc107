package schedule_test

import (
	"testing"
	"time"

	"github.com/castlegate/riftwatch/internal/schedule"
	"github.com/stretchr/testify/require"
)

func TestNextSameWeek(t *testing.T) {
	weekly := schedule.NewWeekly(time.UTC, time.Sunday, 18, 0)

	// Wednesday noon rolls forward to Sunday 18:00 the same week.
	now := time.Date(2026, time.August, 19, 12, 0, 0, 0, time.UTC)
	next := weekly.Next(now)
	require.Equal(t, time.Date(2026, time.August, 23, 18, 0, 0, 0, time.UTC), next)
	require.Equal(t, time.Sunday, next.Weekday())
}

func TestNextSameDayBeforeTarget(t *testing.T) {
	weekly := schedule.NewWeekly(time.UTC, time.Sunday, 18, 0)

	now := time.Date(2026, time.August, 23, 17, 59, 0, 0, time.UTC)
	require.Equal(t, time.Date(2026, time.August, 23, 18, 0, 0, 0, time.UTC), weekly.Next(now))
}

func TestNextSameDayAfterTargetRollsAWeek(t *testing.T) {
	weekly := schedule.NewWeekly(time.UTC, time.Sunday, 18, 0)

	now := time.Date(2026, time.August, 23, 18, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2026, time.August, 30, 18, 0, 0, 0, time.UTC), weekly.Next(now))

	later := time.Date(2026, time.August, 23, 20, 15, 0, 0, time.UTC)
	require.Equal(t, time.Date(2026, time.August, 30, 18, 0, 0, 0, time.UTC), weekly.Next(later))
}

func TestNextIsAlwaysStrictlyAfterNow(t *testing.T) {
	weekly := schedule.NewWeekly(time.UTC, time.Sunday, 18, 30)

	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 14; i++ {
		next := weekly.Next(now)
		require.True(t, next.After(now))
		require.Equal(t, time.Sunday, next.Weekday())
		require.Equal(t, 18, next.Hour())
		require.Equal(t, 30, next.Minute())
		now = now.AddDate(0, 0, 1)
	}
}
