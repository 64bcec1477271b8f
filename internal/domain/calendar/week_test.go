package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekOfStartsOnMonday(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	assert.NoError(t, err)

	// 2026-03-11 is a Wednesday
	w := WeekOf(time.Date(2026, 3, 11, 15, 42, 0, 0, loc))

	assert.Equal(t, time.Monday, w.Start.Weekday())
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, loc), w.Start)
	assert.Equal(t, time.Date(2026, 3, 15, 23, 59, 59, 0, loc), w.End)
}

func TestWeekOfOnSunday(t *testing.T) {
	// a Sunday anchors to the Monday six days earlier, not the next one
	w := WeekOf(time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), w.Start)
}

func TestWeekOfOnMondayMidnight(t *testing.T) {
	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	w := WeekOf(monday)

	assert.Equal(t, monday, w.Start)
	assert.True(t, w.Contains(monday))
}

func TestContainsIsClosedAtBothEnds(t *testing.T) {
	w := WeekOf(time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC))

	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.End))

	// Sunday 23:59:59 is in; one second later is next week
	assert.False(t, w.Contains(w.End.Add(time.Second)))
	assert.False(t, w.Contains(w.Start.Add(-time.Second)))
}

func TestOverlaps(t *testing.T) {
	w := WeekOf(time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC))

	// fully inside
	assert.True(t, w.Overlaps(
		w.Start.Add(24*time.Hour),
		w.Start.Add(26*time.Hour),
	))

	// straddles the start boundary
	assert.True(t, w.Overlaps(
		w.Start.Add(-time.Hour),
		w.Start.Add(time.Hour),
	))

	// entirely before
	assert.False(t, w.Overlaps(
		w.Start.Add(-3*time.Hour),
		w.Start.Add(-time.Hour),
	))

	// entirely after
	assert.False(t, w.Overlaps(
		w.End.Add(time.Hour),
		w.End.Add(2*time.Hour),
	))
}
