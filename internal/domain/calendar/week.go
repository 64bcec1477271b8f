package calendar

import "time"

// Window is a closed interval: an instant exactly at End is inside, one
// second past it is not.
type Window struct {
	Start time.Time
	End   time.Time
}

// WeekOf returns the Monday-through-Sunday window containing t, in t's
// location. Start is Monday 00:00:00, End is Sunday 23:59:59.
func WeekOf(t time.Time) Window {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7

	start := time.Date(
		t.Year(), t.Month(), t.Day(),
		0, 0, 0, 0,
		t.Location(),
	).AddDate(0, 0, -daysSinceMonday)

	end := start.AddDate(0, 0, 7).Add(-time.Second)

	return Window{Start: start, End: end}
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Overlaps reports whether [start, end) intersects the window.
func (w Window) Overlaps(start, end time.Time) bool {
	return start.Before(w.End.Add(time.Second)) && end.After(w.Start)
}
