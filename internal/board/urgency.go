package board

import "time"

// Urgency classifies a due date against "today", date-only and
// time-zone-naive: the time of day never changes the answer.
type Urgency string

const (
	UrgencyNone     Urgency = ""
	UrgencyOverdue  Urgency = "overdue"
	UrgencyDueToday Urgency = "due-today"
	UrgencyUpcoming Urgency = "upcoming"
)

func Classify(due *time.Time, today time.Time) Urgency {
	if due == nil {
		return UrgencyNone
	}

	d := DateOnly(*due)
	t := DateOnly(today)

	switch {
	case d.Before(t):
		return UrgencyOverdue
	case d.Equal(t):
		return UrgencyDueToday
	default:
		return UrgencyUpcoming
	}
}

// DateOnly strips the clock, keeping the calendar date as the wall clock
// shows it. Truncating to a UTC day would shift dates for zones ahead of UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
