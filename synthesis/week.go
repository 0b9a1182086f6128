package synthesis

import (
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"kairoplan/schedule-ai/config"
	"kairoplan/schedule-ai/types"
)

// weekWindow returns [start, end) of the week after the one containing
// now, anchored on the user's week-start day in their zone.
func weekWindow(now time.Time, weekStartDay int, loc *time.Location) (time.Time, time.Time) {
	d := now.In(loc).AddDate(0, 0, 7)
	back := (int(d.Weekday()) - weekStartDay + 7) % 7
	start := time.Date(d.Year(), d.Month(), d.Day()-back, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 7)
}

// weekDates lists the seven days of the window as "2006-01-02" strings
// for the draft prompt.
func weekDates(weekStart time.Time) []string {
	dates := make([]string, 7)
	for i := 0; i < 7; i++ {
		dates[i] = weekStart.AddDate(0, 0, i).Format("2006-01-02")
	}
	return dates
}

// expandLockedEvents turns recurring locked events into their concrete
// occurrences inside the target week. Events without a recurrence rule
// pass through; an unparseable rule falls back to the stored span with a
// warning rather than dropping the constraint.
func expandLockedEvents(events []types.CalendarEvent, weekStart, weekEnd time.Time) []types.CalendarEvent {
	out := make([]types.CalendarEvent, 0, len(events))

	for _, ev := range events {
		if strings.TrimSpace(ev.RecurrenceRule) == "" {
			out = append(out, ev)
			continue
		}

		rule, err := rrule.StrToRRule(strings.TrimPrefix(ev.RecurrenceRule, "RRULE:"))
		if err != nil {
			config.Logger.Warnf("Unparseable recurrence rule on event %s: %v", ev.ID, err)
			out = append(out, ev)
			continue
		}
		rule.DTStart(ev.StartTime)

		duration := ev.EndTime.Sub(ev.StartTime)
		for _, occ := range rule.Between(weekStart, weekEnd, true) {
			inst := ev
			inst.StartTime = occ
			inst.EndTime = occ.Add(duration)
			out = append(out, inst)
		}
	}

	return out
}
