package synthesis

import (
	"fmt"
	"sort"
	"time"

	"kairoplan/schedule-ai/apperrors"
	"kairoplan/schedule-ai/config"
	"kairoplan/schedule-ai/types"
)

// validateEvents enforces the hard scheduling constraints per event:
// inside the target week, inside working hours, at most 3 hours long,
// priority in [1,5], and at least a 15-minute gap to every locked event
// and every already-accepted candidate. Violators are dropped, never
// auto-corrected; an empty result is a valid outcome.
func validateEvents(events []types.SuggestedEvent, locked []types.CalendarEvent, settings types.UserSettings, weekStart, weekEnd time.Time, loc *time.Location) []types.SuggestedEvent {
	candidates := append([]types.SuggestedEvent{}, events...)
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].SuggestedStartTime.Before(candidates[j].SuggestedStartTime)
	})

	accepted := make([]types.SuggestedEvent, 0, len(candidates))

	for _, ev := range candidates {
		if reason := checkEvent(ev, locked, accepted, settings, weekStart, weekEnd, loc); reason != "" {
			config.Logger.Warnf("%v: %q %s", apperrors.ErrValidationRejected, ev.Title, reason)
			continue
		}
		accepted = append(accepted, ev)
	}

	return accepted
}

func checkEvent(ev types.SuggestedEvent, locked []types.CalendarEvent, accepted []types.SuggestedEvent, settings types.UserSettings, weekStart, weekEnd time.Time, loc *time.Location) string {
	start := ev.SuggestedStartTime
	end := ev.SuggestedEndTime

	if !end.After(start) {
		return "ends at or before its start"
	}
	if start.Before(weekStart) || end.After(weekEnd) {
		return "falls outside the target week"
	}
	if end.Sub(start) > config.Pipeline.MaxEventDuration {
		return fmt.Sprintf("exceeds the %s duration cap", config.Pipeline.MaxEventDuration)
	}
	if ev.Priority < 1 || ev.Priority > 5 {
		return fmt.Sprintf("priority %d outside [1,5]", ev.Priority)
	}

	startMin := minutesIntoDay(start.In(loc))
	endMin := minutesIntoDay(end.In(loc))
	if endMin == 0 {
		// An end clock of 00:00 is midnight closing the previous day,
		// not a morning start.
		endMin = 24 * 60
	}
	if startMin < clockMinutes(settings.WorkingHoursStart) || endMin > clockMinutes(settings.WorkingHoursEnd) {
		return fmt.Sprintf("outside working hours %s-%s", settings.WorkingHoursStart, settings.WorkingHoursEnd)
	}

	gap := config.Pipeline.MinEventGap
	for _, lk := range locked {
		if tooClose(start, end, lk.StartTime, lk.EndTime, gap) {
			return fmt.Sprintf("within %s of locked event %q", gap, lk.Title)
		}
	}
	for _, other := range accepted {
		if tooClose(start, end, other.SuggestedStartTime, other.SuggestedEndTime, gap) {
			return fmt.Sprintf("within %s of suggested event %q", gap, other.Title)
		}
	}

	return ""
}

func minutesIntoDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func clockMinutes(clock string) int {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

// tooClose reports whether two intervals overlap or sit closer than the
// required gap.
func tooClose(aStart, aEnd, bStart, bEnd time.Time, gap time.Duration) bool {
	return aStart.Before(bEnd.Add(gap)) && bStart.Before(aEnd.Add(gap))
}
