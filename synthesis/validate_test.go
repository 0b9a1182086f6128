package synthesis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kairoplan/schedule-ai/types"
)

var (
	testWeekStart = time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC) // Monday
	testWeekEnd   = testWeekStart.AddDate(0, 0, 7)
)

func suggestionAt(title string, day, hour, min int, dur time.Duration, priority int) types.SuggestedEvent {
	start := testWeekStart.AddDate(0, 0, day).Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
	return types.SuggestedEvent{
		Title:              title,
		SuggestedStartTime: start,
		SuggestedEndTime:   start.Add(dur),
		Priority:           priority,
	}
}

func lockedAt(title string, day, hour int, dur time.Duration) types.CalendarEvent {
	start := testWeekStart.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour)
	return types.CalendarEvent{
		Title:     title,
		StartTime: start,
		EndTime:   start.Add(dur),
	}
}

func validate(t *testing.T, events []types.SuggestedEvent, locked []types.CalendarEvent) []types.SuggestedEvent {
	t.Helper()
	settings := types.DefaultUserSettings("user-1")
	return validateEvents(events, locked, settings, testWeekStart, testWeekEnd, time.UTC)
}

func titles(events []types.SuggestedEvent) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Title)
	}
	return out
}

func TestValidateEvents_LockedEventConflicts(t *testing.T) {
	locked := []types.CalendarEvent{lockedAt("standup", 0, 10, time.Hour)} // Mon 10:00-11:00

	kept := validate(t, []types.SuggestedEvent{
		suggestionAt("overlaps standup", 0, 10, 30, time.Hour, 2),
		suggestionAt("ten minutes after", 0, 11, 10, time.Hour, 2),
		suggestionAt("fifteen minutes after", 0, 11, 15, time.Hour, 2),
	}, locked)

	assert.Equal(t, []string{"fifteen minutes after"}, titles(kept))
}

func TestValidateEvents_DurationCap(t *testing.T) {
	kept := validate(t, []types.SuggestedEvent{
		suggestionAt("four hour block", 1, 9, 0, 4*time.Hour, 1),
		suggestionAt("three hour block", 2, 9, 0, 3*time.Hour, 1),
	}, nil)

	assert.Equal(t, []string{"three hour block"}, titles(kept))
}

func TestValidateEvents_WorkingHours(t *testing.T) {
	kept := validate(t, []types.SuggestedEvent{
		suggestionAt("too early", 0, 8, 0, time.Hour, 2),
		suggestionAt("runs past five", 1, 16, 30, time.Hour, 2),
		suggestionAt("ends at five", 2, 16, 0, time.Hour, 2),
	}, nil)

	assert.Equal(t, []string{"ends at five"}, titles(kept))
}

func TestValidateEvents_MidnightEndIsOutsideWorkingHours(t *testing.T) {
	// An event ending exactly at midnight reads as clock 00:00; that must
	// count as the end of its day, not a pre-dawn start.
	kept := validate(t, []types.SuggestedEvent{
		suggestionAt("late night block", 0, 23, 0, time.Hour, 2),
	}, nil)

	assert.Empty(t, kept)
}

func TestValidateEvents_PriorityBounds(t *testing.T) {
	kept := validate(t, []types.SuggestedEvent{
		suggestionAt("priority zero", 0, 9, 0, time.Hour, 0),
		suggestionAt("priority six", 1, 9, 0, time.Hour, 6),
		suggestionAt("priority five", 2, 9, 0, time.Hour, 5),
	}, nil)

	assert.Equal(t, []string{"priority five"}, titles(kept))
}

func TestValidateEvents_DegenerateAndOutOfWeek(t *testing.T) {
	backwards := suggestionAt("ends before start", 0, 11, 0, time.Hour, 2)
	backwards.SuggestedEndTime = backwards.SuggestedStartTime.Add(-time.Hour)

	kept := validate(t, []types.SuggestedEvent{
		backwards,
		suggestionAt("previous week", -3, 10, 0, time.Hour, 2),
		suggestionAt("following week", 8, 10, 0, time.Hour, 2),
	}, nil)

	assert.Empty(t, kept)
}

func TestValidateEvents_GapBetweenSuggestions(t *testing.T) {
	kept := validate(t, []types.SuggestedEvent{
		suggestionAt("first", 0, 9, 0, time.Hour, 2),
		suggestionAt("back to back", 0, 10, 0, time.Hour, 2),
		suggestionAt("after the gap", 0, 10, 15, time.Hour, 2),
	}, nil)

	// Earlier-starting events win the slot; the back-to-back one is
	// dropped for missing the gap.
	assert.Equal(t, []string{"first", "after the gap"}, titles(kept))
}

func TestValidateEvents_EmptyResultIsValid(t *testing.T) {
	locked := []types.CalendarEvent{lockedAt("all-day workshop", 0, 9, 8 * time.Hour)}
	kept := validate(t, []types.SuggestedEvent{
		suggestionAt("doomed", 0, 10, 0, time.Hour, 2),
	}, locked)

	require.NotNil(t, kept, "an empty survivor set is a valid outcome, not an error")
	assert.Empty(t, kept)
}
