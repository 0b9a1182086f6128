package patterns

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kairoplan/schedule-ai/types"
)

// mondayAt returns a Monday timestamp weeks back from a fixed anchor.
func mondayAt(week int, hour, minute int) time.Time {
	// 2026-01-05 is a Monday.
	base := time.Date(2026, 1, 5, hour, minute, 0, 0, time.UTC)
	return base.AddDate(0, 0, -7*week)
}

func activityOn(ts time.Time, durationMinutes int, activityType string, projectID *string) types.ActivityRecord {
	end := ts.Add(time.Duration(durationMinutes) * time.Minute)
	return types.ActivityRecord{
		UserID:       "user-1",
		ActivityType: activityType,
		StartTime:    ts,
		EndTime:      &end,
		ProjectID:    projectID,
	}
}

func TestMineActivities_SharedKeyMergesToOnePattern(t *testing.T) {
	var records []types.ActivityRecord
	for week := 0; week < 4; week++ {
		records = append(records, activityOn(mondayAt(week, 9, 0), 60, "meeting", nil))
	}

	got := MineActivities(records, time.UTC)

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].DayOfWeek)
	assert.Equal(t, "09:00", got[0].StartTime)
	assert.Equal(t, "10:00", got[0].EndTime)
	assert.Equal(t, "meeting", got[0].ActivityType)
	assert.Equal(t, 4, got[0].Frequency)
}

func TestMineActivities_KeySeparatesTypeAndProject(t *testing.T) {
	proj := "proj-1"
	records := []types.ActivityRecord{
		activityOn(mondayAt(0, 9, 0), 30, "meeting", nil),
		activityOn(mondayAt(1, 9, 0), 30, "coding", nil),
		activityOn(mondayAt(2, 9, 0), 30, "coding", &proj),
	}

	got := MineActivities(records, time.UTC)
	assert.Len(t, got, 3)
}

func TestMineActivities_EndTimeWidensToUnion(t *testing.T) {
	records := []types.ActivityRecord{
		activityOn(mondayAt(0, 9, 5), 30, "coding", nil),  // 09:00 bucket, ends 09:30 bucket
		activityOn(mondayAt(1, 9, 10), 80, "coding", nil), // same bucket, ends 10:30 bucket
	}

	got := MineActivities(records, time.UTC)

	require.Len(t, got, 1)
	assert.Equal(t, "09:00", got[0].StartTime)
	assert.Equal(t, "10:30", got[0].EndTime)
	assert.Equal(t, 2, got[0].Frequency)
}

func TestMineActivities_ZoneChangesDayAndClock(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 23:30 UTC Monday is 08:30 Tuesday in Tokyo.
	records := []types.ActivityRecord{
		activityOn(time.Date(2026, 1, 5, 23, 30, 0, 0, time.UTC), 15, "coding", nil),
	}

	got := MineActivities(records, tokyo)

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].DayOfWeek)
	assert.Equal(t, "08:30", got[0].StartTime)
}

func TestMineCodingSessions(t *testing.T) {
	sessions := []types.CodingSessionRecord{
		{UserID: "user-1", Language: "go", RecordedAt: mondayAt(0, 14, 10)},
		{UserID: "user-1", Language: "go", RecordedAt: mondayAt(1, 14, 5)},
		{UserID: "user-1", Language: "go", RecordedAt: mondayAt(0, 16, 0)},
	}

	got := MineCodingSessions(sessions, time.UTC)

	require.Len(t, got, 2)
	// Frequency-descending order.
	assert.Equal(t, "14:00", got[0].StartTime)
	assert.Equal(t, 2, got[0].Frequency)
	assert.Equal(t, "coding", got[0].ActivityType)
	assert.Equal(t, "16:00", got[1].StartTime)
}

func TestMineArtifacts_SkipsMissingTimestamps(t *testing.T) {
	artifacts := []types.EngineeringArtifact{
		{Kind: types.ArtifactCommit, ID: "c1", CreatedAt: mondayAt(0, 11, 0)},
		{Kind: types.ArtifactIssue, ID: "i1"}, // zero CreatedAt, skipped
		{Kind: types.ArtifactCommit, ID: "c2", CreatedAt: mondayAt(1, 11, 2)},
	}

	got := MineArtifacts(artifacts, time.UTC)

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Frequency)
	assert.Equal(t, "coding", got[0].ActivityType)
}

func TestCombine_OverlapUnionsAndSumsFrequency(t *testing.T) {
	activity := []types.WorkPattern{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00", ActivityType: "meeting", Frequency: 3},
	}
	coding := []types.WorkPattern{
		{DayOfWeek: 1, StartTime: "09:45", EndTime: "11:00", ActivityType: "coding", Frequency: 2},
		{DayOfWeek: 3, StartTime: "13:00", EndTime: "14:00", ActivityType: "coding", Frequency: 1},
	}

	got := Combine(activity, coding)

	require.Len(t, got, 2)
	assert.Equal(t, "09:00", got[0].StartTime)
	assert.Equal(t, "11:00", got[0].EndTime)
	assert.Equal(t, 5, got[0].Frequency)
	assert.Equal(t, 3, got[1].DayOfWeek)
}

func TestCombine_SameDayDisjointStaysSeparate(t *testing.T) {
	a := []types.WorkPattern{{DayOfWeek: 2, StartTime: "09:00", EndTime: "10:00", Frequency: 1}}
	b := []types.WorkPattern{{DayOfWeek: 2, StartTime: "15:00", EndTime: "16:00", Frequency: 1}}

	got := Combine(a, b)
	assert.Len(t, got, 2)
}

func TestSortOrder_TieBreaksDeterministic(t *testing.T) {
	ps := []types.WorkPattern{
		{DayOfWeek: 4, StartTime: "09:00", Frequency: 2},
		{DayOfWeek: 1, StartTime: "14:00", Frequency: 2},
		{DayOfWeek: 1, StartTime: "09:00", Frequency: 2},
		{DayOfWeek: 2, StartTime: "09:00", Frequency: 5},
	}
	sortPatterns(ps)

	assert.Equal(t, 5, ps[0].Frequency)
	assert.Equal(t, 1, ps[1].DayOfWeek)
	assert.Equal(t, "09:00", ps[1].StartTime)
	assert.Equal(t, "14:00", ps[2].StartTime)
	assert.Equal(t, 4, ps[3].DayOfWeek)
}
