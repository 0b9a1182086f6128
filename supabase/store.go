package supabase

import (
	"time"

	"kairoplan/schedule-ai/types"

	"github.com/supabase-community/supabase-go"
)

// TelemetryStore adapts the package-level query functions to the
// telemetry.Store interface for a single request-scoped client.
type TelemetryStore struct {
	Client *supabase.Client
}

func (s TelemetryStore) RecentActivities(userID string, since time.Time) ([]types.ActivityRecord, error) {
	return GetRecentActivities(s.Client, userID, since)
}

func (s TelemetryStore) RecentCodingSessions(userID string, since time.Time) ([]types.CodingSessionRecord, error) {
	return GetRecentCodingSessions(s.Client, userID, since)
}

func (s TelemetryStore) RecentArtifacts(userID string, since time.Time) ([]types.EngineeringArtifact, error) {
	return GetRecentArtifacts(s.Client, userID, since)
}

func (s TelemetryStore) CalendarEventsBetween(userID string, start, end time.Time) ([]types.CalendarEvent, error) {
	return GetCalendarEventsBetween(s.Client, userID, start, end)
}

func (s TelemetryStore) UserProjects(userID string, limit int) ([]types.Project, error) {
	return GetUserProjects(s.Client, userID, limit)
}

func (s TelemetryStore) Settings(userID string) (types.UserSettings, error) {
	return GetUserSettings(s.Client, userID)
}

// SuggestionStore adapts bulk persistence to the synthesis package's
// writer interface.
type SuggestionStore struct {
	Client *supabase.Client
}

func (s SuggestionStore) InsertSuggestedEvents(userID string, events []types.SuggestedEvent) ([]types.SuggestedEvent, error) {
	return InsertSuggestedEvents(s.Client, userID, events)
}
