// Package telemetry assembles the read-only input for one generation
// run: historical activity, coding-session and engineering-artifact
// records plus the user's scheduling preferences, all fetched for a
// lookback window.
package telemetry

import (
	"fmt"
	"time"

	"kairoplan/schedule-ai/apperrors"
	"kairoplan/schedule-ai/config"
	"kairoplan/schedule-ai/types"
)

// Store is the slice of the storage layer the aggregator needs. The
// Supabase-backed implementation lives in the supabase package.
type Store interface {
	RecentActivities(userID string, since time.Time) ([]types.ActivityRecord, error)
	RecentCodingSessions(userID string, since time.Time) ([]types.CodingSessionRecord, error)
	RecentArtifacts(userID string, since time.Time) ([]types.EngineeringArtifact, error)
	CalendarEventsBetween(userID string, start, end time.Time) ([]types.CalendarEvent, error)
	UserProjects(userID string, limit int) ([]types.Project, error)
	Settings(userID string) (types.UserSettings, error)
}

// Bundle is the lookback snapshot the miner and synthesizer consume.
type Bundle struct {
	Settings       types.UserSettings
	Location       *time.Location
	Activities     []types.ActivityRecord
	CodingSessions []types.CodingSessionRecord
	Artifacts      []types.EngineeringArtifact
	Projects       []types.Project
	LookbackStart  time.Time
}

type Aggregator struct {
	Store Store
}

// Collect fetches settings and the lookback telemetry. Any storage
// failure is fatal to the run; there is no retry here.
func (a *Aggregator) Collect(userID string) (Bundle, error) {
	settings, err := a.Store.Settings(userID)
	if err != nil {
		return Bundle{}, fmt.Errorf("%w: settings: %v", apperrors.ErrTelemetryFetch, err)
	}

	loc, err := time.LoadLocation(settings.TimeZone)
	if err != nil {
		config.Logger.Warnf("Unknown time zone %q for user %s, falling back to UTC", settings.TimeZone, userID)
		loc = time.UTC
	}

	since := time.Now().AddDate(0, 0, -config.Pipeline.LookbackDays)

	activities, err := a.Store.RecentActivities(userID, since)
	if err != nil {
		return Bundle{}, fmt.Errorf("%w: activities: %v", apperrors.ErrTelemetryFetch, err)
	}

	sessions, err := a.Store.RecentCodingSessions(userID, since)
	if err != nil {
		return Bundle{}, fmt.Errorf("%w: coding sessions: %v", apperrors.ErrTelemetryFetch, err)
	}

	artifacts, err := a.Store.RecentArtifacts(userID, since)
	if err != nil {
		return Bundle{}, fmt.Errorf("%w: artifacts: %v", apperrors.ErrTelemetryFetch, err)
	}

	projects, err := a.Store.UserProjects(userID, config.Pipeline.MaxProjects)
	if err != nil {
		return Bundle{}, fmt.Errorf("%w: projects: %v", apperrors.ErrTelemetryFetch, err)
	}

	config.Logger.Infof("Telemetry bundle for %s: %d activities, %d coding sessions, %d artifacts",
		userID, len(activities), len(sessions), len(artifacts))

	return Bundle{
		Settings:       settings,
		Location:       loc,
		Activities:     activities,
		CodingSessions: sessions,
		Artifacts:      artifacts,
		Projects:       projects,
		LookbackStart:  since,
	}, nil
}

// LockedEvents fetches the user's already-scheduled events inside the
// target week. These constrain the synthesizer and are never mutated.
func (a *Aggregator) LockedEvents(userID string, weekStart, weekEnd time.Time) ([]types.CalendarEvent, error) {
	locked, err := a.Store.CalendarEventsBetween(userID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: calendar events: %v", apperrors.ErrTelemetryFetch, err)
	}
	return locked, nil
}
