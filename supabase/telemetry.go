package supabase

import (
	"encoding/json"
	"fmt"
	"time"

	"kairoplan/schedule-ai/types"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

// GetRecentActivities returns tracked activities for a user since the
// given cutoff, newest first.
func GetRecentActivities(client *supabase.Client, userID string, since time.Time) ([]types.ActivityRecord, error) {
	resp, _, err := client.From("activities").
		Select("*", "", false).
		Eq("user_id", userID).
		Gte("start_time", since.Format(time.RFC3339)).
		Order("start_time", &postgrest.OrderOpts{Ascending: false}).
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}

	var activities []types.ActivityRecord
	if err := json.Unmarshal(resp, &activities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal activities: %w", err)
	}

	return activities, nil
}

// GetRecentCodingSessions returns coding-tracker rows since the cutoff.
func GetRecentCodingSessions(client *supabase.Client, userID string, since time.Time) ([]types.CodingSessionRecord, error) {
	resp, _, err := client.From("wakatime_data").
		Select("*", "", false).
		Eq("user_id", userID).
		Gte("recorded_at", since.Format(time.RFC3339)).
		Order("recorded_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to fetch coding sessions: %w", err)
	}

	var sessions []types.CodingSessionRecord
	if err := json.Unmarshal(resp, &sessions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal coding sessions: %w", err)
	}

	return sessions, nil
}

// artifact table layouts differ slightly, so each gets its own row type
// before unification behind EngineeringArtifact.

type issueRow struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	ProjectID *string    `json:"project_id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	GithubURL string     `json:"github_url"`
}

type commitRow struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProjectID *string   `json:"project_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	GithubURL string    `json:"github_url"`
}

// GetRecentArtifacts reads the issue, pull-request and commit tables for
// the lookback window and unifies them into tagged EngineeringArtifact
// records.
func GetRecentArtifacts(client *supabase.Client, userID string, since time.Time) ([]types.EngineeringArtifact, error) {
	var out []types.EngineeringArtifact

	for _, src := range []struct {
		table string
		kind  types.ArtifactKind
	}{
		{"github_issues", types.ArtifactIssue},
		{"github_pull_requests", types.ArtifactPullRequest},
	} {
		resp, _, err := client.From(src.table).
			Select("*", "", false).
			Eq("user_id", userID).
			Gte("created_at", since.Format(time.RFC3339)).
			Order("created_at", &postgrest.OrderOpts{Ascending: false}).
			Execute()

		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", src.table, err)
		}

		var rows []issueRow
		if err := json.Unmarshal(resp, &rows); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", src.table, err)
		}

		for _, row := range rows {
			out = append(out, types.EngineeringArtifact{
				Kind:      src.kind,
				ID:        row.ID,
				UserID:    row.UserID,
				ProjectID: row.ProjectID,
				Title:     row.Title,
				Body:      row.Body,
				Status:    row.Status,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
				URL:       row.GithubURL,
			})
		}
	}

	resp, _, err := client.From("github_commits").
		Select("*", "", false).
		Eq("user_id", userID).
		Gte("created_at", since.Format(time.RFC3339)).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to fetch github_commits: %w", err)
	}

	var commits []commitRow
	if err := json.Unmarshal(resp, &commits); err != nil {
		return nil, fmt.Errorf("failed to unmarshal github_commits: %w", err)
	}

	for _, row := range commits {
		out = append(out, types.EngineeringArtifact{
			Kind:      types.ArtifactCommit,
			ID:        row.ID,
			UserID:    row.UserID,
			ProjectID: row.ProjectID,
			Body:      row.Message,
			CreatedAt: row.CreatedAt,
			URL:       row.GithubURL,
		})
	}

	return out, nil
}

// GetUserProjects returns the user's projects, newest first, capped at
// limit.
func GetUserProjects(client *supabase.Client, userID string, limit int) ([]types.Project, error) {
	resp, _, err := client.From("projects").
		Select("*", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}

	var projects []types.Project
	if err := json.Unmarshal(resp, &projects); err != nil {
		return nil, fmt.Errorf("failed to unmarshal projects: %w", err)
	}

	return projects, nil
}
