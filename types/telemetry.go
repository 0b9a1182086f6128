package types

import "time"

// ActivityRecord is one tracked desktop activity (window focus, app
// usage) as stored in the activities table.
type ActivityRecord struct {
	ID              int        `json:"id,omitempty"`
	UserID          string     `json:"user_id"`
	ActivityType    string     `json:"activity_type"`
	ApplicationName string     `json:"application_name,omitempty"`
	WindowTitle     string     `json:"window_title,omitempty"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"` // nullable
	DurationSeconds int        `json:"duration_seconds,omitempty"`
	ProjectID       *string    `json:"project_id,omitempty"`
}

// CodingSessionRecord is one editor heartbeat aggregate synced from the
// user's coding-time tracker.
type CodingSessionRecord struct {
	ID              string    `json:"id,omitempty"`
	UserID          string    `json:"user_id"`
	ProjectID       *string   `json:"project_id,omitempty"`
	Language        string    `json:"language,omitempty"`
	Editor          string    `json:"editor,omitempty"`
	DurationSeconds int       `json:"duration_seconds,omitempty"`
	RecordedAt      time.Time `json:"recorded_at"`
}

type ArtifactKind string

const (
	ArtifactIssue       ArtifactKind = "issue"
	ArtifactPullRequest ArtifactKind = "pull_request"
	ArtifactCommit      ArtifactKind = "commit"
)

// EngineeringArtifact unifies the issue, pull-request and commit tables
// behind one tagged record. Kind tells which table the row came from.
type EngineeringArtifact struct {
	Kind      ArtifactKind `json:"kind"`
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	ProjectID *string      `json:"project_id,omitempty"`
	Title     string       `json:"title,omitempty"`
	Body      string       `json:"body,omitempty"` // issue body, PR body or commit message
	Status    string       `json:"status,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt *time.Time   `json:"updated_at,omitempty"`
	URL       string       `json:"url,omitempty"`
}

// Project is the bounded project reference handed to the LLM context.
type Project struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}
