package types

import "time"

// CalendarEvent is a user-authored or externally-synced event. The
// synthesis pipeline reads these as immutable constraints and never
// writes them.
type CalendarEvent struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	StartTime          time.Time  `json:"start_time"`
	EndTime            time.Time  `json:"end_time"`
	Location           string     `json:"location,omitempty"`
	IsAllDay           bool       `json:"is_all_day"`
	RecurrenceRule     string     `json:"recurrence_rule,omitempty"`
	ExternalCalendarID string     `json:"external_calendar_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at,omitempty"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

const (
	SuggestionPending  = "pending"
	SuggestionAccepted = "accepted"
	SuggestionRejected = "rejected"
)

// SuggestedEvent is one row of a generation run's output. Status moves
// one-way from pending; suggested times are fixed at creation.
type SuggestedEvent struct {
	ID                 string     `json:"id,omitempty"`
	UserID             string     `json:"user_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	SuggestedStartTime time.Time  `json:"suggested_start_time"`
	SuggestedEndTime   time.Time  `json:"suggested_end_time"`
	Priority           int        `json:"priority"` // 1 (highest) .. 5
	RelatedActivityID  *string    `json:"related_activity_id,omitempty"`
	RelatedProjectID   *string    `json:"related_project_id,omitempty"`
	Status             string     `json:"status"`
	Steps              string     `json:"steps,omitempty"`
	Background         string     `json:"background,omitempty"`
	Challenges         string     `json:"challenges,omitempty"`
	Feedback           string     `json:"feedback,omitempty"`
	CreatedAt          time.Time  `json:"created_at,omitempty"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

// CanTransition reports whether a suggestion may move from one status to
// another. Accepted and rejected are terminal.
func CanTransition(from, to string) bool {
	if from != SuggestionPending {
		return false
	}
	return to == SuggestionAccepted || to == SuggestionRejected
}

type SuggestionResponse struct {
	Success      bool            `json:"success"`
	Suggestion   *SuggestedEvent `json:"suggestion,omitempty"`
	ErrorMessage string          `json:"error,omitempty"`
}

type SuggestionListResponse struct {
	Success      bool             `json:"success"`
	Suggestions  []SuggestedEvent `json:"suggestions,omitempty"`
	Total        int              `json:"total,omitempty"`
	Page         int              `json:"page,omitempty"`
	PerPage      int              `json:"per_page,omitempty"`
	ErrorMessage string           `json:"error,omitempty"`
}

type DeleteSuggestionResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}
