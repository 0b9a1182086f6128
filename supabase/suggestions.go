package supabase

import (
	"encoding/json"
	"fmt"
	"time"

	"kairoplan/schedule-ai/apperrors"
	"kairoplan/schedule-ai/types"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

const suggestionsTable = "ai_suggested_events"

// newSuggestionID matches the 30-char varchar keys the schema uses.
func newSuggestionID() string {
	return uuid.NewString()[:30]
}

// ListSuggestedEvents returns a page of the user's suggestions ordered
// by suggested start time, optionally filtered by status.
func ListSuggestedEvents(client *supabase.Client, userID, status string, page, perPage int) ([]types.SuggestedEvent, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	query := client.From(suggestionsTable).
		Select("*", "", false).
		Eq("user_id", userID)

	if status != "" {
		query = query.Eq("status", status)
	}

	resp, _, err := query.
		Order("suggested_start_time", &postgrest.OrderOpts{Ascending: true}).
		Range((page-1)*perPage, page*perPage-1, "").
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to fetch suggestions: %w", err)
	}

	var suggestions []types.SuggestedEvent
	if err := json.Unmarshal(resp, &suggestions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal suggestions: %w", err)
	}

	return suggestions, nil
}

// GetSuggestedEvent fetches a single suggestion owned by the user.
func GetSuggestedEvent(client *supabase.Client, id, userID string) (types.SuggestedEvent, error) {
	resp, _, err := client.From(suggestionsTable).
		Select("*", "", false).
		Eq("id", id).
		Eq("user_id", userID).
		Execute()

	if err != nil {
		return types.SuggestedEvent{}, fmt.Errorf("failed to fetch suggestion: %w", err)
	}

	var suggestions []types.SuggestedEvent
	if err := json.Unmarshal(resp, &suggestions); err != nil {
		return types.SuggestedEvent{}, fmt.Errorf("failed to unmarshal suggestion: %w", err)
	}

	if len(suggestions) == 0 {
		return types.SuggestedEvent{}, fmt.Errorf("suggestion %s not found", id)
	}

	return suggestions[0], nil
}

// InsertSuggestedEvents bulk-inserts one generation run's surviving
// events. Every row gets a fresh id and status pending.
func InsertSuggestedEvents(client *supabase.Client, userID string, events []types.SuggestedEvent) ([]types.SuggestedEvent, error) {
	if len(events) == 0 {
		return nil, nil
	}

	for i := range events {
		events[i].ID = newSuggestionID()
		events[i].UserID = userID
		events[i].Status = types.SuggestionPending
		if events[i].CreatedAt.IsZero() {
			events[i].CreatedAt = time.Now()
		}
	}

	resp, _, err := client.From(suggestionsTable).
		Insert(events, false, "", "representation", "").
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to insert suggestions: %w", err)
	}

	var inserted []types.SuggestedEvent
	if err := json.Unmarshal(resp, &inserted); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inserted suggestions: %w", err)
	}

	return inserted, nil
}

// InsertAndReturnSuggestedEvent creates one manually-authored
// suggestion.
func InsertAndReturnSuggestedEvent(client *supabase.Client, event types.SuggestedEvent) (types.SuggestedEvent, error) {
	event.ID = newSuggestionID()
	event.Status = types.SuggestionPending
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	resp, _, err := client.From(suggestionsTable).
		Insert(event, false, "", "representation", "").
		Execute()

	if err != nil {
		return types.SuggestedEvent{}, fmt.Errorf("failed to insert suggestion: %w", err)
	}

	var inserted []types.SuggestedEvent
	if err := json.Unmarshal(resp, &inserted); err != nil {
		return types.SuggestedEvent{}, fmt.Errorf("failed to unmarshal inserted suggestion: %w", err)
	}

	if len(inserted) == 0 {
		return types.SuggestedEvent{}, fmt.Errorf("insert returned no rows")
	}

	return inserted[0], nil
}

// UpdateSuggestedEventStatus applies a one-way lifecycle transition.
// Anything other than pending -> accepted/rejected is refused with
// apperrors.ErrLifecycleViolation before the store is touched.
func UpdateSuggestedEventStatus(client *supabase.Client, id, userID, status string) (types.SuggestedEvent, error) {
	current, err := GetSuggestedEvent(client, id, userID)
	if err != nil {
		return types.SuggestedEvent{}, err
	}

	if !types.CanTransition(current.Status, status) {
		return types.SuggestedEvent{}, fmt.Errorf("%w: %s -> %s", apperrors.ErrLifecycleViolation, current.Status, status)
	}

	now := time.Now()
	resp, _, err := client.From(suggestionsTable).
		Update(map[string]interface{}{
			"status":     status,
			"updated_at": now.Format(time.RFC3339),
		}, "representation", "").
		Eq("id", id).
		Eq("user_id", userID).
		Execute()

	if err != nil {
		return types.SuggestedEvent{}, fmt.Errorf("failed to update suggestion status: %w", err)
	}

	var updated []types.SuggestedEvent
	if err := json.Unmarshal(resp, &updated); err != nil {
		return types.SuggestedEvent{}, fmt.Errorf("failed to unmarshal updated suggestion: %w", err)
	}

	if len(updated) == 0 {
		return types.SuggestedEvent{}, fmt.Errorf("suggestion %s not found", id)
	}

	return updated[0], nil
}

// DeleteSuggestedEvent removes a suggestion owned by the user.
func DeleteSuggestedEvent(client *supabase.Client, id, userID string) error {
	_, _, err := client.From(suggestionsTable).
		Delete("", "").
		Eq("id", id).
		Eq("user_id", userID).
		Execute()

	if err != nil {
		return fmt.Errorf("failed to delete suggestion: %w", err)
	}

	return nil
}
