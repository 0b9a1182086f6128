package supabase

import (
	"encoding/json"
	"fmt"
	"time"

	"kairoplan/schedule-ai/types"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

// GetCalendarEventsBetween returns the user's calendar events lying
// fully inside [start, end]: start_time at or after start and end_time
// at or before end. These are the locked constraints for a generation
// run and are never written back.
func GetCalendarEventsBetween(client *supabase.Client, userID string, start, end time.Time) ([]types.CalendarEvent, error) {
	resp, _, err := client.From("calendar_events").
		Select("*", "", false).
		Eq("user_id", userID).
		Gte("start_time", start.Format(time.RFC3339)).
		Lte("end_time", end.Format(time.RFC3339)).
		Order("start_time", &postgrest.OrderOpts{Ascending: true}).
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar events: %w", err)
	}

	var events []types.CalendarEvent
	if err := json.Unmarshal(resp, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal calendar events: %w", err)
	}

	return events, nil
}
