package supabase

import (
	"encoding/json"
	"fmt"

	"kairoplan/schedule-ai/types"

	"github.com/supabase-community/supabase-go"
)

// GetUserSettings fetches scheduling preferences, falling back to
// defaults (UTC, 09:00-17:00, Monday week start) when the user has no
// settings row yet.
func GetUserSettings(client *supabase.Client, userID string) (types.UserSettings, error) {
	resp, _, err := client.From("user_settings").
		Select("*", "", false).
		Eq("user_id", userID).
		Execute()

	if err != nil {
		return types.UserSettings{}, fmt.Errorf("failed to fetch user settings: %w", err)
	}

	var settings []types.UserSettings
	if err := json.Unmarshal(resp, &settings); err != nil {
		return types.UserSettings{}, fmt.Errorf("failed to unmarshal user settings: %w", err)
	}

	if len(settings) == 0 {
		return types.DefaultUserSettings(userID), nil
	}

	s := settings[0]
	if s.TimeZone == "" {
		s.TimeZone = "UTC"
	}
	if s.WorkingHoursStart == "" {
		s.WorkingHoursStart = "09:00"
	}
	if s.WorkingHoursEnd == "" {
		s.WorkingHoursEnd = "17:00"
	}
	return s, nil
}
