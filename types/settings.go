package types

// UserSettings drives timezone handling and the working-hour window the
// synthesizer must stay inside. A user without a settings row gets
// DefaultUserSettings.
type UserSettings struct {
	UserID                         string `json:"user_id"`
	TimeZone                       string `json:"time_zone"`
	WorkingHoursStart              string `json:"working_hours_start"` // "HH:MM"
	WorkingHoursEnd                string `json:"working_hours_end"`   // "HH:MM"
	WeekStartDay                   int    `json:"week_start_day"`      // 0 = Sunday .. 6 = Saturday
	DefaultActivityTrackingEnabled bool   `json:"default_activity_tracking_enabled"`
	DefaultCalendarSyncEnabled     bool   `json:"default_calendar_sync_enabled"`
}

func DefaultUserSettings(userID string) UserSettings {
	return UserSettings{
		UserID:                         userID,
		TimeZone:                       "UTC",
		WorkingHoursStart:              "09:00",
		WorkingHoursEnd:                "17:00",
		WeekStartDay:                   1, // Monday
		DefaultActivityTrackingEnabled: true,
		DefaultCalendarSyncEnabled:     true,
	}
}
