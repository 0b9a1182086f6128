package types

// WorkPattern is a mined recurring work bucket. Times are "HH:MM"
// strings already floored to a 15-minute boundary so equal buckets merge
// by key. Patterns live only for the duration of one generation run.
type WorkPattern struct {
	DayOfWeek    int     `json:"day_of_week"` // 0 = Sunday .. 6 = Saturday
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	ActivityType string  `json:"activity_type"`
	ProjectID    *string `json:"project_id,omitempty"`
	Frequency    int     `json:"frequency"`
}
