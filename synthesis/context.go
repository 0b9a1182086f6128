package synthesis

import (
	"sort"

	"kairoplan/schedule-ai/config"
	"kairoplan/schedule-ai/telemetry"
	"kairoplan/schedule-ai/types"
)

// draftContext is the structured payload handed to the model during
// drafting. Everything in it is bounded: top-N patterns, capped
// projects, summarized telemetry.
type draftContext struct {
	UserSettings     types.UserSettings    `json:"userSettings"`
	LockedEvents     []lockedEventView     `json:"lockedEvents"`
	WorkPatterns     []types.WorkPattern   `json:"workPatterns"`
	ArtifactPatterns []types.WorkPattern   `json:"artifactPatterns"`
	Projects         []types.Project       `json:"projects"`
	WeekDates        []string              `json:"nextWeekDates"`
	ActivitySummary  map[string]int        `json:"recentActivitiesSummary"`
	CodingSummary    map[string]int        `json:"recentCodingSummary"`
}

// lockedEventView is the immutable-constraint presentation of a
// calendar event; write-side fields are not shown to the model.
type lockedEventView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Location    string `json:"location,omitempty"`
	IsAllDay    bool   `json:"isAllDay"`
}

func buildDraftContext(bundle telemetry.Bundle, locked []types.CalendarEvent, combined, artifact []types.WorkPattern, weekStart []string) draftContext {
	views := make([]lockedEventView, 0, len(locked))
	for _, ev := range locked {
		views = append(views, lockedEventView{
			ID:          ev.ID,
			Title:       ev.Title,
			Description: ev.Description,
			StartTime:   ev.StartTime.In(bundle.Location).Format("2006-01-02T15:04:05Z07:00"),
			EndTime:     ev.EndTime.In(bundle.Location).Format("2006-01-02T15:04:05Z07:00"),
			Location:    ev.Location,
			IsAllDay:    ev.IsAllDay,
		})
	}

	return draftContext{
		UserSettings:     bundle.Settings,
		LockedEvents:     views,
		WorkPatterns:     capPatterns(combined, config.Pipeline.MaxWorkPatterns),
		ArtifactPatterns: capPatterns(artifact, config.Pipeline.MaxArtifactPatterns),
		Projects:         bundle.Projects,
		WeekDates:        weekStart,
		ActivitySummary:  summarizeActivities(bundle.Activities),
		CodingSummary:    summarizeCoding(bundle.CodingSessions),
	}
}

func capPatterns(ps []types.WorkPattern, n int) []types.WorkPattern {
	if len(ps) <= n {
		return ps
	}
	return ps[:n]
}

// summarizeActivities counts records per activity type and keeps the
// top N so the prompt stays small.
func summarizeActivities(records []types.ActivityRecord) map[string]int {
	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec.ActivityType]++
	}
	return topN(counts, config.Pipeline.SummaryTopN)
}

// summarizeCoding sums seconds per language and keeps the top N.
func summarizeCoding(sessions []types.CodingSessionRecord) map[string]int {
	totals := make(map[string]int)
	for _, s := range sessions {
		lang := s.Language
		if lang == "" {
			lang = "unknown"
		}
		totals[lang] += s.DurationSeconds
	}
	return topN(totals, config.Pipeline.SummaryTopN)
}

func topN(counts map[string]int, n int) map[string]int {
	type entry struct {
		key   string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for k, v := range counts {
		entries = append(entries, entry{k, v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})

	if len(entries) > n {
		entries = entries[:n]
	}

	out := make(map[string]int, len(entries))
	for _, e := range entries {
		out[e.key] = e.count
	}
	return out
}
