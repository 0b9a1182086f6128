// Package patterns buckets heterogeneous telemetry into recurring
// (day-of-week, time-of-day) work patterns. All mining is pure in-memory
// folding; nothing here touches storage.
package patterns

import (
	"sort"
	"time"

	"kairoplan/schedule-ai/config"
	"kairoplan/schedule-ai/types"
)

// patternKey is the composite bucket identity. Records sharing a key
// merge into one WorkPattern.
type patternKey struct {
	dayOfWeek    int
	startBucket  string
	activityType string
	projectID    string // "" for no project
}

// accumulator folds records into keyed buckets. It replaces the
// module-level mutable maps the feature grew up with: one accumulator
// per mining pass, explicitly threaded through.
type accumulator struct {
	buckets map[patternKey]*types.WorkPattern
}

func newAccumulator() *accumulator {
	return &accumulator{buckets: make(map[patternKey]*types.WorkPattern)}
}

func (a *accumulator) add(key patternKey, endBucket string, projectID *string) {
	if p, ok := a.buckets[key]; ok {
		p.Frequency++
		if endBucket > p.EndTime {
			p.EndTime = endBucket
		}
		return
	}

	a.buckets[key] = &types.WorkPattern{
		DayOfWeek:    key.dayOfWeek,
		StartTime:    key.startBucket,
		EndTime:      endBucket,
		ActivityType: key.activityType,
		ProjectID:    projectID,
		Frequency:    1,
	}
}

// patterns drains the accumulator sorted by frequency descending.
// Equal-frequency buckets order by day then start time so output is
// deterministic.
func (a *accumulator) patterns() []types.WorkPattern {
	out := make([]types.WorkPattern, 0, len(a.buckets))
	for _, p := range a.buckets {
		out = append(out, *p)
	}
	sortPatterns(out)
	return out
}

func sortPatterns(ps []types.WorkPattern) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Frequency != ps[j].Frequency {
			return ps[i].Frequency > ps[j].Frequency
		}
		if ps[i].DayOfWeek != ps[j].DayOfWeek {
			return ps[i].DayOfWeek < ps[j].DayOfWeek
		}
		return ps[i].StartTime < ps[j].StartTime
	})
}

func projectKey(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}

// MineActivities buckets tracked activities by (day, 15-min start
// bucket, activity type, project). The bucket's end widens to the latest
// observed end time.
func MineActivities(records []types.ActivityRecord, loc *time.Location) []types.WorkPattern {
	acc := newAccumulator()

	for _, rec := range records {
		start := NormalizeClock(clockOf(rec.StartTime, loc))
		end := start
		if rec.EndTime != nil {
			end = NormalizeClock(clockOf(*rec.EndTime, loc))
		}

		key := patternKey{
			dayOfWeek:    dayOf(rec.StartTime, loc),
			startBucket:  start,
			activityType: rec.ActivityType,
			projectID:    projectKey(rec.ProjectID),
		}
		acc.add(key, end, rec.ProjectID)
	}

	return acc.patterns()
}

// MineCodingSessions buckets coding-tracker heartbeats by (day, 15-min
// bucket, project). Sessions carry a single timestamp, so the bucket is
// both start and end until merging widens it.
func MineCodingSessions(sessions []types.CodingSessionRecord, loc *time.Location) []types.WorkPattern {
	acc := newAccumulator()

	for _, s := range sessions {
		bucket := NormalizeClock(clockOf(s.RecordedAt, loc))
		key := patternKey{
			dayOfWeek:    dayOf(s.RecordedAt, loc),
			startBucket:  bucket,
			activityType: "coding",
			projectID:    projectKey(s.ProjectID),
		}
		acc.add(key, bucket, s.ProjectID)
	}

	return acc.patterns()
}

// MineArtifacts buckets issue/PR/commit creation times the same way,
// tagged as coding activity. Artifacts with a missing timestamp are
// skipped with a warning, never fatal.
func MineArtifacts(artifacts []types.EngineeringArtifact, loc *time.Location) []types.WorkPattern {
	acc := newAccumulator()

	for _, art := range artifacts {
		if art.CreatedAt.IsZero() {
			config.Logger.Warnf("Skipping %s %s: missing created_at", art.Kind, art.ID)
			continue
		}

		bucket := NormalizeClock(clockOf(art.CreatedAt, loc))
		key := patternKey{
			dayOfWeek:    dayOf(art.CreatedAt, loc),
			startBucket:  bucket,
			activityType: "coding",
			projectID:    projectKey(art.ProjectID),
		}
		acc.add(key, bucket, art.ProjectID)
	}

	return acc.patterns()
}

// Combine merges activity-derived and coding-derived patterns. A pattern
// that overlaps an already-merged pattern on the same day folds into it:
// the interval becomes the union and frequencies sum. "HH:MM" strings
// compare correctly as text, so no re-parsing happens here.
func Combine(activity, coding []types.WorkPattern) []types.WorkPattern {
	merged := make([]types.WorkPattern, 0, len(activity)+len(coding))

	for _, p := range append(append([]types.WorkPattern{}, activity...), coding...) {
		idx := -1
		for i := range merged {
			if merged[i].DayOfWeek == p.DayOfWeek &&
				merged[i].StartTime <= p.EndTime &&
				merged[i].EndTime >= p.StartTime {
				idx = i
				break
			}
		}

		if idx == -1 {
			merged = append(merged, p)
			continue
		}

		if p.StartTime < merged[idx].StartTime {
			merged[idx].StartTime = p.StartTime
		}
		if p.EndTime > merged[idx].EndTime {
			merged[idx].EndTime = p.EndTime
		}
		merged[idx].Frequency += p.Frequency
	}

	sortPatterns(merged)
	return merged
}
