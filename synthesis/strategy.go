// Package synthesis runs the multi-stage schedule generation pipeline:
// draft the week with mined patterns, detail each task with retrieved
// context, refine the whole list, validate against hard constraints,
// then persist the survivors as pending suggestions.
package synthesis

import (
	"context"
	"time"

	"kairoplan/schedule-ai/config"
	"kairoplan/schedule-ai/llm"
	"kairoplan/schedule-ai/patterns"
	"kairoplan/schedule-ai/telemetry"
	"kairoplan/schedule-ai/types"
)

// Stage names the pipeline's state machine. PERSISTED and FAILED are
// terminal.
type Stage string

const (
	StageInit       Stage = "INIT"
	StageDrafting   Stage = "DRAFTING"
	StageDetailing  Stage = "DETAILING"
	StageRefining   Stage = "REFINING"
	StageValidating Stage = "VALIDATING"
	StagePersisted  Stage = "PERSISTED"
	StageFailed     Stage = "FAILED"
)

// Strategy generates one week of suggestions for a user. Earlier
// iterations of this feature shipped single-shot and retrieval-free
// variants; MultiStageStrategy is the reference implementation and the
// only one still maintained.
type Strategy interface {
	GenerateWeek(ctx context.Context, userID string) ([]types.SuggestedEvent, error)
}

// ContextRetriever is the semantic-search dependency of DETAILING.
// *embeddings.Retriever satisfies it; its failure mode is an empty
// slice, never an error.
type ContextRetriever interface {
	Search(ctx context.Context, query string, limit int) []types.RetrievedChunk
}

// SuggestionWriter persists one run's surviving events.
type SuggestionWriter interface {
	InsertSuggestedEvents(userID string, events []types.SuggestedEvent) ([]types.SuggestedEvent, error)
}

type MultiStageStrategy struct {
	Aggregator *telemetry.Aggregator
	Retriever  ContextRetriever
	Completer  llm.Completer
	Writer     SuggestionWriter

	// Now is swappable for tests; zero value means time.Now.
	Now func() time.Time
}

func (s *MultiStageStrategy) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GenerateWeek runs the full pipeline for one user. Two concurrent runs
// for the same user are not mutually excluded; both may persist
// suggestions for the same slots.
func (s *MultiStageStrategy) GenerateWeek(ctx context.Context, userID string) ([]types.SuggestedEvent, error) {
	stage := StageInit
	fail := func(err error) ([]types.SuggestedEvent, error) {
		config.Logger.Errorf("Generation run for %s failed in %s: %v", userID, stage, err)
		stage = StageFailed
		return nil, err
	}

	now := s.now()

	bundle, err := s.Aggregator.Collect(userID)
	if err != nil {
		return fail(err)
	}

	weekStart, weekEnd := weekWindow(now, bundle.Settings.WeekStartDay, bundle.Location)

	lockedRaw, err := s.Aggregator.LockedEvents(userID, weekStart, weekEnd)
	if err != nil {
		return fail(err)
	}
	locked := expandLockedEvents(lockedRaw, weekStart, weekEnd)

	activityPatterns := patterns.MineActivities(bundle.Activities, bundle.Location)
	codingPatterns := patterns.MineCodingSessions(bundle.CodingSessions, bundle.Location)
	combined := patterns.Combine(activityPatterns, codingPatterns)
	artifactPatterns := patterns.MineArtifacts(bundle.Artifacts, bundle.Location)

	stage = StageDrafting
	config.Logger.Infof("Run %s: %s with %d patterns, %d locked events", userID, stage, len(combined), len(locked))
	drafts, err := s.draft(ctx, now, bundle, locked, combined, artifactPatterns, weekStart)
	if err != nil {
		return fail(err)
	}

	stage = StageDetailing
	config.Logger.Infof("Run %s: %s %d draft events", userID, stage, len(drafts))
	detailed := s.detail(ctx, drafts)

	stage = StageRefining
	refined := s.refine(ctx, detailed)

	stage = StageValidating
	valid := validateEvents(refined, locked, bundle.Settings, weekStart, weekEnd, bundle.Location)
	config.Logger.Infof("Run %s: %s kept %d of %d events", userID, stage, len(valid), len(refined))

	inserted, err := s.Writer.InsertSuggestedEvents(userID, valid)
	if err != nil {
		return fail(err)
	}

	stage = StagePersisted
	config.Logger.Infof("Run %s: %s %d suggestions", userID, stage, len(inserted))
	return inserted, nil
}
