package synthesis

import (
	"context"
	"encoding/json"
	"time"

	"kairoplan/schedule-ai/config"
	"kairoplan/schedule-ai/llm"
	"kairoplan/schedule-ai/types"
)

// refinedEvent is the schema the refine pass exchanges: the detailed
// event with string timestamps.
type refinedEvent struct {
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	Steps              string  `json:"steps"`
	Background         string  `json:"background"`
	Challenges         string  `json:"challenges"`
	SuggestedStartTime string  `json:"suggestedStartTime"`
	SuggestedEndTime   string  `json:"suggestedEndTime"`
	Priority           int     `json:"priority"`
	RelatedProjectID   *string `json:"relatedProjectId"`
}

// refine submits the full detailed list for one holistic pass over
// dependencies, conflicts and ordering. Refinement is best-effort: any
// failure, invocation or parse, falls back to the pre-refinement list
// unchanged.
func (s *MultiStageStrategy) refine(ctx context.Context, events []types.SuggestedEvent) []types.SuggestedEvent {
	if len(events) == 0 {
		return events
	}

	views := make([]refinedEvent, 0, len(events))
	for _, ev := range events {
		views = append(views, refinedEvent{
			Title:              ev.Title,
			Description:        ev.Description,
			Steps:              ev.Steps,
			Background:         ev.Background,
			Challenges:         ev.Challenges,
			SuggestedStartTime: ev.SuggestedStartTime.Format(time.RFC3339),
			SuggestedEndTime:   ev.SuggestedEndTime.Format(time.RFC3339),
			Priority:           ev.Priority,
			RelatedProjectID:   ev.RelatedProjectID,
		})
	}

	payload, err := json.Marshal(views)
	if err != nil {
		config.Logger.Warnf("Refinement skipped: failed to marshal events: %v", err)
		return events
	}

	raw, err := s.Completer.Complete(ctx, refineSystemPrompt, string(payload))
	if err != nil {
		config.Logger.Warnf("Refinement skipped: completion failed: %v", err)
		return events
	}

	var refined []refinedEvent
	if err := llm.ParseArray(raw, &refined); err != nil {
		config.Logger.Warnf("Refinement output unparseable, keeping pre-refinement list: %v", err)
		return events
	}

	out := make([]types.SuggestedEvent, 0, len(refined))
	for _, item := range refined {
		start, err := time.Parse(time.RFC3339, item.SuggestedStartTime)
		if err != nil {
			config.Logger.Warnf("Refinement produced bad start time %q, keeping pre-refinement list", item.SuggestedStartTime)
			return events
		}
		end, err := time.Parse(time.RFC3339, item.SuggestedEndTime)
		if err != nil {
			config.Logger.Warnf("Refinement produced bad end time %q, keeping pre-refinement list", item.SuggestedEndTime)
			return events
		}

		out = append(out, types.SuggestedEvent{
			Title:              item.Title,
			Description:        item.Description,
			Steps:              item.Steps,
			Background:         item.Background,
			Challenges:         item.Challenges,
			SuggestedStartTime: start,
			SuggestedEndTime:   end,
			Priority:           item.Priority,
			RelatedProjectID:   item.RelatedProjectID,
			Status:             types.SuggestionPending,
		})
	}

	return out
}
