package synthesis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kairoplan/schedule-ai/apperrors"
	"kairoplan/schedule-ai/config"
	"kairoplan/schedule-ai/llm"
	"kairoplan/schedule-ai/telemetry"
	"kairoplan/schedule-ai/types"
)

// draftEvent mirrors the array element schema the draft prompt asks
// for. Times arrive as ISO 8601 strings.
type draftEvent struct {
	Title              string  `json:"title"`
	SuggestedStartTime string  `json:"suggestedStartTime"`
	SuggestedEndTime   string  `json:"suggestedEndTime"`
	Priority           int     `json:"priority"`
	RelatedProjectID   *string `json:"relatedProjectId"`
}

// draft performs the single DRAFTING completion. A parse failure here is
// fatal to the whole run: nothing is persisted from a draft that could
// not be read.
func (s *MultiStageStrategy) draft(ctx context.Context, now time.Time, bundle telemetry.Bundle, locked []types.CalendarEvent, combined, artifact []types.WorkPattern, weekStart time.Time) ([]types.SuggestedEvent, error) {
	dc := buildDraftContext(bundle, locked, combined, artifact, weekDates(weekStart))

	payload, err := json.Marshal(dc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft context: %v", err)
	}

	raw, err := s.Completer.Complete(ctx, buildDraftSystemPrompt(now), string(payload))
	if err != nil {
		return nil, err
	}

	var items []draftEvent
	if err := llm.ParseArray(raw, &items); err != nil {
		return nil, err
	}

	events := make([]types.SuggestedEvent, 0, len(items))
	for _, item := range items {
		start, err := time.Parse(time.RFC3339, item.SuggestedStartTime)
		if err != nil {
			config.Logger.Warnf("Dropping draft %q: bad start time %q", item.Title, item.SuggestedStartTime)
			continue
		}
		end, err := time.Parse(time.RFC3339, item.SuggestedEndTime)
		if err != nil {
			config.Logger.Warnf("Dropping draft %q: bad end time %q", item.Title, item.SuggestedEndTime)
			continue
		}

		events = append(events, types.SuggestedEvent{
			Title:              item.Title,
			SuggestedStartTime: start,
			SuggestedEndTime:   end,
			Priority:           item.Priority,
			RelatedProjectID:   item.RelatedProjectID,
			Status:             types.SuggestionPending,
		})
	}

	if len(items) > 0 && len(events) == 0 {
		return nil, fmt.Errorf("%w: no draft event had parseable times", apperrors.ErrLLMOutputParse)
	}

	return events, nil
}
