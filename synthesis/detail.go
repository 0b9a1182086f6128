package synthesis

import (
	"context"
	"sync"

	"kairoplan/schedule-ai/config"
	"kairoplan/schedule-ai/llm"
	"kairoplan/schedule-ai/types"
)

type detailFields struct {
	Description string `json:"description"`
	Steps       string `json:"steps"`
	Background  string `json:"background"`
	Challenges  string `json:"challenges"`
}

// detail enriches each draft event independently: retrieve chunks keyed
// on the title, then one completion per task. Tasks fan out and fan back
// in; a failed task is dropped from the run with a warning, never
// aborting the others.
func (s *MultiStageStrategy) detail(ctx context.Context, events []types.SuggestedEvent) []types.SuggestedEvent {
	type slot struct {
		event types.SuggestedEvent
		ok    bool
	}

	slots := make([]slot, len(events))
	var wg sync.WaitGroup

	for i := range events {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			ev := events[i]
			chunks := s.Retriever.Search(ctx, ev.Title, config.Pipeline.RetrievalLimit)

			raw, err := s.Completer.Complete(ctx, detailSystemPrompt, buildDetailUserPayload(ev, chunks))
			if err != nil {
				config.Logger.Warnf("Dropping task %q: detail completion failed: %v", ev.Title, err)
				return
			}

			var fields detailFields
			if err := llm.ParseObject(raw, &fields); err != nil {
				config.Logger.Warnf("Dropping task %q: detail output unparseable: %v", ev.Title, err)
				return
			}

			ev.Description = fields.Description
			ev.Steps = fields.Steps
			ev.Background = fields.Background
			ev.Challenges = fields.Challenges
			slots[i] = slot{event: ev, ok: true}
		}(i)
	}

	wg.Wait()

	out := make([]types.SuggestedEvent, 0, len(events))
	for _, sl := range slots {
		if sl.ok {
			out = append(out, sl.event)
		}
	}
	return out
}
