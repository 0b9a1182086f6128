package synthesis

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"kairoplan/schedule-ai/types"
)

func buildDraftSystemPrompt(now time.Time) string {
	return fmt.Sprintf(`
You are an AI assistant tasked with generating a recommended calendar schedule for the upcoming week based on the given input.

<todays_date>%s</todays_date>
<todays_day_of_week>%s</todays_day_of_week>

The user message contains a JSON object with the user's settings, their locked calendar events for the target week, mined work patterns from activity and engineering telemetry, their projects, the target week dates, and summaries of recent activity types and coding languages.

Follow these steps to generate the recommended schedule:

1. Process the user settings: note the time zone, working hours, and week start day.
2. Analyze the work patterns: identify recurring activities, paying special attention to patterns with higher frequencies and longer durations.
3. Incorporate projects: allocate time for project-related work based on recent engagement.
4. Structure events within the given week dates and the user's working hours, distributing work across the week.
5. Treat the locked events as immutable: never overlap them and never suggest changing them.
6. Mix focused work, planning and breaks; leave buffer time between tasks.

For each suggested event provide:
- A descriptive title
- Suggested start and end times in ISO 8601 format with timezone offset
- A priority level (1-5, with 1 being highest priority)
- A related project ID if applicable

Additional constraints:
- Ensure there is at least a 15-minute break between events.
- The maximum duration of any single event is 3 hours.
- Never schedule outside the user's working hours.

Format your output as a JSON array of objects with this schema:
{
  "title": string,
  "suggestedStartTime": string,
  "suggestedEndTime": string,
  "priority": number,
  "relatedProjectId": string | null
}

It is essential that your response is a valid JSON array of objects and contains no other text.
`, now.Format("2006-01-02"), now.Format("Monday"))
}

const detailSystemPrompt = `
You are an AI assistant elaborating a single planned calendar task. Using the task and the related historical context supplied in the user message, produce a JSON object with:
- "description": one short paragraph explaining what the task covers and why it matters now
- "steps": a concrete, ordered plan as plain text, one step per line
- "background": relevant history from the supplied context, plain text
- "challenges": likely blockers or open questions, plain text

Respond with valid JSON only, no surrounding text.
`

func buildDetailUserPayload(event types.SuggestedEvent, chunks []types.RetrievedChunk) string {
	var ctx strings.Builder
	for i, chunk := range chunks {
		fmt.Fprintf(&ctx, "[%d] %s\n", i+1, chunk.Content)
	}

	payload := map[string]interface{}{
		"task": map[string]interface{}{
			"title":     event.Title,
			"startTime": event.SuggestedStartTime,
			"endTime":   event.SuggestedEndTime,
			"priority":  event.Priority,
		},
		"relatedContext": ctx.String(),
	}

	data, _ := json.Marshal(payload)
	return string(data)
}

const refineSystemPrompt = `
You are an AI assistant reviewing a full week of planned calendar tasks as one schedule. Check the list for dependency order (preparatory work before dependent work), conflicts, and sensible sequencing across the week. Adjust titles, descriptions or ordering-sensitive fields where needed, but keep every event's start time, end time and priority unchanged unless two events conflict.

Return the complete adjusted list as a JSON array using exactly the same object schema you were given. Respond with valid JSON only, no surrounding text.
`
