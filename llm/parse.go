package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"kairoplan/schedule-ai/apperrors"
)

// StripCodeFence removes a surrounding markdown code fence (```json or
// bare ```) and leading/trailing whitespace. Models wrap JSON in fences
// often enough that every caller runs output through this first.
func StripCodeFence(text string) string {
	out := strings.TrimSpace(text)

	if strings.HasPrefix(out, "```json") {
		out = strings.TrimPrefix(out, "```json")
	} else if strings.HasPrefix(out, "```") {
		out = strings.TrimPrefix(out, "```")
	}
	out = strings.TrimSuffix(strings.TrimSpace(out), "```")

	return strings.TrimSpace(out)
}

// ParseArray decodes model output expected to be a JSON array into v
// (a pointer to a slice). After fence stripping, a last-resort bracket
// scan salvages an array embedded in surrounding prose. Failure wraps
// apperrors.ErrLLMOutputParse.
func ParseArray(text string, v interface{}) error {
	cleaned := StripCodeFence(text)

	if json.Valid([]byte(cleaned)) {
		if err := json.Unmarshal([]byte(cleaned), v); err == nil {
			return nil
		}
	}

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end <= start {
		return fmt.Errorf("%w: no JSON array found in output", apperrors.ErrLLMOutputParse)
	}

	candidate := cleaned[start : end+1]
	if err := json.Unmarshal([]byte(candidate), v); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrLLMOutputParse, err)
	}

	return nil
}

// ParseObject is ParseArray's sibling for single-object responses.
func ParseObject(text string, v interface{}) error {
	cleaned := StripCodeFence(text)

	if json.Valid([]byte(cleaned)) {
		if err := json.Unmarshal([]byte(cleaned), v); err == nil {
			return nil
		}
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end <= start {
		return fmt.Errorf("%w: no JSON object found in output", apperrors.ErrLLMOutputParse)
	}

	candidate := cleaned[start : end+1]
	if err := json.Unmarshal([]byte(candidate), v); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrLLMOutputParse, err)
	}

	return nil
}
