// Package llm is the language-model boundary: a single-shot,
// role-separated completion client and the defensive parsing helpers
// every caller must run model output through.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"kairoplan/schedule-ai/apperrors"
)

const (
	openaiChatURL = "https://api.openai.com/v1/chat/completions"
	defaultModel  = "gpt-4o"

	// The pipeline leans on sampling variety for schedule diversity.
	completionTemperature = 0.7
)

// Completer is the single-shot completion service. No streaming.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type OpenAIClient struct {
	Model  string
	client *http.Client
}

func NewOpenAIClient() *OpenAIClient {
	return &OpenAIClient{
		Model:  defaultModel,
		client: &http.Client{Timeout: 90 * time.Second},
	}
}

// Complete sends one system+user exchange and returns the raw assistant
// text. Transport and service failures wrap apperrors.ErrLLMInvocation.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("%w: OPENAI_API_KEY not set", apperrors.ErrLLMInvocation)
	}

	body := map[string]interface{}{
		"model": c.Model,
		"messages": []map[string]interface{}{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"temperature": completionTemperature,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal request: %v", apperrors.ErrLLMInvocation, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", openaiChatURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", apperrors.ErrLLMInvocation, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: request failed: %v", apperrors.ErrLLMInvocation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: API returned status %d", apperrors.ErrLLMInvocation, resp.StatusCode)
	}

	var res struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", apperrors.ErrLLMInvocation, err)
	}

	if len(res.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", apperrors.ErrLLMInvocation)
	}

	return res.Choices[0].Message.Content, nil
}
