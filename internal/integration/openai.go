// Package integration holds clients for services outside the vault,
// currently the OpenAI chat-completions API used as the briefing summarizer.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultBaseURL = "https://api.openai.com/v1/chat/completions"

// OpenAIClient calls the chat-completions API with a single user message.
// It performs exactly one request per call: no retries, no internal
// timeouts; cancellation comes from the caller's context and failures are
// surfaced immediately.
type OpenAIClient struct {
	apiKey      string
	model       string
	temperature float64
	baseURL     string
	client      *http.Client
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type chatError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewOpenAIClient creates a summarizer client for the given credentials and
// sampling settings.
func NewOpenAIClient(apiKey, model string, temperature float64) *OpenAIClient {
	return &OpenAIClient{
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		baseURL:     defaultBaseURL,
		client:      &http.Client{},
	}
}

// SetBaseURL overrides the API endpoint, for tests.
func (c *OpenAIClient) SetBaseURL(url string) {
	c.baseURL = url
}

// Complete sends prompt as a single user message and returns the first
// choice's content.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling summarizer: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading summarizer response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr chatError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("summarizer API error (%s): %s", apiErr.Error.Type, apiErr.Error.Message)
		}
		return "", fmt.Errorf("summarizer API returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decoding summarizer response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("summarizer returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
