// Package llm talks to an OpenAI-compatible chat-completions endpoint and
// routes an utterance across an ordered list of model identifiers with
// sequential fallback.
package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/gg/gptr"

	"github.com/kiosk404/portkey/pkg/utils/json"
)

// DefaultBaseURL is the OpenAI API endpoint used when no override is
// configured.
const DefaultBaseURL = "https://api.openai.com/v1"

// ChatMessage is a single message in the Chat Completions format.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the request body for /chat/completions. Temperature is a
// pointer so an explicit zero survives serialization: routing must use fully
// deterministic decoding.
type chatRequest struct {
	Model       string        `json:"model"`
	Temperature *float64      `json:"temperature"`
	Messages    []ChatMessage `json:"messages"`
}

// chatResponse is the non-streaming response.
type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message      *ChatMessage `json:"message,omitempty"`
		FinishReason string       `json:"finish_reason"`
	} `json:"choices"`
	Error *chatError `json:"error,omitempty"`
}

type chatError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Client is the HTTP client for an OpenAI-compatible completion service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a completion client. timeout bounds each request; it is
// also the per-attempt bound of the model fallback.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Complete sends a system+user message pair to the given model at
// temperature zero and returns the assistant's message content.
func (c *Client) Complete(ctx context.Context, model, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       model,
		Temperature: gptr.Of(0.0),
		Messages: []ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("server returned %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("api error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message == nil {
		return "", fmt.Errorf("response contained no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
