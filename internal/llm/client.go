package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a client for the Ollama generate API.
type Client struct {
	BaseURL string
	Model   string
	client  *http.Client
}

// NewClient creates a new completion client. The timeout bounds every
// Generate call; the model service is treated as slow and fallible.
func NewClient(baseURL, model string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// GenerateRequest represents the request payload for the generate API.
type GenerateRequest struct {
	Model   string  `json:"model"`
	Prompt  string  `json:"prompt"`
	Stream  bool    `json:"stream"`
	Options Options `json:"options"`
}

// Options carries sampling options for a generate call.
type Options struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p,omitempty"`
}

// GenerateResponse represents the response from the generate API.
type GenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate sends a non-streaming completion request and returns the raw
// response text with surrounding whitespace trimmed. Low temperatures favor
// determinism over creativity.
func (c *Client) Generate(ctx context.Context, prompt string, temperature, topP float64) (string, error) {
	url := fmt.Sprintf("%s/api/generate", c.BaseURL)

	payload := GenerateRequest{
		Model:   c.Model,
		Prompt:  prompt,
		Stream:  false,
		Options: Options{Temperature: temperature, TopP: topP},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var genResp GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return strings.TrimSpace(genResp.Response), nil
}

// Ping checks whether the model service is reachable. It is used for health
// reporting only; the organizer keeps running in fallback mode without it.
func (c *Client) Ping(ctx context.Context) error {
	url := fmt.Sprintf("%s/api/tags", c.BaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("model service unreachable: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status %d", resp.StatusCode)
	}
	return nil
}
