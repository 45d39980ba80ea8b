// Package llm talks to the external text-generation service. The transport is
// a plain HTTP client with a hard timeout; transport failures are returned to
// the caller unretried. Structural problems with the generated text are not
// handled here — that is the output guard's job.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const (
	// ClaudeAPIEndpoint is the Anthropic API endpoint.
	ClaudeAPIEndpoint = "https://api.anthropic.com/v1/messages"
	// ClaudeModel is the default generation model.
	ClaudeModel = "claude-sonnet-4-20250514"
	// ClaudeAPIVersion is the API version.
	ClaudeAPIVersion = "2023-06-01"

	// DefaultTimeout bounds the only operation in the pipeline that may
	// suspend.
	DefaultTimeout = 30 * time.Second

	maxTokens = 2048
)

// Client represents a Claude API client.
type Client struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a new Claude API client.
func NewClient(apiKey, model string, timeout time.Duration) (client *Client) {
	if model == "" {
		model = ClaudeModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client = &Client{
		apiKey:   apiKey,
		model:    model,
		endpoint: ClaudeAPIEndpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	return client
}

// Complete sends one synchronous completion request and returns the raw
// generated text.
func (c *Client) Complete(ctx context.Context, system, user string, temperature float64) (text string, err error) {
	claudeReq := messagesRequest{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		System:      system,
		Messages: []message{
			{
				Role:    "user",
				Content: user,
			},
		},
	}

	var reqBody []byte
	reqBody, err = json.Marshal(claudeReq)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal request")
		return text, err
	}

	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return text, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("Anthropic-Version", ClaudeAPIVersion)

	var resp *http.Response
	resp, err = c.httpClient.Do(httpReq)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return text, err
	}
	defer resp.Body.Close()

	var respBody []byte
	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return text, err
	}

	if resp.StatusCode != http.StatusOK {
		apiMessage := gjson.GetBytes(respBody, "error.message").String()
		if apiMessage == "" {
			apiMessage = string(respBody)
		}
		err = errors.Errorf("API request failed with status %d: %s", resp.StatusCode, apiMessage)
		return text, err
	}

	text = gjson.GetBytes(respBody, "content.0.text").String()
	if text == "" {
		err = errors.New("no content in Claude response")
		return text, err
	}

	return text, err
}
