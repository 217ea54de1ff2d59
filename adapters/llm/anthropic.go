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

	"csvalign/ports"
)

// AnthropicClient implements ports.CompletionClient against the Anthropic
// messages API.
type AnthropicClient struct {
	BaseURL string
	Timeout time.Duration
}

// NewAnthropicClient creates a client for api.anthropic.com
func NewAnthropicClient(timeout time.Duration) *AnthropicClient {
	return &AnthropicClient{
		BaseURL: "https://api.anthropic.com",
		Timeout: timeout,
	}
}

func (c *AnthropicClient) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	if strings.TrimSpace(req.Model) == "" {
		return "", fmt.Errorf("missing model")
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type reqBody struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Messages  []msg  `json:"messages"`
	}
	body := reqBody{
		Model:     req.Model,
		MaxTokens: maxTokens,
		Messages: []msg{
			{Role: "user", Content: req.Prompt},
		},
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/v1/messages"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("x-api-key", req.APIKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")
	httpReq.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: c.Timeout}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("anthropic http %d: %s", resp.StatusCode, string(respRaw))
	}

	// Replies arrive as content blocks; text blocks are concatenated.
	type block struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	type respBody struct {
		Content []block `json:"content"`
	}
	var decoded respBody
	if err := json.Unmarshal(respRaw, &decoded); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(decoded.Content) == 0 {
		return "", fmt.Errorf("anthropic response missing content")
	}

	var sb strings.Builder
	for _, b := range decoded.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String(), nil
}
