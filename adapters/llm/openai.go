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

// OpenAIClient implements ports.CompletionClient against the OpenAI chat
// completions API.
type OpenAIClient struct {
	BaseURL string
	Timeout time.Duration
}

// NewOpenAIClient creates a client for api.openai.com
func NewOpenAIClient(timeout time.Duration) *OpenAIClient {
	return &OpenAIClient{
		BaseURL: "https://api.openai.com/v1",
		Timeout: timeout,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	content, err := chatCompletion(ctx, chatEndpoint{
		url:     strings.TrimRight(c.BaseURL, "/") + "/chat/completions",
		timeout: c.Timeout,
		auth:    func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+req.APIKey) },
		name:    "openai",
	}, req)
	if err != nil {
		return "", err
	}
	return content, nil
}

// chatEndpoint describes an OpenAI-compatible chat completions endpoint.
// DeepSeek exposes the same wire shape, so both providers share this path.
type chatEndpoint struct {
	url     string
	timeout time.Duration
	auth    func(*http.Request)
	name    string
}

func chatCompletion(ctx context.Context, ep chatEndpoint, req ports.CompletionRequest) (string, error) {
	if strings.TrimSpace(req.Model) == "" {
		return "", fmt.Errorf("missing model")
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	// Chat Completions API (kept minimal: one user message)
	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type reqBody struct {
		Model     string `json:"model"`
		Messages  []msg  `json:"messages"`
		MaxTokens int    `json:"max_tokens,omitempty"`
	}
	body := reqBody{
		Model: req.Model,
		Messages: []msg{
			{Role: "user", Content: req.Prompt},
		},
		MaxTokens: maxTokens,
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.url, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	ep.auth(httpReq)
	httpReq.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: ep.timeout}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", ep.name, err)
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%s http %d: %s", ep.name, resp.StatusCode, string(respRaw))
	}

	type choice struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	type respBody struct {
		Choices []choice `json:"choices"`
	}
	var decoded respBody
	if err := json.Unmarshal(respRaw, &decoded); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("%s response missing choices", ep.name)
	}
	return decoded.Choices[0].Message.Content, nil
}
