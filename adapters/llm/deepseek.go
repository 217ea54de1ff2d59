package llm

import (
	"context"
	"net/http"
	"strings"
	"time"

	"csvalign/ports"
)

// DeepSeekClient implements ports.CompletionClient against the DeepSeek chat
// API, which is wire-compatible with OpenAI chat completions.
type DeepSeekClient struct {
	BaseURL string
	Timeout time.Duration
}

// NewDeepSeekClient creates a client for api.deepseek.com
func NewDeepSeekClient(timeout time.Duration) *DeepSeekClient {
	return &DeepSeekClient{
		BaseURL: "https://api.deepseek.com",
		Timeout: timeout,
	}
}

func (c *DeepSeekClient) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	return chatCompletion(ctx, chatEndpoint{
		url:     strings.TrimRight(c.BaseURL, "/") + "/chat/completions",
		timeout: c.Timeout,
		auth:    func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+req.APIKey) },
		name:    "deepseek",
	}, req)
}
