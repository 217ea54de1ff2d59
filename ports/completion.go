package ports

import "context"

// CompletionRequest carries everything a provider needs for one text
// completion. The API key is passed through per call and never stored.
type CompletionRequest struct {
	Model     string
	Prompt    string
	APIKey    string
	MaxTokens int
}

// CompletionClient is the single capability the comparison core needs from a
// completion service: one prompt in, raw reply text out. Implementations do
// not retry and do not stream; any error is terminal for the request.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
