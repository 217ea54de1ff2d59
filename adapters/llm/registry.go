package llm

import (
	"time"

	"csvalign/internal/errors"
	"csvalign/ports"
)

// Registry maps provider ids to completion clients so calling code never
// branches on the provider. Adding a provider means adding one client and one
// registry entry.
type Registry struct {
	clients map[string]ports.CompletionClient
}

// NewRegistry builds the default registry with one client per supported
// provider, all sharing the same transport timeout.
func NewRegistry(timeout time.Duration) *Registry {
	return &Registry{
		clients: map[string]ports.CompletionClient{
			ProviderOpenAI:    NewOpenAIClient(timeout),
			ProviderAnthropic: NewAnthropicClient(timeout),
			ProviderGemini:    NewGeminiClient(timeout),
			ProviderDeepSeek:  NewDeepSeekClient(timeout),
		},
	}
}

// Supported provider ids
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderDeepSeek  = "deepseek"
)

// Register adds or replaces the client for a provider id. Used by tests to
// install mocks.
func (r *Registry) Register(provider string, client ports.CompletionClient) {
	r.clients[provider] = client
}

// Client returns the completion client for a provider id.
func (r *Registry) Client(provider string) (ports.CompletionClient, error) {
	client, ok := r.clients[provider]
	if !ok {
		return nil, errors.InvalidInput("unknown provider: " + provider)
	}
	return client, nil
}

// Providers lists the registered provider ids.
func (r *Registry) Providers() []string {
	out := make([]string, 0, len(r.clients))
	for id := range r.clients {
		out = append(out, id)
	}
	return out
}
