package llm

import (
	"context"
	"net/http"
)

// HTTPClient is the minimal HTTP surface the client needs; *http.Client
// satisfies it, and tests inject a mock.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the contract the generation pipeline consumes: send a prompt,
// get the model's raw text back. Implementations carry their own fixed
// system instruction.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
