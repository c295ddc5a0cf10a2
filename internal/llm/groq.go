package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// --- Groq API configuration ---
const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.3-70b-versatile"

	defaultMaxAttempts    = 3
	defaultAttemptTimeout = 30 * time.Second
	initialBackoff        = 1 * time.Second

	temperature = 0.7
	maxTokens   = 2000

	// The system instruction is fixed: the pipeline downstream expects a bare
	// JSON document, so the model is told to never emit prose or markdown.
	systemPrompt = "You are a professional fitness trainer and nutritionist. Always respond with valid JSON only, no markdown formatting."
)

// --- Wire structs for the chat completions endpoint ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// GroqClient talks to the Groq chat completions API.
type GroqClient struct {
	endpoint       string
	apiKey         string
	model          string
	httpClient     HTTPClient
	maxAttempts    int
	attemptTimeout time.Duration
	logger         zerolog.Logger
}

// GroqOpts configures a GroqClient. Zero values fall back to sane defaults;
// only APIKey is mandatory.
type GroqOpts struct {
	APIKey         string
	BaseURL        string
	Model          string
	HTTPClient     HTTPClient
	MaxAttempts    int
	AttemptTimeout time.Duration
	Logger         zerolog.Logger
}

// NewGroqClient creates a Groq-backed generative client.
func NewGroqClient(opts GroqOpts) (*GroqClient, error) {
	if opts.APIKey == "" {
		return nil, errors.New("groq API key is required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.AttemptTimeout <= 0 {
		opts.AttemptTimeout = defaultAttemptTimeout
	}

	return &GroqClient{
		endpoint:       opts.BaseURL + "/chat/completions",
		apiKey:         opts.APIKey,
		model:          opts.Model,
		httpClient:     opts.HTTPClient,
		maxAttempts:    opts.MaxAttempts,
		attemptTimeout: opts.AttemptTimeout,
		logger:         opts.Logger,
	}, nil
}

// Generate sends the prompt and returns the model's raw text. Each attempt
// runs under its own timeout; transient failures (network errors, 429, 5xx)
// are retried with exponential backoff until the attempt budget is spent.
// Client-side API errors (4xx) are not retried.
func (c *GroqClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := initialBackoff << (attempt - 1)
			c.logger.Warn().Err(lastErr).Dur("backoff", backoff).Int("attempt", attempt+1).Msg("retrying generation request")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		text, retryable, err := c.doAttempt(ctx, payload)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			return "", lastErr
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return "", fmt.Errorf("generation failed after %d attempts: %w", c.maxAttempts, lastErr)
}

// doAttempt performs a single request. The second return value reports
// whether the failure is worth retrying.
func (c *GroqClient) doAttempt(ctx context.Context, payload []byte) (string, bool, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		var apiErr apiErrorBody
		msg := resp.Status
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			msg = fmt.Sprintf("%s: %s", resp.Status, apiErr.Error.Message)
		}
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return "", retryable, fmt.Errorf("groq API error: %s", msg)
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", false, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", false, errors.New("groq response contained no choices")
	}

	return cr.Choices[0].Message.Content, false, nil
}
