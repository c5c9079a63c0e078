package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fwojciec/diffcard"
)

// Compile-time interface verification.
var _ diffcard.Describer = (*Describer)(nil)

const (
	// DefaultDescribeTimeout bounds a single describe call.
	DefaultDescribeTimeout = 60 * time.Second
	// DefaultMaxAttempts is how many times a retryable API error is tried.
	DefaultMaxAttempts = 3
	// DefaultBackoff is the wait before the first retry. It doubles after
	// every failed attempt.
	DefaultBackoff = 2 * time.Second
)

// Describer implements diffcard.Describer using Google Gemini.
type Describer struct {
	client      GenerativeClient
	model       string
	timeout     time.Duration
	maxAttempts int
	backoff     time.Duration
}

// DescriberOption configures a Describer.
type DescriberOption func(*Describer)

// WithTimeout sets the timeout for each API call.
func WithTimeout(d time.Duration) DescriberOption {
	return func(desc *Describer) {
		desc.timeout = d
	}
}

// WithRetry sets the attempt count and the initial backoff for retryable
// API errors.
func WithRetry(maxAttempts int, backoff time.Duration) DescriberOption {
	return func(desc *Describer) {
		desc.maxAttempts = max(maxAttempts, 1)
		desc.backoff = backoff
	}
}

// NewDescriber creates a new Describer.
func NewDescriber(client GenerativeClient, model string, opts ...DescriberOption) *Describer {
	if model == "" {
		model = DefaultModel
	}
	d := &Describer{
		client:      client,
		model:       model,
		timeout:     DefaultDescribeTimeout,
		maxAttempts: DefaultMaxAttempts,
		backoff:     DefaultBackoff,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type descriptionResponse struct {
	Description string `json:"description"`
}

// Describe returns a short summary of what changed between the two sides
// of c.
func (d *Describer) Describe(ctx context.Context, c diffcard.Comparison) (string, error) {
	req := BuildDescribeRequest(d.model, c)

	wait := d.backoff
	var lastErr error
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		text, err := d.generate(ctx, req)
		if err == nil {
			return parseDescription(text)
		}
		lastErr = err

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.Retryable() || attempt == d.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}
	return "", fmt.Errorf("gemini: describe %s: %w", c.Key(), lastErr)
}

func (d *Describer) generate(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.client.Generate(ctx, req)
}

func parseDescription(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini: returned empty response")
	}
	var out descriptionResponse
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return "", fmt.Errorf("gemini: failed to parse response: %w", err)
	}
	return strings.TrimSpace(out.Description), nil
}

// BuildDescribePrompt creates the user prompt for one comparison. The change
// is sent as a unified diff so unchanged regions stay short.
func BuildDescribePrompt(c diffcard.Comparison) string {
	newName := c.New.Name
	if newName == "" {
		newName = c.Old.Name
	}
	diff := udiff.Unified("a/"+c.Old.Name, "b/"+newName, c.Old.Content, c.New.Content)
	if diff == "" {
		diff = "(no changes)\n"
	}
	return fmt.Sprintf(`Describe this change to %s for a reviewer.

`+"```diff\n%s```"+`

Write one or two sentences in plain language. Say what changed and what it is for.
Do not restate the file name. Do not use markdown headings.

Respond with JSON matching this schema:
{"description": "..."}`, c.Old.Name, diff)
}

const describeSystemPrompt = `You are a code reviewer who writes short, accurate summaries of code changes.
Be concrete. Mention behavior, not line counts.`

// BuildDescribeRequest returns the request describing c with model.
func BuildDescribeRequest(model string, c diffcard.Comparison) Request {
	return Request{
		Model:       model,
		System:      describeSystemPrompt,
		Prompt:      BuildDescribePrompt(c),
		Temperature: 0.2,
		Thinking:    "LOW",
		Schema: &Schema{
			Type: "object",
			Properties: map[string]*Schema{
				"description": {Type: "string", Description: "One or two sentence summary of the change"},
			},
			Required: []string{"description"},
		},
	}
}
