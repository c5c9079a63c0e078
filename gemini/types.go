package gemini

import "context"

// Request is one single-turn generation call.
type Request struct {
	Model       string
	System      string
	Prompt      string
	Temperature float32
	// Schema constrains the JSON reply when set.
	Schema *Schema
	// Thinking is "", "MINIMAL", "LOW", "MEDIUM" or "HIGH".
	Thinking string
}

// Schema is the subset of an OpenAPI schema used for structured replies.
type Schema struct {
	Type        string // object, string, integer, boolean
	Description string
	Properties  map[string]*Schema
	Required    []string
}

// GenerativeClient abstracts the Gemini API for testing.
type GenerativeClient interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// MockGenerativeClient is a mock implementation of GenerativeClient for testing.
type MockGenerativeClient struct {
	GenerateFn func(ctx context.Context, req Request) (string, error)
}

func (m *MockGenerativeClient) Generate(ctx context.Context, req Request) (string, error) {
	return m.GenerateFn(ctx, req)
}

// APIError is a failed API call with its HTTP status code.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Retryable reports whether the request may succeed if sent again.
func (e *APIError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// NewAPIError creates a new APIError with the given status code and message.
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}
