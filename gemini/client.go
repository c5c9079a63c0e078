// Package gemini writes change descriptions with Google Gemini.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is the model used to describe changes when none is configured.
const DefaultModel = "gemini-3-flash-preview"

// Compile-time interface verification.
var _ GenerativeClient = (*Client)(nil)

// Client sends requests through the genai SDK.
type Client struct {
	models *genai.Models
}

// NewClient creates a Client. An empty apiKey lets the SDK read
// GEMINI_API_KEY or GOOGLE_API_KEY from the environment.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &Client{models: client.Models}, nil
}

// Close releases nothing; the SDK keeps no open connections to tear down.
func (c *Client) Close() error {
	return nil
}

// Generate sends req and returns the reply text.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = toGenaiSchema(req.Schema)
	}
	if req.Thinking != "" {
		config.ThinkingConfig = &genai.ThinkingConfig{ThinkingLevel: genai.ThinkingLevel(req.Thinking)}
	}

	result, err := c.models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), config)
	if err != nil {
		var apiErr *genai.APIError
		if errors.As(err, &apiErr) {
			return "", NewAPIError(apiErr.Code, fmt.Sprintf("gemini API error (HTTP %d): %s", apiErr.Code, apiErr.Message))
		}
		return "", err
	}
	return result.Text(), nil
}

func toGenaiSchema(s *Schema) *genai.Schema {
	out := &genai.Schema{
		Type:        genai.Type(s.Type),
		Description: s.Description,
		Required:    s.Required,
	}
	for name, prop := range s.Properties {
		if out.Properties == nil {
			out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		}
		out.Properties[name] = toGenaiSchema(prop)
	}
	return out
}
