package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the output is JSON that has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name is the provider name recorded with request events.
	Name() string

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	System    string
	Messages  []Message
	Schema    *Schema
	MaxTokens int

	// Temperature in [0, 1]; zero leaves the provider default.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is the JSON Schema a structured response must satisfy.
type Schema struct {
	// Name identifies the schema to the provider, e.g. "university-advice".
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the LLM's output.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

const (
	stopEnd       = "end"
	stopMaxTokens = "max_tokens"
)

// finish validates content against req.Schema and assembles the Response.
// A response that fails validation after being cut off at the token limit
// is reported as ErrMaxTokensExceeded rather than ErrInvalidResponse.
func finish(req Request, content json.RawMessage, usage Usage, model, stop string) (*Response, error) {
	if err := validateResponse(req.Schema, content); err != nil {
		if stop == stopMaxTokens {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		return nil, err
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names pass through unchanged.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
