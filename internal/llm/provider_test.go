package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

var adviceSchema = &Schema{
	Name: "test-advice",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{"type": "string"},
		},
		"required":             []string{"summary"},
		"additionalProperties": false,
	},
}

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"a":1}` {
		t.Fatalf("content = %s, want {\"a\":1}", resp.Content)
	}
	if resp.Usage.TotalTokens != 15 {
		t.Errorf("total tokens = %d, want 15", resp.Usage.TotalTokens)
	}
	if resp.StopReason != "end" {
		t.Errorf("stop reason = %q, want end", resp.StopReason)
	}

	resp, err = mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"b":2}` {
		t.Fatalf("content = %s, want {\"b\":2}", resp.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	_, err := NewMockProvider().Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
	if !IsUnavailable(err) {
		t.Error("IsUnavailable = false, want true")
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	req := Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "hello"}}}
	_, _ = mock.Generate(context.Background(), req)

	calls := mock.Calls()
	if len(calls) != 1 || mock.CallCount() != 1 {
		t.Fatalf("recorded %d calls, want 1", len(calls))
	}
	if calls[0].System != "sys" || calls[0].Messages[0].Content != "hello" {
		t.Errorf("recorded request = %+v", calls[0])
	}
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"summary":"fine"}`)},
		MockResponse{Content: json.RawMessage(`{"other":1}`)},
	)
	req := Request{Schema: adviceSchema}

	if _, err := mock.Generate(context.Background(), req); err != nil {
		t.Fatalf("valid content rejected: %v", err)
	}
	_, err := mock.Generate(context.Background(), req)
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
	if IsUnavailable(err) {
		t.Error("IsUnavailable = true for a malformed answer")
	}
}

func TestFinish_TruncatedInvalidIsMaxTokens(t *testing.T) {
	_, err := finish(Request{Schema: adviceSchema}, json.RawMessage(`{"summary":"cut`), Usage{}, "m", stopMaxTokens)
	var mt *ErrMaxTokensExceeded
	if !errors.As(err, &mt) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
	}

	resp, err := finish(Request{}, json.RawMessage(`plain text`), Usage{}, "m", stopMaxTokens)
	if err != nil {
		t.Fatalf("schemaless truncated response rejected: %v", err)
	}
	if resp.StopReason != stopMaxTokens {
		t.Errorf("stop reason = %q, want %q", resp.StopReason, stopMaxTokens)
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		models map[string]string
		input  string
		want   string
	}{
		{anthropicModels, "claude-haiku", "claude-haiku-4-5-20251001"},
		{anthropicModels, "claude-sonnet", "claude-sonnet-4-5-20250929"},
		{anthropicModels, "claude-opus-4-5", "claude-opus-4-5"},
		{geminiModels, "gemini-flash", "gemini-2.5-flash"},
		{geminiModels, "gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, tt.models); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
