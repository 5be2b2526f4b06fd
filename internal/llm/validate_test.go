package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		schema  *Schema
		content string
		wantErr bool
	}{
		{"nil schema accepts anything", nil, `not json`, false},
		{"valid", adviceSchema, `{"summary":"ok"}`, false},
		{"missing required", adviceSchema, `{}`, true},
		{"extra property", adviceSchema, `{"summary":"ok","x":1}`, true},
		{"wrong type", adviceSchema, `{"summary":3}`, true},
		{"not JSON", adviceSchema, `{"summary":`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(tt.schema, json.RawMessage(tt.content))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Errorf("error type = %T, want *ErrInvalidResponse", err)
				}
				if string(inv.Content) != tt.content {
					t.Errorf("content = %s, want %s", inv.Content, tt.content)
				}
			}
		})
	}
}

func TestValidateResponse_BadSchema(t *testing.T) {
	bad := &Schema{Name: "test-bad", Definition: map[string]any{"type": 12}}
	if err := validateResponse(bad, json.RawMessage(`{}`)); err == nil {
		t.Fatal("expected error for uncompilable schema")
	}
}
