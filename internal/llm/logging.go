package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/giasu/internal/logger"
	"github.com/abhisek/giasu/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an
// event in the store.
type LoggingProvider struct {
	inner  Provider
	events store.EventRepo
	log    *logger.Logger
}

// WithLogging wraps a Provider with event logging. A nil log discards
// warnings about failed event writes.
func WithLogging(p Provider, events store.EventRepo, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingProvider{inner: p, events: events, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.inner.Name(),
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: describeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.ResponseBody = string(resp.Content)
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// The request outcome stands even when the event cannot be stored.
	if logErr := l.events.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
		l.log.Warn("record LLM request event", "error", logErr, "purpose", data.Purpose)
	}
	l.log.Debug("llm request", "provider", data.Provider, "model", data.Model, "purpose", data.Purpose,
		"latency_ms", data.LatencyMs, "success", data.Success)

	return resp, err
}

func (l *LoggingProvider) Name() string    { return l.inner.Name() }
func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

// describeRequest renders req as readable text for the event log.
func describeRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
