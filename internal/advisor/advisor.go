package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/giasu/internal/llm"
	"github.com/abhisek/giasu/internal/matching"
)

// ErrNoRecommendations is returned when there is nothing to explain.
var ErrNoRecommendations = errors.New("no recommendations to explain")

// Advisor explains recommendation runs with an LLM.
type Advisor struct {
	provider llm.Provider
	config   Config
}

// New creates an Advisor with the given provider and config.
func New(provider llm.Provider, cfg Config) *Advisor {
	return &Advisor{provider: provider, config: cfg}
}

// Advise asks the model to explain recs for pref. Notes for universities
// that are not in recs are dropped and the rest follow the ranking.
func (a *Advisor) Advise(ctx context.Context, pref matching.Preference, recs []matching.Recommendation) (*Advice, error) {
	if len(recs) == 0 {
		return nil, ErrNoRecommendations
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeAdvice)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(pref, recs)},
		},
		Schema:      AdviceSchema,
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
	}

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate advice: %w", err)
	}

	var raw Advice
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse advice: %w", err)
	}

	advice := &Advice{Summary: raw.Summary}
	for _, r := range recs {
		if n, ok := raw.Note(r.UniversityID); ok {
			advice.Notes = append(advice.Notes, n)
		}
	}
	return advice, nil
}
