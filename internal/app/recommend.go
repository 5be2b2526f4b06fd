package app

import (
	"context"
	"fmt"

	"github.com/abhisek/giasu/internal/advisor"
	"github.com/abhisek/giasu/internal/matching"
	"github.com/abhisek/giasu/internal/store"
)

// Recommendation is a persisted matching run with its inputs.
type Recommendation struct {
	Preference matching.Preference
	Run        *store.RecommendationRun
	Skipped    []int64
	Excluded   int
}

// RecommendForUser matches the user's latest preference against the stored
// catalog and records the ranking as a new run. A zero opts.Limit uses the
// configured limit; a zero opts.Year uses each university's latest year.
func (s *Service) RecommendForUser(ctx context.Context, userID int64, opts matching.Options) (*Recommendation, error) {
	pref, err := s.opts.Preferences.Latest(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load preference: %w", err)
	}
	cat, err := s.opts.Catalog.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if opts.Limit <= 0 {
		opts.Limit = s.opts.Matching.Limit
	}

	out := matching.RecommendDetailed(pref, cat.Universities, cat.Index(), opts)
	for _, id := range out.Skipped {
		s.log.Info("university skipped", "university_id", id, "reason", matching.ErrNoScoreData.Error(), "year", opts.Year)
	}

	run, err := s.opts.Recommendations.SaveRun(ctx, userID, out.Recommendations)
	if err != nil {
		return nil, fmt.Errorf("save recommendations: %w", err)
	}
	s.log.Info("recommendations recorded", "user_id", userID, "run_id", run.RunID,
		"count", len(out.Recommendations), "excluded", out.Excluded)

	return &Recommendation{Preference: pref, Run: run, Skipped: out.Skipped, Excluded: out.Excluded}, nil
}

// Explain asks the advisor to explain rec. Callers treat failure as a
// missing extra, not as a failed run.
func (s *Service) Explain(ctx context.Context, rec *Recommendation) (*advisor.Advice, error) {
	if s.opts.Advisor == nil {
		return nil, ErrNoAdvisor
	}
	adv, err := s.opts.Advisor.Advise(ctx, rec.Preference, rec.Run.Recommendations)
	if err != nil {
		s.log.Warn("advice unavailable", "user_id", rec.Preference.UserID, "run_id", rec.Run.RunID, "error", err)
		return nil, err
	}
	return adv, nil
}
