package app

import (
	"errors"

	"github.com/abhisek/giasu/internal/advisor"
	"github.com/abhisek/giasu/internal/grading"
	"github.com/abhisek/giasu/internal/logger"
	"github.com/abhisek/giasu/internal/matching"
	"github.com/abhisek/giasu/internal/store"
)

// ErrNoAdvisor is returned by Explain when no LLM is configured.
var ErrNoAdvisor = errors.New("advisor not configured")

// Options configures a Service. The repos are required.
type Options struct {
	Tests           store.TestRepo
	Results         store.ResultRepo
	Catalog         store.CatalogRepo
	Preferences     store.PreferenceRepo
	Recommendations store.RecommendationRepo

	Logger   *logger.Logger
	Grading  grading.Config
	Matching matching.Config

	// Advisor is optional; recommendations work without it.
	Advisor *advisor.Advisor
}

// StoreOptions returns Options backed by st, with configuration read from
// the environment.
func StoreOptions(st *store.Store) Options {
	return Options{
		Tests:           st.TestRepo(),
		Results:         st.ResultRepo(),
		Catalog:         st.CatalogRepo(),
		Preferences:     st.PreferenceRepo(),
		Recommendations: st.RecommendationRepo(),
		Grading:         grading.ConfigFromEnv(),
		Matching:        matching.ConfigFromEnv(),
	}
}

// Service ties decoding, grading, matching and persistence together.
type Service struct {
	opts Options
	log  *logger.Logger
}

// New creates a Service. Zero configs fall back to their defaults.
func New(opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Grading.Workers <= 0 {
		opts.Grading = grading.DefaultConfig()
	}
	if opts.Matching.Limit <= 0 {
		opts.Matching = matching.DefaultConfig()
	}
	return &Service{opts: opts, log: opts.Logger}
}
