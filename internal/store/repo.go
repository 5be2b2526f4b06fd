package store

import (
	"context"
	"time"

	"github.com/abhisek/giasu/internal/grading"
	"github.com/abhisek/giasu/internal/matching"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match when non-empty
}

// TestRepo persists test definitions.
type TestRepo interface {
	// Save inserts or replaces a test and all of its questions. Zero IDs
	// are assigned by the database; the returned definition carries them.
	Save(ctx context.Context, def grading.Definition) (grading.Definition, error)

	// Load returns the test and its questions in stored order, or
	// ErrNotFound.
	Load(ctx context.Context, testID int64) (grading.Definition, error)

	// List returns every test without questions, ordered by ID.
	List(ctx context.Context) ([]grading.Test, error)
}

// StoredResult is a graded result as persisted.
type StoredResult struct {
	ID          int64
	Sequence    int64
	AttemptID   string
	CompletedAt time.Time
	grading.Result
}

// ResultRepo persists graded results and their per-question answers.
type ResultRepo interface {
	// Save stores res. When the user's latest result for the same test has
	// identical answers, that result is returned with created=false and
	// nothing is written.
	Save(ctx context.Context, res *grading.Result) (stored *StoredResult, created bool, err error)

	// Get returns one result with its answers, or ErrNotFound.
	Get(ctx context.Context, id int64) (*StoredResult, error)

	// ListByUser returns the user's results, newest first, with answers.
	ListByUser(ctx context.Context, userID int64) ([]*StoredResult, error)

	// Summary returns the user's mean score over every stored result.
	Summary(ctx context.Context, userID int64) (ScoreSummary, error)

	// Progress returns how many distinct tests the user has taken out of
	// all stored tests.
	Progress(ctx context.Context, userID int64) (Progress, error)
}

// ScoreSummary aggregates a user's results. Mean is zero when Count is zero.
type ScoreSummary struct {
	UserID int64
	Count  int
	Mean   float64
}

// Progress is the share of stored tests a user has attempted.
type Progress struct {
	UserID     int64
	TestsTaken int
	TotalTests int
	Percent    float64
}

// CatalogRepo persists universities and their admission score history.
type CatalogRepo interface {
	// Save upserts every university and score in c.
	Save(ctx context.Context, c matching.Catalog) error

	// Load returns the full catalog ordered by university ID, then year.
	Load(ctx context.Context) (matching.Catalog, error)
}

// PreferenceRepo persists user preferences. Every Save is a new row; the
// most recent one is authoritative.
type PreferenceRepo interface {
	Save(ctx context.Context, p matching.Preference) error
	Latest(ctx context.Context, userID int64) (matching.Preference, error)
}

// RecommendationRun is one persisted ranking for a user.
type RecommendationRun struct {
	RunID           string
	UserID          int64
	CreatedAt       time.Time
	Recommendations []matching.Recommendation
}

// RecommendationRepo persists recommendation runs. Runs are appended; older
// runs stay for history.
type RecommendationRepo interface {
	SaveRun(ctx context.Context, userID int64, recs []matching.Recommendation) (*RecommendationRun, error)

	// Latest returns the user's most recent run, or ErrNotFound.
	Latest(ctx context.Context, userID int64) (*RecommendationRun, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
