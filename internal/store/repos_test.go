package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/giasu/internal/grading"
	"github.com/abhisek/giasu/internal/matching"
)

func sampleDefinition() grading.Definition {
	return grading.Definition{
		Test: grading.Test{ID: 10, Title: "Chemistry", Description: "Unit 1", CreatedBy: 2, SupportsMultipleAnswers: true},
		Questions: []grading.Question{
			{
				ID: 101, Text: "Noble gas?", Options: [4]string{"He", "O", "N", ""},
				Type: grading.QuestionSingle, Correct: grading.MustLetters("A"), Points: 1,
			},
			{
				ID: 102, Text: "Metals?", Options: [4]string{"Fe", "Cu", "S", "Na"},
				Type: grading.QuestionMultiple, Correct: grading.MustLetters("A", "B", "D"), Points: 3,
			},
		},
	}
}

func TestTestRepoSaveLoad(t *testing.T) {
	s := openTestStore(t)
	repo := s.TestRepo()
	ctx := context.Background()

	saved, err := repo.Save(ctx, sampleDefinition())
	require.NoError(t, err)
	assert.Equal(t, int64(10), saved.Test.ID)

	loaded, err := repo.Load(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)

	tests, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tests, 1)
	assert.Equal(t, "Chemistry", tests[0].Title)
}

func TestTestRepoAssignsIDs(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	def := sampleDefinition()
	def.Test.ID = 0
	for i := range def.Questions {
		def.Questions[i].ID = 0
	}
	saved, err := s.TestRepo().Save(ctx, def)
	require.NoError(t, err)
	require.NotZero(t, saved.Test.ID)
	for _, q := range saved.Questions {
		assert.NotZero(t, q.ID)
		assert.Equal(t, saved.Test.ID, q.TestID)
	}
}

func TestTestRepoSaveReplacesQuestions(t *testing.T) {
	s := openTestStore(t)
	repo := s.TestRepo()
	ctx := context.Background()

	_, err := repo.Save(ctx, sampleDefinition())
	require.NoError(t, err)

	def := sampleDefinition()
	def.Test.Title = "Chemistry v2"
	def.Questions = def.Questions[:1]
	_, err = repo.Save(ctx, def)
	require.NoError(t, err)

	loaded, err := repo.Load(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "Chemistry v2", loaded.Test.Title)
	assert.Len(t, loaded.Questions, 1)
}

func TestTestRepoLoadMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.TestRepo().Load(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func gradedSample(t *testing.T, answers ...grading.Answer) *grading.Result {
	t.Helper()
	res, err := grading.GradeSubmission(sampleDefinition(), grading.Submission{UserID: 1, TestID: 10, Answers: answers})
	require.NoError(t, err)
	return res
}

func TestResultRepoSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	_, err := s.TestRepo().Save(ctx, sampleDefinition())
	require.NoError(t, err)

	res := gradedSample(t,
		grading.Answer{QuestionID: 101, Letters: grading.MustLetters("A")},
		grading.Answer{QuestionID: 102, Letters: grading.MustLetters("A", "B")},
	)
	stored, created, err := s.ResultRepo().Save(ctx, res)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, stored.AttemptID)
	assert.NotZero(t, stored.Sequence)

	got, err := s.ResultRepo().Get(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Score, got.Score)
	assert.Equal(t, res.PointsEarned, got.PointsEarned)
	assert.Equal(t, res.PointsPossible, got.PointsPossible)
	assert.Equal(t, res.CorrectAnswers, got.CorrectAnswers)
	assert.Equal(t, res.Answers, got.Answers)
	assert.Equal(t, stored.AttemptID, got.AttemptID)
	assert.WithinDuration(t, time.Now(), got.CompletedAt, time.Minute)
}

func TestResultRepoDeduplicatesIdenticalResubmission(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	_, err := s.TestRepo().Save(ctx, sampleDefinition())
	require.NoError(t, err)
	repo := s.ResultRepo()

	answer := grading.Answer{QuestionID: 101, Letters: grading.MustLetters("B")}
	first, created, err := repo.Save(ctx, gradedSample(t, answer))
	require.NoError(t, err)
	require.True(t, created)

	again, created, err := repo.Save(ctx, gradedSample(t, answer))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	changed, created, err := repo.Save(ctx, gradedSample(t, grading.Answer{QuestionID: 101, Letters: grading.MustLetters("A")}))
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, changed.ID)

	// The original answers are no longer the latest, so they are stored again.
	_, created, err = repo.Save(ctx, gradedSample(t, answer))
	require.NoError(t, err)
	assert.True(t, created)

	all, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Greater(t, all[0].ID, all[1].ID, "newest first")
	for _, r := range all {
		assert.Len(t, r.Answers, 2)
	}
}

func TestResultRepoSummaryAndProgress(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.ResultRepo()
	_, err := s.TestRepo().Save(ctx, sampleDefinition())
	require.NoError(t, err)
	other := sampleDefinition()
	other.Test.ID = 20
	other.Questions[0].ID, other.Questions[1].ID = 201, 202
	_, err = s.TestRepo().Save(ctx, other)
	require.NoError(t, err)

	empty, err := repo.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, ScoreSummary{UserID: 1}, empty)

	_, _, err = repo.Save(ctx, gradedSample(t,
		grading.Answer{QuestionID: 101, Letters: grading.MustLetters("A")},
		grading.Answer{QuestionID: 102, Letters: grading.MustLetters("A", "B", "D")},
	))
	require.NoError(t, err)
	unreadable, _, err := repo.Save(ctx, gradedSample(t,
		grading.Answer{QuestionID: 101, Letters: grading.Unrecognized},
	))
	require.NoError(t, err)

	got, err := repo.Get(ctx, unreadable.ID)
	require.NoError(t, err)
	assert.Equal(t, grading.Unrecognized, got.Answers[0].Letters)

	sum, err := repo.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Count)
	assert.InDelta(t, 50.0, sum.Mean, 1e-9)

	progress, err := repo.Progress(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, Progress{UserID: 1, TestsTaken: 1, TotalTests: 2, Percent: 50}, progress)

	none, err := repo.Progress(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, Progress{UserID: 9, TotalTests: 2}, none)
}

func TestResultRepoGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.ResultRepo().Get(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func sampleCatalog() matching.Catalog {
	return matching.Catalog{
		Universities: []matching.University{
			{ID: 1, Name: "Polytechnic", Location: "Hanoi", Type: "public", Description: "Engineering and Computer Science"},
			{ID: 2, Name: "Medical School", Location: "Hue"},
		},
		Scores: []matching.Score{
			{UniversityID: 1, Year: 2023, MinScore: 24, AvgScore: 26, MaxScore: 28},
			{UniversityID: 1, Year: 2024, MinScore: 25, AvgScore: 27, MaxScore: 29},
			{UniversityID: 2, Year: 2024, MinScore: 27, AvgScore: 28, MaxScore: 30},
		},
	}
}

func TestCatalogRepoSaveLoad(t *testing.T) {
	s := openTestStore(t)
	repo := s.CatalogRepo()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleCatalog()))
	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleCatalog(), got)

	// Saving again updates in place.
	update := matching.Catalog{
		Universities: []matching.University{{ID: 2, Name: "Medical University", Location: "Hue"}},
		Scores:       []matching.Score{{UniversityID: 2, Year: 2024, MinScore: 26, AvgScore: 28, MaxScore: 30}},
	}
	require.NoError(t, repo.Save(ctx, update))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Universities, 2)
	require.Len(t, got.Scores, 3)
	assert.Equal(t, "Medical University", got.Universities[1].Name)
	assert.Equal(t, 26.0, got.Scores[2].MinScore)
}

func TestCatalogRepoRejectsOrphanScore(t *testing.T) {
	s := openTestStore(t)
	err := s.CatalogRepo().Save(context.Background(), matching.Catalog{
		Scores: []matching.Score{{UniversityID: 77, Year: 2024}},
	})
	assert.Error(t, err, "foreign key should reject unknown university")
}

func TestPreferenceRepoLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.PreferenceRepo()
	ctx := context.Background()

	_, err := repo.Latest(ctx, 5)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Save(ctx, matching.Preference{UserID: 5, PreferredMajor: "Biology", CurrentScore: 20, ExpectedScore: 22}))
	require.NoError(t, repo.Save(ctx, matching.Preference{UserID: 5, PreferredMajor: "Physics", CurrentScore: 21, ExpectedScore: 25}))
	require.NoError(t, repo.Save(ctx, matching.Preference{UserID: 6, PreferredMajor: "Art", CurrentScore: 10, ExpectedScore: 12}))

	got, err := repo.Latest(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, matching.Preference{UserID: 5, PreferredMajor: "Physics", CurrentScore: 21, ExpectedScore: 25}, got)
}

func TestRecommendationRepoRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CatalogRepo().Save(ctx, sampleCatalog()))
	repo := s.RecommendationRepo()

	_, err := repo.Latest(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	recs := []matching.Recommendation{
		{UniversityID: 2, Name: "Medical School", Band: matching.Band{Year: 2024, MinScore: 27, AvgScore: 28, MaxScore: 30}, Gap: 0},
		{UniversityID: 1, Name: "Polytechnic", Band: matching.Band{Year: 2024, MinScore: 25, AvgScore: 27, MaxScore: 29}, Gap: 1, MajorMatch: true},
	}
	first, err := repo.SaveRun(ctx, 1, recs[:1])
	require.NoError(t, err)
	second, err := repo.SaveRun(ctx, 1, recs)
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, second.RunID)

	latest, err := repo.Latest(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, second.RunID, latest.RunID)
	assert.Equal(t, recs, latest.Recommendations)

	empty, err := repo.SaveRun(ctx, 1, nil)
	require.NoError(t, err)
	latest, err = repo.Latest(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, empty.RunID, latest.RunID, "an empty run is still the newest")
	assert.Empty(t, latest.Recommendations)

	_, err = repo.Latest(ctx, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventRepoLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "mock", Model: "m1", Purpose: "advice", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true},
		{Provider: "mock", Model: "m1", Purpose: "advice", InputTokens: 20, OutputTokens: 15, LatencyMs: 300, Success: true},
		{Provider: "mock", Model: "m2", Purpose: "summary", Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "summary", got[0].Purpose, "newest first")
	assert.Greater(t, got[0].Sequence, got[1].Sequence)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Purpose: "advice"})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, 20, limited[0].InputTokens)

	one, err := repo.GetLLMEvent(ctx, got[0].ID)
	require.NoError(t, err)
	require.NotNil(t, one)
	assert.Equal(t, "boom", one.ErrorMessage)

	missing, err := repo.GetLLMEvent(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, PurposeUsage{Purpose: "advice", Calls: 2, InputTokens: 30, OutputTokens: 20, AvgLatencyMs: 200}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 1, "failed calls are not billed")
	assert.Equal(t, ModelUsage{Model: "m1", Calls: 2, InputTokens: 30, OutputTokens: 20}, byModel[0])
}
