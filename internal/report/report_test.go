package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/giasu/internal/advisor"
	"github.com/abhisek/giasu/internal/grading"
	"github.com/abhisek/giasu/internal/matching"
	"github.com/abhisek/giasu/internal/store"
)

func storedResult() *store.StoredResult {
	return &store.StoredResult{
		ID:          4,
		Sequence:    9,
		AttemptID:   "6f1c7f7e-1b8e-4a0e-9a53-1f0e5f7c2b11",
		CompletedAt: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		Result: grading.Result{
			UserID:         7,
			TestID:         2,
			Score:          83.33333333,
			TotalQuestions: 2,
			CorrectAnswers: 1,
			PointsEarned:   1.6666666,
			PointsPossible: 2,
			Answers: []grading.QuestionResult{
				{QuestionID: 10, Letters: grading.MustLetters("B"), IsCorrect: true, PartialCredit: 1, Points: 1},
				{QuestionID: 11, Letters: grading.MustLetters("A", "C"), PartialCredit: 0.6666666, Points: 1},
			},
		},
	}
}

func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteResult(t *testing.T) {
	var buf bytes.Buffer
	invalid := []*grading.InvalidChoiceError{{QuestionID: 11, Letters: grading.MustLetters("D")}}
	if err := WriteResult(&buf, storedResult(), true, invalid); err != nil {
		t.Fatalf("WriteResult: %v", err)
	}
	out := buf.String()
	assertContains(t, out,
		"Test 2 · user 7",
		"83.33%",
		"1 / 2",
		"1.67 / 2",
		"A,C",
		"0.67",
		"question 11: D not offered",
	)
	if strings.Contains(out, "existing result returned") {
		t.Error("new attempt reported as duplicate")
	}
}

func TestWriteResult_Duplicate(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResult(&buf, storedResult(), false, nil); err != nil {
		t.Fatalf("WriteResult: %v", err)
	}
	assertContains(t, buf.String(), "existing result returned")
}

func TestWriteResults(t *testing.T) {
	var buf bytes.Buffer
	h := History{
		UserID:   7,
		Results:  []*store.StoredResult{storedResult()},
		Summary:  store.ScoreSummary{UserID: 7, Count: 1, Mean: 83.333333},
		Progress: store.Progress{UserID: 7, TestsTaken: 1, TotalTests: 4, Percent: 25},
	}
	if err := WriteResults(&buf, h); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	assertContains(t, buf.String(), "Results for user 7", "83.33%", "1/2",
		"Mean score: 83.33% over 1 results", "Progress: 1 of 4 tests (25.00%)")

	buf.Reset()
	if err := WriteResults(&buf, History{UserID: 8, Progress: store.Progress{UserID: 8, TotalTests: 4}}); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	assertContains(t, buf.String(), "No results for user 8.", "Progress: 0 of 4 tests (0.00%)")
}

func TestWriteRecommendations(t *testing.T) {
	run := &store.RecommendationRun{
		RunID:  "run-1",
		UserID: 7,
		Recommendations: []matching.Recommendation{
			{UniversityID: 3, Name: "Polytechnic Institute", Band: matching.Band{Year: 2024, MinScore: 24, AvgScore: 25.8, MaxScore: 28}, Gap: 0.2, MajorMatch: true},
			{UniversityID: 1, Band: matching.Band{Year: 2024, MinScore: 22, AvgScore: 24, MaxScore: 27}, Gap: 2},
		},
	}
	adv := &advisor.Advice{
		Summary: "Both are within reach.",
		Notes:   []advisor.Note{{UniversityID: 3, Fit: advisor.FitMatch, Explanation: "Right at the average."}},
	}

	var buf bytes.Buffer
	err := WriteRecommendations(&buf, Recommendations{
		Preference: matching.Preference{UserID: 7, PreferredMajor: "Engineering", ExpectedScore: 26},
		Run:        run,
		Skipped:    []int64{5, 6},
		Advice:     adv,
	})
	if err != nil {
		t.Fatalf("WriteRecommendations: %v", err)
	}
	assertContains(t, buf.String(),
		"Recommendations for user 7",
		"Engineering",
		"Polytechnic Institute",
		"university 1",
		"25.8",
		"match",
		"Both are within reach.",
		"Right at the average.",
		"Run run-1",
		"Skipped without score data: 5, 6",
	)
}

func TestWriteRecommendations_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteRecommendations(&buf, Recommendations{Preference: matching.Preference{UserID: 1}})
	if err != nil {
		t.Fatalf("WriteRecommendations: %v", err)
	}
	assertContains(t, buf.String(), "No university admits the expected score.", "any")
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2, "2"},
		{0.5, "0.5"},
		{0.6666666, "0.67"},
		{24.999, "25"},
	}
	for _, tt := range tests {
		if got := formatNumber(tt.in); got != tt.want {
			t.Errorf("formatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
