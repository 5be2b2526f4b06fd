package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/giasu/internal/llm"
	"github.com/abhisek/giasu/internal/matching"
)

func testPreference() matching.Preference {
	return matching.Preference{UserID: 7, PreferredMajor: "Engineering", CurrentScore: 24.5, ExpectedScore: 26}
}

func testRecommendations() []matching.Recommendation {
	return []matching.Recommendation{
		{UniversityID: 3, Name: "Polytechnic Institute", Band: matching.Band{Year: 2024, MinScore: 24, AvgScore: 25.8, MaxScore: 28}, Gap: 0.2, MajorMatch: true},
		{UniversityID: 1, Name: "National University", Band: matching.Band{Year: 2024, MinScore: 22, AvgScore: 24, MaxScore: 27}, Gap: 2},
	}
}

func TestAdvise(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"summary": "Both options are realistic.",
		"universities": [
			{"university_id": 1, "fit": "safe", "explanation": "Comfortably above the average."},
			{"university_id": 99, "fit": "reach", "explanation": "Not in the list."},
			{"university_id": 3, "fit": "match", "explanation": "Right at the average."}
		]
	}`)})

	adv, err := New(mock, DefaultConfig()).Advise(context.Background(), testPreference(), testRecommendations())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if adv.Summary != "Both options are realistic." {
		t.Errorf("summary = %q", adv.Summary)
	}
	if len(adv.Notes) != 2 {
		t.Fatalf("notes = %d, want 2", len(adv.Notes))
	}
	if adv.Notes[0].UniversityID != 3 || adv.Notes[0].Fit != FitMatch {
		t.Errorf("first note = %+v, want university 3 (match)", adv.Notes[0])
	}
	if _, ok := adv.Note(99); ok {
		t.Error("note for a university outside the ranking was kept")
	}

	calls := mock.Calls()
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(calls))
	}
	if calls[0].Schema != AdviceSchema {
		t.Error("request did not carry the advice schema")
	}
	msg := calls[0].Messages[0].Content
	for _, want := range []string{"Expected score: 26.00", "Preferred major: Engineering", "1. id=3 Polytechnic Institute", "offers the preferred major"} {
		if !strings.Contains(msg, want) {
			t.Errorf("user message missing %q:\n%s", want, msg)
		}
	}
}

func TestAdvise_NoRecommendations(t *testing.T) {
	mock := llm.NewMockProvider()
	_, err := New(mock, DefaultConfig()).Advise(context.Background(), testPreference(), nil)
	if !errors.Is(err, ErrNoRecommendations) {
		t.Fatalf("err = %v, want ErrNoRecommendations", err)
	}
	if mock.CallCount() != 0 {
		t.Error("provider called with nothing to explain")
	}
}

func TestAdvise_ProviderFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	_, err := New(mock, DefaultConfig()).Advise(context.Background(), testPreference(), testRecommendations())
	if !llm.IsUnavailable(err) {
		t.Fatalf("err = %v, want provider unavailable", err)
	}
}

func TestAdvise_RejectsOffSchemaResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"summary":"ok","universities":[{"university_id":3,"fit":"likely","explanation":"x"}]}`)})
	_, err := New(mock, DefaultConfig()).Advise(context.Background(), testPreference(), testRecommendations())
	var inv *llm.ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestBuildUserMessage_NoMajor(t *testing.T) {
	pref := testPreference()
	pref.PreferredMajor = "  "
	msg := buildUserMessage(pref, testRecommendations()[:1])
	if !strings.Contains(msg, "Preferred major: None") {
		t.Errorf("message = %q", msg)
	}
}
