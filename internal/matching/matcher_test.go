package matching

import (
	"slices"
	"testing"
)

func TestRecommend_ExcludesReach(t *testing.T) {
	unis := []University{{ID: 1, Name: "U1"}, {ID: 2, Name: "U2"}}
	idx := NewScoreIndex([]Score{
		{UniversityID: 1, Year: 2024, MinScore: 90, AvgScore: 95},
		{UniversityID: 2, Year: 2024, MinScore: 70, AvgScore: 80},
	})

	got := Recommend(Preference{ExpectedScore: 85}, unis, idx, 0)
	if !slices.Equal(got, []int64{2}) {
		t.Errorf("Recommend = %v, want [2]", got)
	}
}

func TestRecommend_RankingAndTieBreaks(t *testing.T) {
	unis := []University{
		{ID: 5, Name: "Far"},
		{ID: 4, Name: "Tie low min"},
		{ID: 3, Name: "Tie high min"},
		{ID: 2, Name: "Exact tie B"},
		{ID: 1, Name: "Exact tie A"},
	}
	idx := NewScoreIndex([]Score{
		{UniversityID: 5, Year: 2024, MinScore: 40, AvgScore: 60},
		{UniversityID: 4, Year: 2024, MinScore: 50, AvgScore: 78},
		{UniversityID: 3, Year: 2024, MinScore: 65, AvgScore: 82},
		{UniversityID: 2, Year: 2024, MinScore: 60, AvgScore: 81},
		{UniversityID: 1, Year: 2024, MinScore: 60, AvgScore: 81},
	})

	got := Recommend(Preference{ExpectedScore: 80}, unis, idx, 10)
	want := []int64{1, 2, 3, 4, 5}
	if !slices.Equal(got, want) {
		t.Errorf("Recommend = %v, want %v", got, want)
	}
}

func TestRecommend_MajorIsAdvisory(t *testing.T) {
	unis := []University{
		{ID: 1, Name: "Closest", Description: "Arts and letters"},
		{ID: 2, Name: "Institute of Technology", Description: "Engineering"},
		{ID: 3, Name: "Middle", Description: "Computer ENGINEERING and more"},
		{ID: 4, Name: "Far", Description: "History"},
	}
	idx := NewScoreIndex([]Score{
		{UniversityID: 1, Year: 2024, MinScore: 60, AvgScore: 80},
		{UniversityID: 2, Year: 2024, MinScore: 60, AvgScore: 90},
		{UniversityID: 3, Year: 2024, MinScore: 60, AvgScore: 85},
		{UniversityID: 4, Year: 2024, MinScore: 60, AvgScore: 99},
	})

	out := RecommendDetailed(Preference{ExpectedScore: 80, PreferredMajor: " engineering "}, unis, idx, Options{})
	want := []int64{3, 2, 1, 4}
	if got := out.IDs(); !slices.Equal(got, want) {
		t.Errorf("IDs = %v, want %v", got, want)
	}
	if !out.Recommendations[0].MajorMatch || out.Recommendations[2].MajorMatch {
		t.Errorf("MajorMatch flags wrong: %+v", out.Recommendations)
	}

	// No university mentions the major: plain ranking, nothing dropped.
	none := Recommend(Preference{ExpectedScore: 80, PreferredMajor: "medicine"}, unis, idx, 0)
	if !slices.Equal(none, []int64{1, 3, 2, 4}) {
		t.Errorf("Recommend(no match) = %v, want [1 3 2 4]", none)
	}
}

func TestRecommend_LimitDefaultsToFive(t *testing.T) {
	var unis []University
	var scores []Score
	for id := int64(1); id <= 8; id++ {
		unis = append(unis, University{ID: id})
		scores = append(scores, Score{UniversityID: id, Year: 2024, MinScore: 10, AvgScore: float64(50 + id)})
	}
	idx := NewScoreIndex(scores)

	if got := Recommend(Preference{ExpectedScore: 50}, unis, idx, 0); len(got) != DefaultLimit {
		t.Errorf("len = %d, want %d", len(got), DefaultLimit)
	}
	if got := Recommend(Preference{ExpectedScore: 50}, unis, idx, 2); !slices.Equal(got, []int64{1, 2}) {
		t.Errorf("Recommend(limit 2) = %v, want [1 2]", got)
	}
}

func TestRecommendDetailed_SkipsMissingScores(t *testing.T) {
	unis := []University{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 1}}
	idx := NewScoreIndex([]Score{
		{UniversityID: 1, Year: 2024, MinScore: 10, AvgScore: 20},
		{UniversityID: 2, Year: 2024, MinScore: 99, AvgScore: 99},
	})

	out := RecommendDetailed(Preference{ExpectedScore: 50}, unis, idx, Options{})
	if !slices.Equal(out.IDs(), []int64{1}) {
		t.Errorf("IDs = %v, want [1]", out.IDs())
	}
	if !slices.Equal(out.Skipped, []int64{3}) {
		t.Errorf("Skipped = %v, want [3]", out.Skipped)
	}
	if out.Excluded != 1 {
		t.Errorf("Excluded = %d, want 1", out.Excluded)
	}
}

func TestRecommend_EmptyWhenNothingFits(t *testing.T) {
	unis := []University{{ID: 1}}
	idx := NewScoreIndex([]Score{{UniversityID: 1, Year: 2024, MinScore: 90, AvgScore: 95}})

	got := Recommend(Preference{ExpectedScore: 10}, unis, idx, 5)
	if got == nil || len(got) != 0 {
		t.Errorf("Recommend = %#v, want empty non-nil slice", got)
	}
	if got := Recommend(Preference{ExpectedScore: 10}, nil, nil, 5); len(got) != 0 {
		t.Errorf("Recommend(nil) = %v, want empty", got)
	}
}

func TestRecommendDetailed_SpecificYear(t *testing.T) {
	unis := []University{{ID: 1}}
	idx := NewScoreIndex([]Score{
		{UniversityID: 1, Year: 2023, MinScore: 60, AvgScore: 70},
		{UniversityID: 1, Year: 2024, MinScore: 90, AvgScore: 95},
	})
	pref := Preference{ExpectedScore: 75}

	if got := RecommendDetailed(pref, unis, idx, Options{}).IDs(); len(got) != 0 {
		t.Errorf("latest year: IDs = %v, want none", got)
	}
	out := RecommendDetailed(pref, unis, idx, Options{Year: 2023})
	if !slices.Equal(out.IDs(), []int64{1}) || out.Recommendations[0].Band.Year != 2023 {
		t.Errorf("year 2023: %+v", out)
	}
	if got := RecommendDetailed(pref, unis, idx, Options{Year: 2019}); !slices.Equal(got.Skipped, []int64{1}) {
		t.Errorf("year 2019: Skipped = %v, want [1]", got.Skipped)
	}
}

func TestCatalogRecommend(t *testing.T) {
	c := Catalog{
		Universities: []University{{ID: 1, Name: "U1"}, {ID: 2, Name: "U2"}},
		Scores: []Score{
			{UniversityID: 1, Year: 2024, MinScore: 90, AvgScore: 95},
			{UniversityID: 2, Year: 2024, MinScore: 70, AvgScore: 80},
		},
	}
	if got := c.Recommend(Preference{ExpectedScore: 85}, 0); !slices.Equal(got, []int64{2}) {
		t.Errorf("Catalog.Recommend = %v, want [2]", got)
	}
}
