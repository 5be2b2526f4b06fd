package matching

import (
	"cmp"
	"errors"
	"math"
	"slices"
	"strings"
)

// Options tune a matching run.
type Options struct {
	// Limit caps the number of recommendations. Zero or negative means
	// DefaultLimit.
	Limit int
	// Year selects a specific admission year instead of the latest one.
	Year int
}

// Recommend returns up to limit university IDs for pref, best fit first.
// A limit of zero or less means DefaultLimit.
func Recommend(pref Preference, universities []University, index *ScoreIndex, limit int) []int64 {
	return RecommendDetailed(pref, universities, index, Options{Limit: limit}).IDs()
}

// RecommendDetailed ranks universities for pref.
//
// A university is a candidate only when pref.ExpectedScore reaches its
// minimum admitted score. Candidates are ordered by the distance between
// their average score and the expected score, then by higher minimum, then
// by ID. When a preferred major is given, candidates whose name or
// description mention it move ahead of the others without changing the
// order inside either group. Universities without score data are skipped.
func RecommendDetailed(pref Preference, universities []University, index *ScoreIndex, opts Options) Outcome {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if index == nil {
		index = NewScoreIndex(nil)
	}
	major := strings.ToLower(strings.TrimSpace(pref.PreferredMajor))

	var out Outcome
	seen := make(map[int64]bool, len(universities))
	candidates := make([]Recommendation, 0, len(universities))

	for _, u := range universities {
		if seen[u.ID] {
			continue
		}
		seen[u.ID] = true

		band, err := lookupBand(index, u.ID, opts.Year)
		if errors.Is(err, ErrNoScoreData) {
			out.Skipped = append(out.Skipped, u.ID)
			continue
		}
		if pref.ExpectedScore < band.MinScore {
			out.Excluded++
			continue
		}
		candidates = append(candidates, Recommendation{
			UniversityID: u.ID,
			Name:         u.Name,
			Band:         band,
			Gap:          math.Abs(band.AvgScore - pref.ExpectedScore),
			MajorMatch:   major != "" && mentionsMajor(u, major),
		})
	}

	slices.SortFunc(candidates, compareFit)
	if major != "" {
		slices.SortStableFunc(candidates, func(a, b Recommendation) int {
			switch {
			case a.MajorMatch == b.MajorMatch:
				return 0
			case a.MajorMatch:
				return -1
			default:
				return 1
			}
		})
	}

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out.Recommendations = candidates
	slices.Sort(out.Skipped)
	return out
}

func lookupBand(index *ScoreIndex, universityID int64, year int) (Band, error) {
	if year != 0 {
		return index.ScoreBandForYear(universityID, year)
	}
	return index.LatestScoreBand(universityID)
}

// compareFit orders by gap ascending, minimum descending, then ID ascending.
func compareFit(a, b Recommendation) int {
	if c := cmp.Compare(a.Gap, b.Gap); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Band.MinScore, a.Band.MinScore); c != 0 {
		return c
	}
	return cmp.Compare(a.UniversityID, b.UniversityID)
}

func mentionsMajor(u University, major string) bool {
	return strings.Contains(strings.ToLower(u.Name), major) ||
		strings.Contains(strings.ToLower(u.Description), major)
}
