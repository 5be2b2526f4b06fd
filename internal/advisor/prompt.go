package advisor

import (
	"fmt"
	"strings"

	"github.com/abhisek/giasu/internal/matching"
)

const systemPrompt = `You are a university admissions counsellor talking to a high school student.

Rules:
- You are given the student's expected entrance score, current score and preferred major, followed by a ranked list of universities with their admission score range for one year.
- The ranking is final. Do not reorder, add or remove universities.
- Explain each university in one or two plain sentences, mentioning how the expected score compares to the university's minimum and average.
- Classify each university as "safe", "match" or "reach".
- Keep the summary encouraging and concrete. Never promise admission.`

// buildUserMessage renders the preference and ranked recommendations.
func buildUserMessage(pref matching.Preference, recs []matching.Recommendation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Expected score: %.2f\n", pref.ExpectedScore)
	fmt.Fprintf(&b, "Current score: %.2f\n", pref.CurrentScore)
	major := pref.PreferredMajor
	if strings.TrimSpace(major) == "" {
		major = "None"
	}
	fmt.Fprintf(&b, "Preferred major: %s\n", major)

	b.WriteString("\nRanked universities:\n")
	for i, r := range recs {
		fmt.Fprintf(&b, "%d. id=%d %s (year %d: min %.2f, avg %.2f, max %.2f; gap to expected %.2f",
			i+1, r.UniversityID, r.Name, r.Band.Year, r.Band.MinScore, r.Band.AvgScore, r.Band.MaxScore, r.Gap)
		if r.MajorMatch {
			b.WriteString("; offers the preferred major")
		}
		b.WriteString(")\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
