package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/giasu/internal/advisor"
	"github.com/abhisek/giasu/internal/matching"
	"github.com/abhisek/giasu/internal/store"
)

// Recommendations is everything shown for one recommendation run.
type Recommendations struct {
	Preference matching.Preference
	Run        *store.RecommendationRun
	// Skipped lists universities left out for lack of score data.
	Skipped []int64
	// Advice is optional.
	Advice *advisor.Advice
}

// WriteRecommendations renders a ranked run, with advice notes when present.
func WriteRecommendations(w io.Writer, r Recommendations) error {
	var b strings.Builder

	major := r.Preference.PreferredMajor
	if major == "" {
		major = "any"
	}
	b.WriteString(cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("Recommendations for user %d", r.Preference.UserID)),
		field("Expected score", formatNumber(r.Preference.ExpectedScore)),
		field("Preferred major", major),
	)))
	b.WriteString("\n")

	if r.Run == nil || len(r.Run.Recommendations) == 0 {
		b.WriteString(hintStyle.Render("No university admits the expected score."))
		b.WriteString("\n")
	} else {
		b.WriteString(recommendationTable(r.Run.Recommendations, r.Advice))
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("Run " + r.Run.RunID))
		b.WriteString("\n")
	}

	if r.Advice != nil {
		if r.Advice.Summary != "" {
			b.WriteString("\n" + valueStyle.Render(r.Advice.Summary) + "\n")
		}
		for _, n := range r.Advice.Notes {
			fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(fmt.Sprintf("#%d", n.UniversityID)), n.Explanation)
		}
	}

	if len(r.Skipped) > 0 {
		ids := make([]string, len(r.Skipped))
		for i, id := range r.Skipped {
			ids[i] = strconv.FormatInt(id, 10)
		}
		b.WriteString(warnStyle.Render("Skipped without score data: "+strings.Join(ids, ", ")) + "\n")
	}

	_, err := lipgloss.Fprint(w, b.String())
	return err
}

func recommendationTable(recs []matching.Recommendation, adv *advisor.Advice) string {
	headers := []string{"#", "University", "Year", "Min", "Avg", "Max", "Gap", "Major"}
	if adv != nil {
		headers = append(headers, "Fit")
	}

	rows := make([][]string, 0, len(recs))
	for i, rec := range recs {
		name := rec.Name
		if name == "" {
			name = "university " + strconv.FormatInt(rec.UniversityID, 10)
		}
		majorMark := ""
		if rec.MajorMatch {
			majorMark = correctStyle.Render("✓")
		}
		row := []string{
			strconv.Itoa(i + 1),
			name,
			strconv.Itoa(rec.Band.Year),
			formatNumber(rec.Band.MinScore),
			formatNumber(rec.Band.AvgScore),
			formatNumber(rec.Band.MaxScore),
			formatNumber(rec.Gap),
			majorMark,
		}
		if adv != nil {
			fit := ""
			if n, ok := adv.Note(rec.UniversityID); ok {
				fit = string(n.Fit)
			}
			row = append(row, fit)
		}
		rows = append(rows, row)
	}
	return newTable(headers...).Rows(rows...).String()
}
