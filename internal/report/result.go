package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/giasu/internal/grading"
	"github.com/abhisek/giasu/internal/store"
)

// WriteResult renders one graded attempt with its per-question breakdown.
// created is false when the attempt matched an earlier one and was not
// stored again.
func WriteResult(w io.Writer, r *store.StoredResult, created bool, invalid []*grading.InvalidChoiceError) error {
	heading := fmt.Sprintf("Test %d · user %d", r.TestID, r.UserID)
	summary := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(heading),
		field("Score", formatPercent(r.Score)),
		field("Correct", fmt.Sprintf("%d / %d", r.CorrectAnswers, r.TotalQuestions)),
		field("Points", fmt.Sprintf("%s / %s", formatNumber(r.PointsEarned), formatNumber(r.PointsPossible))),
		field("Attempt", r.AttemptID),
	)

	out := cardStyle.Render(summary) + "\n" + answersTable(r.Answers) + "\n"
	if !created {
		out += hintStyle.Render("Same answers as the previous attempt; existing result returned.") + "\n"
	}
	for _, ic := range invalid {
		out += warnStyle.Render(fmt.Sprintf("! question %d: %s not offered, graded as zero", ic.QuestionID, ic.Letters)) + "\n"
	}

	_, err := lipgloss.Fprint(w, out)
	return err
}

func answersTable(answers []grading.QuestionResult) string {
	rows := make([][]string, 0, len(answers))
	for _, a := range answers {
		mark := incorrectStyle.Render("✗")
		if a.IsCorrect {
			mark = correctStyle.Render("✓")
		}
		chosen := a.Letters.String()
		if chosen == "" {
			chosen = "-"
		}
		rows = append(rows, []string{
			strconv.FormatInt(a.QuestionID, 10),
			chosen,
			mark,
			formatNumber(a.PartialCredit),
			formatNumber(a.Points),
		})
	}
	return newTable("Question", "Answer", "", "Credit", "Points").Rows(rows...).String()
}

// History is a user's attempt history with its aggregates.
type History struct {
	UserID   int64
	Results  []*store.StoredResult
	Summary  store.ScoreSummary
	Progress store.Progress
}

// WriteResults renders a user's attempt history, newest first, followed by
// the mean score and test progress.
func WriteResults(w io.Writer, h History) error {
	progress := field("Progress", fmt.Sprintf("%d of %d tests (%s)",
		h.Progress.TestsTaken, h.Progress.TotalTests, formatPercent(h.Progress.Percent)))
	if len(h.Results) == 0 {
		_, err := lipgloss.Fprintln(w, hintStyle.Render(fmt.Sprintf("No results for user %d.", h.UserID))+"\n"+progress)
		return err
	}
	rows := make([][]string, 0, len(h.Results))
	for _, r := range h.Results {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			strconv.FormatInt(r.TestID, 10),
			formatPercent(r.Score),
			fmt.Sprintf("%d/%d", r.CorrectAnswers, r.TotalQuestions),
			fmt.Sprintf("%s/%s", formatNumber(r.PointsEarned), formatNumber(r.PointsPossible)),
			r.CompletedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	t := newTable("Result", "Test", "Score", "Correct", "Points", "Completed").Rows(rows...)
	mean := field("Mean score", fmt.Sprintf("%s over %d results", formatPercent(h.Summary.Mean), h.Summary.Count))
	_, err := lipgloss.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("Results for user %d", h.UserID)),
		t.String(),
		mean,
		progress,
	))
	return err
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(border)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return bodyCell
		})
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

// formatNumber prints v with at most two decimals and no trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
