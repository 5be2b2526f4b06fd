package grading

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// GradeSubmission grades every question of def against sub.
//
// Questions without an answer in sub are graded as empty answers. Answers
// that appear more than once for the same question are merged. Questions are
// accumulated in ascending ID order, so any permutation of def.Questions or
// sub.Answers produces an identical Result.
func GradeSubmission(def Definition, sub Submission) (*Result, error) {
	if len(def.Questions) == 0 {
		return nil, fmt.Errorf("grade test %d: %w", def.Test.ID, ErrEmptyTest)
	}

	chosen := make(map[int64]LetterSet, len(sub.Answers))
	for _, a := range sub.Answers {
		chosen[a.QuestionID] = chosen[a.QuestionID].Union(a.Letters)
	}

	questions := sortedQuestions(def.Questions)
	res := &Result{
		UserID:         sub.UserID,
		TestID:         def.Test.ID,
		TotalQuestions: len(questions),
		Answers:        make([]QuestionResult, 0, len(questions)),
	}

	for _, q := range questions {
		letters := chosen[q.ID]
		g, err := GradeAnswer(q.Key(), letters)
		var ic *InvalidChoiceError
		if errors.As(err, &ic) {
			res.InvalidChoices = append(res.InvalidChoices, ic)
		}

		res.PointsPossible += q.Points
		res.PointsEarned += g.PartialCredit
		if g.IsCorrect {
			res.CorrectAnswers++
		}
		res.Answers = append(res.Answers, QuestionResult{
			QuestionID:    q.ID,
			Letters:       letters,
			IsCorrect:     g.IsCorrect,
			PartialCredit: g.PartialCredit,
			Points:        q.Points,
		})
	}

	res.PointsEarned = min(res.PointsEarned, res.PointsPossible)
	res.Score = Percentage(res.PointsEarned, res.PointsPossible)
	return res, nil
}

// Percentage returns 100*earned/possible clamped to [0, 100], or 0 when
// nothing was possible.
func Percentage(earned, possible float64) float64 {
	if possible <= 0 {
		return 0
	}
	return max(0, min(100, 100*earned/possible))
}

// sortedQuestions returns a copy of qs ordered by ID.
func sortedQuestions(qs []Question) []Question {
	out := slices.Clone(qs)
	slices.SortStableFunc(out, func(a, b Question) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}
