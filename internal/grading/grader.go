package grading

import "math"

// AnswerKey is the grading rule for one question. It is a value type and
// never changes once built.
type AnswerKey struct {
	QuestionID int64
	Type       QuestionType
	Correct    LetterSet
	Defined    LetterSet
	Points     float64
}

// Grade is the outcome of grading one answer.
type Grade struct {
	IsCorrect     bool
	PartialCredit float64
}

// GradeAnswer scores the chosen letters against key.
//
// Letters outside the question's defined options yield a zero Grade and an
// *InvalidChoiceError; callers record the error and keep grading the rest of
// the submission. An empty selection is a zero Grade with no error.
func GradeAnswer(key AnswerKey, chosen LetterSet) (Grade, error) {
	if bad := chosen.Minus(key.Defined); !bad.Empty() {
		return Grade{}, &InvalidChoiceError{QuestionID: key.QuestionID, Letters: bad}
	}
	if chosen.Empty() || key.Correct.Empty() {
		return Grade{}, nil
	}

	switch key.Type {
	case QuestionSingle:
		return gradeExact(key, chosen), nil
	case QuestionMultiple:
		return gradeMultiple(key, chosen), nil
	default:
		// Unknown types earn nothing.
		return Grade{}, nil
	}
}

// gradeExact awards full points only for the exact correct set.
func gradeExact(key AnswerKey, chosen LetterSet) Grade {
	if chosen != key.Correct {
		return Grade{}
	}
	return Grade{IsCorrect: true, PartialCredit: key.Points}
}

// gradeMultiple awards (hits - misses) / |correct| of the points, floored at
// zero. Only the exact correct set counts as correct.
func gradeMultiple(key AnswerKey, chosen LetterSet) Grade {
	if chosen == key.Correct {
		return Grade{IsCorrect: true, PartialCredit: key.Points}
	}
	hits := chosen.Intersect(key.Correct).Len()
	misses := chosen.Minus(key.Correct).Len()
	raw := float64(hits-misses) / float64(key.Correct.Len())
	return Grade{PartialCredit: key.Points * math.Max(0, raw)}
}
