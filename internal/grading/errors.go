package grading

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidChoice marks an answer that chose a letter the question
	// does not define. The answer is graded as zero credit.
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrEmptyTest is returned when a test has no questions to grade.
	ErrEmptyTest = errors.New("test has no questions")
)

// InvalidChoiceError carries the question and the offending letters.
type InvalidChoiceError struct {
	QuestionID int64
	Letters    LetterSet
}

func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("question %d: %v: %s", e.QuestionID, ErrInvalidChoice, e.Letters)
}

func (e *InvalidChoiceError) Unwrap() error { return ErrInvalidChoice }
