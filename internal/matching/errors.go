package matching

import (
	"errors"
	"fmt"
)

// ErrNoScoreData is returned when a university has no admission scores
// (for the requested year, if any).
var ErrNoScoreData = errors.New("no score data")

// NoScoreDataError names the university that lacks score data.
type NoScoreDataError struct {
	UniversityID int64
	Year         int // 0 when the latest year was requested
}

func (e *NoScoreDataError) Error() string {
	if e.Year != 0 {
		return fmt.Sprintf("university %d: %v for %d", e.UniversityID, ErrNoScoreData, e.Year)
	}
	return fmt.Sprintf("university %d: %v", e.UniversityID, ErrNoScoreData)
}

func (e *NoScoreDataError) Unwrap() error { return ErrNoScoreData }
