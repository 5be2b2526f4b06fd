package catalog

import (
	"errors"
	"fmt"

	"github.com/abhisek/giasu/internal/grading"
	"github.com/abhisek/giasu/internal/matching"
)

// ValidateTest checks the rules the grader relies on but does not enforce:
// known question types, positive points, non-empty correct options that are
// defined options, exactly one correct option for single-choice questions,
// and unique question IDs. All violations are returned joined.
func ValidateTest(def grading.Definition) error {
	var errs []error
	if len(def.Questions) == 0 {
		errs = append(errs, invalid("questions", "test has no questions"))
	}

	seen := make(map[int64]bool, len(def.Questions))
	for i, q := range def.Questions {
		field := fmt.Sprintf("questions[%d]", i)
		if q.ID != 0 {
			if seen[q.ID] {
				errs = append(errs, invalid(field+".id", "duplicate question id %d", q.ID))
			}
			seen[q.ID] = true
		}
		if !q.Type.Valid() {
			errs = append(errs, invalid(field+".question_type", "unknown type %q", q.Type))
		}
		if q.Points <= 0 {
			errs = append(errs, invalid(field+".points", "must be positive, got %v", q.Points))
		}
		if q.Correct.Empty() {
			errs = append(errs, invalid(field+".correct_options", "must not be empty"))
		}
		if bad := q.Correct.Minus(q.DefinedOptions()); !bad.Empty() {
			errs = append(errs, invalid(field+".correct_options", "%s are not defined options", bad))
		}
		if q.Type == grading.QuestionSingle && q.Correct.Len() > 1 {
			errs = append(errs, invalid(field+".correct_options", "single-choice question has %d correct options", q.Correct.Len()))
		}
	}
	return errors.Join(errs...)
}

// ValidateCatalog checks unique university IDs, that every score belongs
// to a listed university, and min <= avg <= max.
func ValidateCatalog(c matching.Catalog) error {
	var errs []error
	known := make(map[int64]bool, len(c.Universities))
	for i, u := range c.Universities {
		if known[u.ID] {
			errs = append(errs, invalid(fmt.Sprintf("universities[%d].id", i), "duplicate university id %d", u.ID))
		}
		known[u.ID] = true
	}
	for i, s := range c.Scores {
		field := fmt.Sprintf("scores[%d]", i)
		if !known[s.UniversityID] {
			errs = append(errs, invalid(field+".university_id", "unknown university %d", s.UniversityID))
		}
		if s.MinScore > s.AvgScore || s.AvgScore > s.MaxScore {
			errs = append(errs, invalid(field, "want min <= avg <= max, got %v/%v/%v", s.MinScore, s.AvgScore, s.MaxScore))
		}
	}
	return errors.Join(errs...)
}
