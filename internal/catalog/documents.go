package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/abhisek/giasu/internal/grading"
	"github.com/abhisek/giasu/internal/matching"
)

type testsDoc struct {
	Tests []testDoc `json:"tests"`
}

type testDoc struct {
	ID                      int64         `json:"id"`
	Title                   string        `json:"title"`
	Description             string        `json:"description"`
	CreatedBy               int64         `json:"created_by"`
	SupportsMultipleAnswers bool          `json:"supports_multiple_answers"`
	Questions               []questionDoc `json:"questions"`
}

type questionDoc struct {
	ID             int64           `json:"id"`
	QuestionText   string          `json:"question_text"`
	OptionA        *string         `json:"option_a"`
	OptionB        *string         `json:"option_b"`
	OptionC        *string         `json:"option_c"`
	OptionD        *string         `json:"option_d"`
	QuestionType   string          `json:"question_type"`
	CorrectOptions json.RawMessage `json:"correct_options"`
	Points         *float64        `json:"points"`
}

type submissionsDoc struct {
	Submissions []struct {
		UserID  int64 `json:"user_id"`
		TestID  int64 `json:"test_id"`
		Answers []struct {
			QuestionID int64           `json:"question_id"`
			UserAnswer json.RawMessage `json:"user_answer"`
		} `json:"answers"`
	} `json:"submissions"`
}

type universitiesDoc struct {
	Universities []struct {
		matching.University
		Scores []struct {
			Year     int     `json:"year"`
			MinScore float64 `json:"min_score"`
			AvgScore float64 `json:"avg_score"`
			MaxScore float64 `json:"max_score"`
		} `json:"scores"`
	} `json:"universities"`
}

type preferencesDoc struct {
	Preferences []struct {
		UserID         int64    `json:"user_id"`
		PreferredMajor *string  `json:"preferred_major"`
		CurrentScore   *float64 `json:"current_score"`
		ExpectedScore  *float64 `json:"expected_score"`
	} `json:"preferences"`
}

// readDocument reads r, validates it against kind's schema and decodes it
// into v.
func readDocument(r io.Reader, kind string, v any) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read %s document: %w", kind, err)
	}
	if err := validateDocument(kind, raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s document: %w", kind, err)
	}
	return nil
}

// DecodeTests reads a tests document. Every definition is checked with
// ValidateTest.
func DecodeTests(r io.Reader) ([]grading.Definition, error) {
	var doc testsDoc
	if err := readDocument(r, KindTests, &doc); err != nil {
		return nil, err
	}

	defs := make([]grading.Definition, 0, len(doc.Tests))
	for i, td := range doc.Tests {
		def, err := td.definition()
		if err != nil {
			return nil, fmt.Errorf("tests[%d]: %w", i, err)
		}
		if err := ValidateTest(def); err != nil {
			return nil, fmt.Errorf("tests[%d] %q: %w", i, td.Title, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (td testDoc) definition() (grading.Definition, error) {
	def := grading.Definition{
		Test: grading.Test{
			ID:                      td.ID,
			Title:                   td.Title,
			Description:             td.Description,
			CreatedBy:               td.CreatedBy,
			SupportsMultipleAnswers: td.SupportsMultipleAnswers,
		},
	}
	for j, qd := range td.Questions {
		correct, err := decodeLetters(qd.CorrectOptions)
		if err != nil {
			return grading.Definition{}, fmt.Errorf("questions[%d]: %w", j, err)
		}
		q := grading.Question{
			ID:      qd.ID,
			TestID:  td.ID,
			Text:    qd.QuestionText,
			Options: [4]string{deref(qd.OptionA), deref(qd.OptionB), deref(qd.OptionC), deref(qd.OptionD)},
			Type:    grading.QuestionType(qd.QuestionType),
			Correct: correct,
			Points:  grading.DefaultPoints,
		}
		if q.Type == "" {
			q.Type = grading.QuestionSingle
		}
		if qd.Points != nil {
			q.Points = *qd.Points
		}
		def.Questions = append(def.Questions, q)
	}
	return def, nil
}

// DecodeSubmissions reads a submissions document. Answers that are not
// letters decode as grading.Unrecognized rather than failing the document.
func DecodeSubmissions(r io.Reader) ([]grading.Submission, error) {
	var doc submissionsDoc
	if err := readDocument(r, KindSubmissions, &doc); err != nil {
		return nil, err
	}

	subs := make([]grading.Submission, 0, len(doc.Submissions))
	for _, sd := range doc.Submissions {
		sub := grading.Submission{UserID: sd.UserID, TestID: sd.TestID}
		for _, ad := range sd.Answers {
			sub.Answers = append(sub.Answers, grading.Answer{QuestionID: ad.QuestionID, Letters: decodeAnswer(ad.UserAnswer)})
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// DecodeCatalog reads a university catalog document with nested yearly
// scores and checks it with ValidateCatalog.
func DecodeCatalog(r io.Reader) (matching.Catalog, error) {
	var doc universitiesDoc
	if err := readDocument(r, KindUniversities, &doc); err != nil {
		return matching.Catalog{}, err
	}

	var c matching.Catalog
	for _, ud := range doc.Universities {
		c.Universities = append(c.Universities, ud.University)
		for _, sd := range ud.Scores {
			c.Scores = append(c.Scores, matching.Score{
				UniversityID: ud.ID,
				Year:         sd.Year,
				MinScore:     sd.MinScore,
				AvgScore:     sd.AvgScore,
				MaxScore:     sd.MaxScore,
			})
		}
	}
	if err := ValidateCatalog(c); err != nil {
		return matching.Catalog{}, err
	}
	return c, nil
}

// DecodePreferences reads a preferences document. A missing expected score
// falls back to the current score.
func DecodePreferences(r io.Reader) ([]matching.Preference, error) {
	var doc preferencesDoc
	if err := readDocument(r, KindPreferences, &doc); err != nil {
		return nil, err
	}

	prefs := make([]matching.Preference, 0, len(doc.Preferences))
	for _, pd := range doc.Preferences {
		p := matching.Preference{UserID: pd.UserID, PreferredMajor: deref(pd.PreferredMajor)}
		if pd.CurrentScore != nil {
			p.CurrentScore = *pd.CurrentScore
		}
		p.ExpectedScore = p.CurrentScore
		if pd.ExpectedScore != nil {
			p.ExpectedScore = *pd.ExpectedScore
		}
		prefs = append(prefs, p)
	}
	return prefs, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
