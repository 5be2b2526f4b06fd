package grading

// QuestionType selects the grading rule for a question.
type QuestionType string

const (
	// QuestionSingle requires exactly the one correct option.
	QuestionSingle QuestionType = "single"
	// QuestionMultiple is select-all-that-apply with partial credit.
	QuestionMultiple QuestionType = "multiple"
)

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	return t == QuestionSingle || t == QuestionMultiple
}

// DefaultPoints is the weight of a question when none is given.
const DefaultPoints = 1.0

// Test is the header of a test definition.
type Test struct {
	ID                      int64  `json:"id"`
	Title                   string `json:"title"`
	Description             string `json:"description,omitempty"`
	CreatedBy               int64  `json:"created_by,omitempty"`
	SupportsMultipleAnswers bool   `json:"supports_multiple_answers"`
}

// Question is one question of a test together with its answer key.
type Question struct {
	ID      int64        `json:"id"`
	TestID  int64        `json:"test_id"`
	Text    string       `json:"question_text"`
	Options [4]string    `json:"options"` // A..D; empty text means the option is not defined
	Type    QuestionType `json:"question_type"`
	Correct LetterSet    `json:"correct_options"`
	Points  float64      `json:"points"`
}

// DefinedOptions returns the letters whose option text is non-empty.
func (q Question) DefinedOptions() LetterSet {
	var set LetterSet
	for i, text := range q.Options {
		if text != "" {
			set |= 1 << i
		}
	}
	return set
}

// Key returns the immutable grading rule for q.
func (q Question) Key() AnswerKey {
	return AnswerKey{
		QuestionID: q.ID,
		Type:       q.Type,
		Correct:    q.Correct,
		Defined:    q.DefinedOptions(),
		Points:     q.Points,
	}
}

// Definition is a test with its questions, as loaded by the storage layer.
type Definition struct {
	Test      Test       `json:"test"`
	Questions []Question `json:"questions"`
}

// PointsPossible sums the points of every question.
func (d Definition) PointsPossible() float64 {
	var total float64
	for _, q := range sortedQuestions(d.Questions) {
		total += q.Points
	}
	return total
}

// Answer is the set of letters a user chose for one question.
type Answer struct {
	QuestionID int64     `json:"question_id"`
	Letters    LetterSet `json:"user_answer"`
}

// Submission is a user's answers to one test. It is never persisted as-is.
type Submission struct {
	UserID  int64    `json:"user_id"`
	TestID  int64    `json:"test_id"`
	Answers []Answer `json:"answers"`
}

// QuestionResult is the graded outcome of one question.
type QuestionResult struct {
	QuestionID    int64     `json:"question_id"`
	Letters       LetterSet `json:"user_answer"`
	IsCorrect     bool      `json:"is_correct"`
	PartialCredit float64   `json:"partial_credit"`
	Points        float64   `json:"points"`
}

// Result is the graded outcome of a submission.
type Result struct {
	UserID         int64            `json:"user_id"`
	TestID         int64            `json:"test_id"`
	Score          float64          `json:"score"`
	TotalQuestions int              `json:"total_questions"`
	CorrectAnswers int              `json:"correct_answers"`
	PointsEarned   float64          `json:"points_earned"`
	PointsPossible float64          `json:"points_possible"`
	Answers        []QuestionResult `json:"answers"`

	// InvalidChoices lists answers that referenced undefined options.
	// Each of those answers was graded as zero credit.
	InvalidChoices []*InvalidChoiceError `json:"-"`
}
