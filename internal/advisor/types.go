package advisor

// Fit classifies how a university relates to the expected score.
type Fit string

const (
	FitSafe  Fit = "safe"
	FitMatch Fit = "match"
	FitReach Fit = "reach"
)

// Note is the advice for one recommended university.
type Note struct {
	UniversityID int64  `json:"university_id"`
	Fit          Fit    `json:"fit"`
	Explanation  string `json:"explanation"`
}

// Advice is a short explanation of a recommendation run.
type Advice struct {
	Summary string `json:"summary"`
	// Notes follow the ranking of the recommendations they explain.
	Notes []Note `json:"universities"`
}

// Note returns the note for a university, if the model produced one.
func (a *Advice) Note(universityID int64) (Note, bool) {
	for _, n := range a.Notes {
		if n.UniversityID == universityID {
			return n, true
		}
	}
	return Note{}, false
}
