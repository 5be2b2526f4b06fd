package matching

// University is static reference data about an institution.
type University struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location,omitempty"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// Score is one year's admission band for a university.
type Score struct {
	UniversityID int64   `json:"university_id"`
	Year         int     `json:"year"`
	MinScore     float64 `json:"min_score"`
	AvgScore     float64 `json:"avg_score"`
	MaxScore     float64 `json:"max_score"`
}

// Band is the (min, avg, max) admission range of one year.
type Band struct {
	Year     int     `json:"year"`
	MinScore float64 `json:"min_score"`
	AvgScore float64 `json:"avg_score"`
	MaxScore float64 `json:"max_score"`
}

func (s Score) band() Band {
	return Band{Year: s.Year, MinScore: s.MinScore, AvgScore: s.AvgScore, MaxScore: s.MaxScore}
}

// Preference is what a user wants from a recommendation run.
type Preference struct {
	UserID         int64   `json:"user_id"`
	PreferredMajor string  `json:"preferred_major,omitempty"`
	CurrentScore   float64 `json:"current_score"`
	ExpectedScore  float64 `json:"expected_score"`
}

// Catalog is an immutable snapshot of universities and their score history.
type Catalog struct {
	Universities []University `json:"universities"`
	Scores       []Score      `json:"scores"`
}

// Index builds the score index for the catalog.
func (c Catalog) Index() *ScoreIndex {
	return NewScoreIndex(c.Scores)
}

// Recommend ranks the catalog's universities for pref.
func (c Catalog) Recommend(pref Preference, limit int) []int64 {
	return Recommend(pref, c.Universities, c.Index(), limit)
}

// Recommendation is one ranked university with the data that placed it.
type Recommendation struct {
	UniversityID int64   `json:"university_id"`
	Name         string  `json:"name"`
	Band         Band    `json:"band"`
	Gap          float64 `json:"gap"` // |avg - expected|
	MajorMatch   bool    `json:"major_match"`
}

// Outcome is the full result of a matching run.
type Outcome struct {
	Recommendations []Recommendation `json:"recommendations"`
	// Skipped lists universities without score data.
	Skipped []int64 `json:"skipped,omitempty"`
	// Excluded counts universities whose minimum is above the expected score.
	Excluded int `json:"excluded"`
}

// IDs returns the ranked university IDs.
func (o Outcome) IDs() []int64 {
	ids := make([]int64, len(o.Recommendations))
	for i, r := range o.Recommendations {
		ids[i] = r.UniversityID
	}
	return ids
}
