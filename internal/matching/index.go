package matching

// ScoreIndex answers admission band lookups. It is built once from the full
// score history and is read-only afterwards, so concurrent lookups are safe.
type ScoreIndex struct {
	latest map[int64]Score
	byYear map[int64]map[int]Score
}

// NewScoreIndex indexes scores by university and year. When two rows share a
// university and year, the one with the higher average wins.
func NewScoreIndex(scores []Score) *ScoreIndex {
	x := &ScoreIndex{
		latest: make(map[int64]Score),
		byYear: make(map[int64]map[int]Score),
	}
	for _, s := range scores {
		years := x.byYear[s.UniversityID]
		if years == nil {
			years = make(map[int]Score)
			x.byYear[s.UniversityID] = years
		}
		if cur, ok := years[s.Year]; !ok || preferScore(s, cur) {
			years[s.Year] = s
		}
		if cur, ok := x.latest[s.UniversityID]; !ok || s.Year > cur.Year || (s.Year == cur.Year && preferScore(s, cur)) {
			x.latest[s.UniversityID] = s
		}
	}
	return x
}

// preferScore breaks same-year ties: higher avg, then higher min, then
// higher max. Rows equal on all three are interchangeable.
func preferScore(a, b Score) bool {
	if a.AvgScore != b.AvgScore {
		return a.AvgScore > b.AvgScore
	}
	if a.MinScore != b.MinScore {
		return a.MinScore > b.MinScore
	}
	return a.MaxScore > b.MaxScore
}

// LatestScoreBand returns the band of the most recent year on record.
func (x *ScoreIndex) LatestScoreBand(universityID int64) (Band, error) {
	s, ok := x.latest[universityID]
	if !ok {
		return Band{}, &NoScoreDataError{UniversityID: universityID}
	}
	return s.band(), nil
}

// ScoreBandForYear returns the band recorded for a specific year.
func (x *ScoreIndex) ScoreBandForYear(universityID int64, year int) (Band, error) {
	s, ok := x.byYear[universityID][year]
	if !ok {
		return Band{}, &NoScoreDataError{UniversityID: universityID, Year: year}
	}
	return s.band(), nil
}

// Len returns the number of universities with at least one score.
func (x *ScoreIndex) Len() int {
	return len(x.latest)
}
