package crosswalk

// Entry is one persisted crosswalk row: a legacy station and, when a
// confident match exists, its canonical counterpart. An empty ModernID
// marks a ghost station.
type Entry struct {
	LegacyID   string  `csv:"legacy_id"`
	LegacyName string  `csv:"legacy_name"`
	LegacyLat  float64 `csv:"legacy_lat"`
	LegacyLon  float64 `csv:"legacy_lon"`
	TripCount  int     `csv:"trip_count"`

	ModernID        string  `csv:"modern_id"`
	ModernName      string  `csv:"modern_name"`
	MatchScore      float64 `csv:"match_score"`
	MatchConfidence string  `csv:"match_confidence"`
	MatchDistanceM  float64 `csv:"match_distance_m"`
}

// IsGhost reports whether the entry has no canonical match.
func (e *Entry) IsGhost() bool {
	return e.ModernID == ""
}
