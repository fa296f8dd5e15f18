package match

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/citybikelab/stationlink/config"
	"github.com/citybikelab/stationlink/stations"
)

// Confidence is the ordinal quality tier of an accepted match.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	ConfidenceNone   Confidence = "none"
)

// Observation is one aggregated legacy station as seen in the raw trip data.
type Observation struct {
	ID        string
	Name      string
	Lat       float64
	Lon       float64
	TripCount int
}

// Result describes the best canonical candidate for an observation.
type Result struct {
	ModernID   string
	ModernName string
	DistanceM  float64
	NameScore  int
	Score      float64
	Confidence Confidence
}

// Matcher scores legacy observations against the canonical station index.
// It is stateless apart from its read-only inputs; Match is a pure function.
type Matcher struct {
	idx *stations.Index
	cfg config.MatcherConfig
}

// New creates a matcher over the given canonical station index.
func New(idx *stations.Index, cfg config.MatcherConfig) *Matcher {
	return &Matcher{idx: idx, cfg: cfg}
}

// Match returns the best canonical candidate for obs, or ok=false when no
// candidate passes the confidence ladder (the observation is a ghost).
//
// Candidates come from the spatial index using a coarse degree radius; the
// decision itself always uses the true great-circle distance.
func (m *Matcher) Match(obs Observation) (Result, bool) {
	degreeRadius := m.cfg.MaxDistanceM / m.cfg.MetersPerDegree
	candidates := m.idx.Nearest(obs.Lat, obs.Lon, m.cfg.Candidates, degreeRadius)

	var best Result
	found := false
	from := orb.Point{obs.Lon, obs.Lat}

	for _, cand := range candidates {
		distM := geo.DistanceHaversine(from, orb.Point{cand.Lon, cand.Lat})
		if distM > m.cfg.MaxDistanceM {
			continue
		}

		nameScore := fuzzy.TokenSortRatio(
			strings.ToLower(obs.Name),
			strings.ToLower(cand.Name),
		)

		proximityScore := 100 * (1 - distM/m.cfg.MaxDistanceM)
		combined := float64(nameScore)*m.cfg.NameWeight + proximityScore*m.cfg.ProximityWeight

		if !found || combined > best.Score {
			found = true
			best = Result{
				ModernID:   cand.ID,
				ModernName: cand.Name,
				DistanceM:  distM,
				NameScore:  nameScore,
				Score:      combined,
			}
		}
	}

	if !found {
		return Result{Confidence: ConfidenceNone}, false
	}
	conf, ok := m.classify(best.DistanceM, best.NameScore)
	if !ok {
		return Result{Confidence: ConfidenceNone}, false
	}
	best.Confidence = conf
	return best, true
}

// classify applies the tiered acceptance ladder, first tier wins:
//
//	< coLocatedM: same physical location, accept regardless of name
//	  (stations get renamed; co-location alone is decisive)
//	< nearM with a passable name: likely the same station
//	< maxDistanceM with a good name: station may have moved slightly
//	otherwise: no match
func (m *Matcher) classify(distM float64, nameScore int) (Confidence, bool) {
	if distM < m.cfg.CoLocatedM {
		return ConfidenceHigh, true
	}
	if distM < m.cfg.NearM && nameScore >= m.cfg.NearMinNameScore {
		if nameScore >= m.cfg.NearHighNameScore {
			return ConfidenceHigh, true
		}
		return ConfidenceMedium, true
	}
	if distM < m.cfg.MaxDistanceM && nameScore >= m.cfg.MinNameScore {
		if nameScore >= m.cfg.FarHighNameScore {
			return ConfidenceMedium, true
		}
		return ConfidenceLow, true
	}
	return ConfidenceNone, false
}
