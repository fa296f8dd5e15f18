package crosswalk

import (
	"sort"
	"strings"

	"github.com/citybikelab/stationlink/config"
	"github.com/citybikelab/stationlink/internal"
	"github.com/citybikelab/stationlink/match"
)

// accumulator collects every observation of one legacy station ID.
type accumulator struct {
	nameCounts map[string]int
	lats       []float64
	lons       []float64
	count      int
}

// Aggregator denoises raw station observations into one record per legacy
// ID: mode of the name (rare corruption loses the vote) and median of the
// coordinates (GPS outliers do not shift the center). Never the mean.
type Aggregator struct {
	cfg config.AggregateConfig
	acc map[string]*accumulator
}

// NewAggregator creates an aggregator with the given denoising rules.
func NewAggregator(cfg config.AggregateConfig) *Aggregator {
	return &Aggregator{cfg: cfg, acc: map[string]*accumulator{}}
}

// Add records one raw observation of a station. IDs shaped like modern
// identifiers and coordinates outside the service area are discarded here
// so the two identifier spaces never collide.
func (a *Aggregator) Add(id, name string, lat, lon float64) {
	if !IsLegacyID(id, a.cfg.MaxLegacyIDLen) {
		return
	}
	if lat < a.cfg.MinLat || lat > a.cfg.MaxLat || lon < a.cfg.MinLon || lon > a.cfg.MaxLon {
		return
	}
	acc, ok := a.acc[id]
	if !ok {
		acc = &accumulator{nameCounts: map[string]int{}}
		a.acc[id] = acc
	}
	if name != "" {
		acc.nameCounts[name]++
	}
	acc.lats = append(acc.lats, lat)
	acc.lons = append(acc.lons, lon)
	acc.count++
}

// Observations returns one denoised observation per legacy ID that meets
// the minimum trip-count support, ordered by trip count descending so the
// busiest stations are matched (and reviewed) first.
func (a *Aggregator) Observations() []match.Observation {
	var out []match.Observation
	for id, acc := range a.acc {
		if acc.count < a.cfg.MinTripCount {
			continue
		}
		out = append(out, match.Observation{
			ID:        id,
			Name:      modeName(acc.nameCounts),
			Lat:       internal.Median(acc.lats),
			Lon:       internal.Median(acc.lons),
			TripCount: acc.count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TripCount != out[j].TripCount {
			return out[i].TripCount > out[j].TripCount
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// IsLegacyID reports whether an ID is structurally legacy: no separator
// (modern IDs are UUID-like) and short. maxLen bounds the legacy integer
// width.
func IsLegacyID(id string, maxLen int) bool {
	if id == "" {
		return false
	}
	if strings.Contains(id, "-") {
		return false
	}
	return len(id) < maxLen
}

// modeName returns the most frequent name; ties break lexicographically so
// aggregation is deterministic.
func modeName(counts map[string]int) string {
	best := ""
	bestCount := 0
	for name, c := range counts {
		if c > bestCount || (c == bestCount && name < best) {
			best = name
			bestCount = c
		}
	}
	return best
}
