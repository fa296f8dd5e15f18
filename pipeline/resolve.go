package pipeline

import (
	"strings"

	"github.com/citybikelab/stationlink/crosswalk"
	"github.com/citybikelab/stationlink/stations"
)

// Endpoint resolution provenance values.
const (
	ProvenanceDirect    = "direct"
	ProvenanceCrosswalk = "crosswalk"
	ProvenanceGhost     = "ghost"
	ProvenanceUnmatched = "unmatched"
)

// Resolution is the canonical identity chosen for one trip endpoint.
type Resolution struct {
	ID         string
	Name       string
	Lat        float64
	Lon        float64
	Provenance string
}

// Resolver resolves raw endpoint station IDs against the canonical station
// table and the merged crosswalk. Both tables are read-only snapshots.
type Resolver struct {
	stations  *stations.Index
	crosswalk *crosswalk.Table
}

// NewResolver creates a resolver over the given read-only snapshots.
func NewResolver(idx *stations.Index, xw *crosswalk.Table) *Resolver {
	return &Resolver{stations: idx, crosswalk: xw}
}

// Resolve maps one raw endpoint to canonical identity.
//
// Modern-shaped IDs (containing a separator) are treated as already
// canonical and looked up directly; a failed lookup keeps the raw values.
// Legacy-shaped IDs go through the crosswalk: a mapped entry resolves to
// its canonical station, a ghost entry keeps the legacy ID but substitutes
// the crosswalk's denoised coordinates and name for the row's own, and an
// ID with no entry at all passes through verbatim.
func (r *Resolver) Resolve(rawID, rawName string, rawLat, rawLon *float64) Resolution {
	res := Resolution{
		ID:         rawID,
		Name:       rawName,
		Provenance: ProvenanceUnmatched,
	}
	if rawLat != nil {
		res.Lat = *rawLat
	}
	if rawLon != nil {
		res.Lon = *rawLon
	}

	if strings.Contains(rawID, "-") {
		if s, ok := r.stations.Get(rawID); ok {
			res.Name = s.Name
			res.Lat = s.Lat
			res.Lon = s.Lon
			res.Provenance = ProvenanceDirect
		}
		return res
	}

	entry, ok := r.crosswalk.Lookup(rawID)
	if !ok {
		return res
	}
	if entry.IsGhost() {
		if entry.LegacyName != "" {
			res.Name = entry.LegacyName
		}
		res.Lat = entry.LegacyLat
		res.Lon = entry.LegacyLon
		res.Provenance = ProvenanceGhost
		return res
	}

	res.ID = entry.ModernID
	res.Provenance = ProvenanceCrosswalk
	if s, ok := r.stations.Get(entry.ModernID); ok {
		res.Name = s.Name
		res.Lat = s.Lat
		res.Lon = s.Lon
	} else {
		res.Name = entry.ModernName
		res.Lat = entry.LegacyLat
		res.Lon = entry.LegacyLon
	}
	return res
}
