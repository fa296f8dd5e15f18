package stations

import (
	"log"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/quadtree"
)

// stationPoint adapts a Station to the quadtree's point interface.
// orb points are [lon, lat].
type stationPoint struct {
	s *Station
}

func (p stationPoint) Point() orb.Point {
	return orb.Point{p.s.Lon, p.s.Lat}
}

// Index stores the canonical stations in memory for fast lookups: a hash map
// by station ID and a quadtree for nearest-neighbour queries.
type Index struct {
	byID map[string]*Station
	tree *quadtree.Quadtree
}

// NewIndex builds the index from a loaded station list.
func NewIndex(list []*Station) *Index {
	ix := &Index{
		byID: make(map[string]*Station, len(list)),
		tree: quadtree.New(orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}),
	}
	for _, s := range list {
		ix.byID[s.ID] = s
		if err := ix.tree.Add(stationPoint{s}); err != nil {
			// Still resolvable by ID, but invisible to spatial matching.
			log.Printf("station %s has unusable coordinates (%f, %f): %v", s.ID, s.Lat, s.Lon, err)
		}
	}
	return ix
}

// Get returns the station with the given canonical ID.
func (ix *Index) Get(id string) (*Station, bool) {
	s, ok := ix.byID[id]
	return s, ok
}

// Len returns the number of indexed stations.
func (ix *Index) Len() int {
	return len(ix.byID)
}

// Nearest returns up to k stations within maxDistDeg degrees of the given
// coordinate. The degree radius is a coarse pre-filter only; callers must
// re-check candidates with a true great-circle distance.
func (ix *Index) Nearest(lat, lon float64, k int, maxDistDeg float64) []*Station {
	ptrs := ix.tree.KNearest(nil, orb.Point{lon, lat}, k, maxDistDeg)
	out := make([]*Station, 0, len(ptrs))
	for _, p := range ptrs {
		out = append(out, p.(stationPoint).s)
	}
	return out
}
