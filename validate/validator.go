package validate

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/citybikelab/stationlink/crosswalk"
	"github.com/citybikelab/stationlink/internal"
	"github.com/citybikelab/stationlink/pipeline"
	"github.com/citybikelab/stationlink/trips"
)

// Options narrows a validation run and sets its thresholds.
type Options struct {
	Year               int
	DistanceThresholdM float64
	OutlierPct         float64
}

// StationFinding is the per-legacy-station distance aggregate.
type StationFinding struct {
	LegacyID   string  `json:"legacy_id"`
	LegacyName string  `json:"legacy_name"`
	LegacyLat  float64 `json:"legacy_lat"`
	LegacyLon  float64 `json:"legacy_lon"`

	CanonicalID   string  `json:"canonical_id"`
	CanonicalName string  `json:"canonical_name"`
	CanonicalLat  float64 `json:"canonical_lat"`
	CanonicalLon  float64 `json:"canonical_lon"`

	MatchType        string  `json:"match_type"`
	TripCount        int     `json:"trip_count"`
	MedianDistanceM  float64 `json:"median_distance_m"`
	AvgDistanceM     float64 `json:"avg_distance_m"`
	MaxDistanceM     float64 `json:"max_distance_m"`
	P95DistanceM     float64 `json:"p95_distance_m"`
	PctOverThreshold float64 `json:"pct_over_threshold"`
}

// Summary counts the three classification outcomes.
type Summary struct {
	TotalStationsAnalyzed int `json:"total_stations_analyzed"`
	SuspiciousMappings    int `json:"suspicious_mappings"`
	BadDataStations       int `json:"bad_data_stations"`
	GoodMappings          int `json:"good_mappings"`
}

// Report is the validation result. Healthy stations are counted but not
// listed, to keep the report actionable.
type Report struct {
	Year               int              `json:"year,omitempty"`
	FilesAnalyzed      int              `json:"files_analyzed"`
	DistanceThresholdM float64          `json:"distance_threshold_m"`
	OutlierPctThresh   float64          `json:"outlier_pct_threshold"`
	Summary            Summary          `json:"summary"`
	SuspiciousMappings []StationFinding `json:"suspicious_mappings"`
	BadDataStations    []StationFinding `json:"bad_data_stations"`
}

// stationAccum collects per-trip distances for one legacy station.
type stationAccum struct {
	finding   StationFinding
	distances []float64
}

// Run validates every normalized file in processedDir against the
// crosswalk. For each trip resolved via the crosswalk or kept as a ghost
// it measures the great-circle distance between the canonical coordinate
// the pipeline assigned and the trip's own raw coordinate, then aggregates
// per legacy station.
func Run(processedDir string, xw *crosswalk.Table, opts Options) (*Report, error) {
	files, err := filepath.Glob(filepath.Join(processedDir, "*.csv"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	if opts.Year != 0 {
		year := strconv.Itoa(opts.Year)
		kept := files[:0]
		for _, f := range files {
			if strings.Contains(filepath.Base(f), year) {
				kept = append(kept, f)
			}
		}
		files = kept
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no normalized files in %s", processedDir)
	}

	// One unreadable normalized file should not cost the operator the
	// findings from every other file.
	acc := map[string]*stationAccum{}
	analyzed := 0
	for _, path := range files {
		if err := scanFile(path, xw, acc); err != nil {
			log.Printf("skipping %s: %v", filepath.Base(path), err)
			continue
		}
		analyzed++
	}

	report := &Report{
		Year:               opts.Year,
		FilesAnalyzed:      analyzed,
		DistanceThresholdM: opts.DistanceThresholdM,
		OutlierPctThresh:   opts.OutlierPct,
		SuspiciousMappings: []StationFinding{},
		BadDataStations:    []StationFinding{},
	}

	ids := make([]string, 0, len(acc))
	for id := range acc {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		a := acc[id]
		f := a.finding
		f.TripCount = len(a.distances)
		f.MedianDistanceM = round1(internal.Median(a.distances))
		f.AvgDistanceM = round1(internal.Mean(a.distances))
		f.MaxDistanceM = round1(internal.Max(a.distances))
		f.P95DistanceM = round1(internal.Percentile(a.distances, 0.95))

		over := 0
		for _, d := range a.distances {
			if d > opts.DistanceThresholdM {
				over++
			}
		}
		f.PctOverThreshold = round2(100 * float64(over) / float64(len(a.distances)))

		report.Summary.TotalStationsAnalyzed++
		switch {
		case f.MedianDistanceM > opts.DistanceThresholdM:
			// Most trips disagree with the assigned location: the
			// crosswalk entry itself is probably wrong.
			report.Summary.SuspiciousMappings++
			report.SuspiciousMappings = append(report.SuspiciousMappings, f)
		case f.PctOverThreshold > opts.OutlierPct:
			// Mapping looks right; a minority of rows carry bad coords.
			report.Summary.BadDataStations++
			report.BadDataStations = append(report.BadDataStations, f)
		default:
			report.Summary.GoodMappings++
		}
	}

	sort.Slice(report.SuspiciousMappings, func(i, j int) bool {
		return report.SuspiciousMappings[i].MedianDistanceM > report.SuspiciousMappings[j].MedianDistanceM
	})
	sort.Slice(report.BadDataStations, func(i, j int) bool {
		return report.BadDataStations[i].PctOverThreshold > report.BadDataStations[j].PctOverThreshold
	})
	return report, nil
}

func scanFile(path string, xw *crosswalk.Table, acc map[string]*stationAccum) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var rows []*trips.NormalizedTrip
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return fmt.Errorf("unmarshaling %s: %w", path, err)
	}

	for _, t := range rows {
		if t.StartMatchType != pipeline.ProvenanceCrosswalk && t.StartMatchType != pipeline.ProvenanceGhost {
			continue
		}
		if t.StartLatRaw == nil || t.StartLonRaw == nil {
			continue
		}

		var entry *crosswalk.Entry
		var ok bool
		if t.StartMatchType == pipeline.ProvenanceGhost {
			entry, ok = xw.Lookup(t.StartStationID)
		} else {
			entry, ok = xw.LookupModern(t.StartStationID)
		}
		if !ok {
			continue
		}

		d := geo.DistanceHaversine(
			orb.Point{t.StartLon, t.StartLat},
			orb.Point{*t.StartLonRaw, *t.StartLatRaw},
		)

		a, seen := acc[entry.LegacyID]
		if !seen {
			a = &stationAccum{finding: StationFinding{
				LegacyID:      entry.LegacyID,
				LegacyName:    entry.LegacyName,
				LegacyLat:     entry.LegacyLat,
				LegacyLon:     entry.LegacyLon,
				CanonicalID:   t.StartStationID,
				CanonicalName: t.StartStationName,
				CanonicalLat:  t.StartLat,
				CanonicalLon:  t.StartLon,
				MatchType:     t.StartMatchType,
			}}
			acc[entry.LegacyID] = a
		}
		a.distances = append(a.distances, d)
	}
	return nil
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
