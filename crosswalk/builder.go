package crosswalk

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/citybikelab/stationlink/config"
	"github.com/citybikelab/stationlink/match"
	"github.com/citybikelab/stationlink/schema"
	"github.com/citybikelab/stationlink/stations"
	"github.com/citybikelab/stationlink/trips"
)

// AuditStation is one entry of the low-confidence review list.
type AuditStation struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// AuditSummary is the human-review summary emitted alongside the crosswalk.
type AuditSummary struct {
	LegacyStationsFound int            `json:"legacy_stations_found"`
	Matched             int            `json:"matched"`
	MatchRatePct        float64        `json:"match_rate_pct"`
	ConfidenceBreakdown map[string]int `json:"confidence_breakdown"`
	GhostStations       int            `json:"ghost_stations"`
	GhostIDs            []string       `json:"ghost_ids"`
	LowConfidence       []AuditStation `json:"low_confidence_stations"`
	FilesScanned        int            `json:"files_scanned"`
	FilesSkipped        int            `json:"files_skipped"`
}

// Builder produces the full legacy-to-canonical mapping in one batch pass.
type Builder struct {
	cfg config.AppConfig
	idx *stations.Index
}

// NewBuilder creates a builder over the canonical station index.
func NewBuilder(cfg config.AppConfig, idx *stations.Index) *Builder {
	return &Builder{cfg: cfg, idx: idx}
}

// Build scans every raw trip file under rawDir, aggregates legacy station
// observations, matches each against the canonical set and returns one
// entry per legacy station plus the audit summary.
//
// A malformed file is logged and skipped; the build continues. An empty raw
// directory is an error: a crosswalk built from nothing would silently turn
// every legacy trip into an unmatched row downstream.
func (b *Builder) Build(rawDir string) ([]*Entry, *AuditSummary, error) {
	files, err := filepath.Glob(filepath.Join(rawDir, "*.csv"))
	if err != nil {
		return nil, nil, err
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no raw trip files in %s", rawDir)
	}

	agg := NewAggregator(b.cfg.Aggregate)
	skipped := 0
	for _, path := range files {
		if err := b.scanFile(path, agg); err != nil {
			log.Printf("skipping %s: %v", filepath.Base(path), err)
			skipped++
		}
	}

	observations := agg.Observations()
	log.Printf("found %d legacy stations across %d files", len(observations), len(files)-skipped)

	matcher := match.New(b.idx, b.cfg.Matcher)
	summary := &AuditSummary{
		LegacyStationsFound: len(observations),
		ConfidenceBreakdown: map[string]int{},
		GhostIDs:            []string{},
		LowConfidence:       []AuditStation{},
		FilesScanned:        len(files) - skipped,
		FilesSkipped:        skipped,
	}

	entries := make([]*Entry, 0, len(observations))
	for _, obs := range observations {
		entry := &Entry{
			LegacyID:        obs.ID,
			LegacyName:      obs.Name,
			LegacyLat:       obs.Lat,
			LegacyLon:       obs.Lon,
			TripCount:       obs.TripCount,
			MatchConfidence: string(match.ConfidenceNone),
		}
		if res, ok := matcher.Match(obs); ok {
			entry.ModernID = res.ModernID
			entry.ModernName = res.ModernName
			entry.MatchScore = round1(res.Score)
			entry.MatchConfidence = string(res.Confidence)
			entry.MatchDistanceM = round1(res.DistanceM)
			summary.Matched++
			summary.ConfidenceBreakdown[string(res.Confidence)]++
			if res.Confidence == match.ConfidenceLow {
				summary.LowConfidence = append(summary.LowConfidence, AuditStation{
					ID:    obs.ID,
					Name:  obs.Name,
					Score: entry.MatchScore,
				})
			}
		} else {
			summary.GhostStations++
			summary.GhostIDs = append(summary.GhostIDs, obs.ID)
		}
		entries = append(entries, entry)
	}

	if len(entries) > 0 {
		summary.MatchRatePct = round1(100 * float64(summary.Matched) / float64(len(entries)))
	}
	return entries, summary, nil
}

// scanFile feeds every start-endpoint observation of one raw file into the
// aggregator. Rows that fail to parse are dropped silently here; the
// aggregator's support threshold already guards against stray garbage.
func (b *Builder) scanFile(path string, agg *Aggregator) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	kind := schema.Detect(header)
	if kind == schema.KindUnknown {
		return fmt.Errorf("unknown schema")
	}
	layout, _ := schema.LayoutFor(kind)
	ex, err := trips.NewExtractor(layout, header)
	if err != nil {
		return err
	}

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		t, err := ex.Row(rec)
		if err != nil {
			continue
		}
		if t.StartID == "" || t.StartLat == nil || t.StartLon == nil {
			continue
		}
		agg.Add(t.StartID, t.StartName, *t.StartLat, *t.StartLon)
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
