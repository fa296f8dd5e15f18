package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/citybikelab/stationlink/config"
	"github.com/citybikelab/stationlink/crosswalk"
	"github.com/citybikelab/stationlink/internal"
	"github.com/citybikelab/stationlink/schema"
	"github.com/citybikelab/stationlink/stations"
	"github.com/citybikelab/stationlink/trips"
)

// RunOptions narrows a pipeline run.
type RunOptions struct {
	Year  int  // only files whose name contains this year
	Limit int  // only the first N files
	Force bool // reprocess files whose output already exists
}

// Pipeline normalizes raw trip files against read-only reference snapshots.
type Pipeline struct {
	cfg      config.AppConfig
	resolver *Resolver
}

// New creates a pipeline over the canonical station index and the merged
// crosswalk. Both must stay unmodified for the lifetime of the pipeline:
// files processed against an inconsistent crosswalk would not reproduce.
func New(cfg config.AppConfig, idx *stations.Index, xw *crosswalk.Table) *Pipeline {
	return &Pipeline{cfg: cfg, resolver: NewResolver(idx, xw)}
}

// Run processes every raw file in rawDir into outDir and returns the run
// summary. A file that fails is logged and skipped; the run continues.
func (p *Pipeline) Run(rawDir, outDir string, opts RunOptions) (*RunSummary, error) {
	files, err := filepath.Glob(filepath.Join(rawDir, "*.csv"))
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
	if opts.Limit > 0 && len(files) > opts.Limit {
		files = files[:opts.Limit]
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no raw trip files in %s", rawDir)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	summary := &RunSummary{FilesTotal: len(files)}
	for i, path := range files {
		name := filepath.Base(path)
		outPath := filepath.Join(outDir, name)

		if !opts.Force {
			if _, err := os.Stat(outPath); err == nil {
				log.Printf("[%d/%d] %s (skipped, output exists)", i+1, len(files), name)
				summary.FilesSkipped++
				summary.FileStats = append(summary.FileStats, &FileStats{InputFile: name, Skipped: true})
				continue
			}
		}

		stats, err := p.ProcessFile(path, outPath)
		if err != nil {
			log.Printf("[%d/%d] %s failed: %v", i+1, len(files), name, err)
			summary.FilesFailed++
			summary.FileStats = append(summary.FileStats, &FileStats{InputFile: name, Error: err.Error()})
			continue
		}
		summary.FilesProcessed++
		summary.TotalRowsIn += stats.RowsIn
		summary.TotalRowsOut += stats.RowsOut
		summary.FileStats = append(summary.FileStats, stats)

		matched := stats.StationMatch[ProvenanceDirect] + stats.StationMatch[ProvenanceCrosswalk]
		denom := stats.RowsOut
		if denom == 0 {
			denom = 1
		}
		log.Printf("[%d/%d] %s: %d -> %d rows (%d dropped) | %.1f%% stations matched",
			i+1, len(files), name, stats.RowsIn, stats.RowsOut, stats.Dropped(),
			100*float64(matched)/float64(denom))
	}
	return summary, nil
}

// ProcessFile normalizes one raw file into outPath and returns its stats.
func (p *Pipeline) ProcessFile(path, outPath string) (*FileStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	kind := schema.Detect(header)
	if kind == schema.KindUnknown {
		return nil, fmt.Errorf("unknown schema")
	}
	layout, _ := schema.LayoutFor(kind)
	ex, err := trips.NewExtractor(layout, header)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	stats := newFileStats(name, string(kind))
	stats.ExpectedYear, stats.ExpectedMonth = ExpectedMonth(name)

	var out []*trips.NormalizedTrip
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.RowsIn++
			stats.RowsFiltered[ReasonParseError]++
			continue
		}
		stats.RowsIn++

		raw, err := ex.Row(rec)
		if err != nil {
			stats.RowsFiltered[ReasonParseError]++
			continue
		}

		if raw.HasStarted && stats.ExpectedYear != 0 {
			if raw.StartedAt.Year() == stats.ExpectedYear && int(raw.StartedAt.Month()) == stats.ExpectedMonth {
				stats.DateSanity.DatesInExpectedMonth++
			} else {
				stats.DateSanity.DatesOutsideExpectedMonth++
			}
		}

		if reason, ok := p.dropReason(&raw, stats.ExpectedYear, stats.ExpectedMonth); ok {
			stats.RowsFiltered[reason]++
			continue
		}

		start := p.resolver.Resolve(raw.StartID, raw.StartName, raw.StartLat, raw.StartLon)
		end := p.resolver.Resolve(raw.EndID, raw.EndName, raw.EndLat, raw.EndLon)
		stats.StationMatch[start.Provenance]++

		byValid, gValid, age := trips.Demographics(&raw, p.cfg.Demographics)
		out = append(out, &trips.NormalizedTrip{
			RideID:      raw.RideID,
			StartedAt:   internal.FormatTripTime(raw.StartedAt),
			EndedAt:     internal.FormatTripTime(raw.EndedAt),
			DurationSec: raw.DurationSec,

			StartStationID:   start.ID,
			StartStationName: start.Name,
			StartLat:         start.Lat,
			StartLon:         start.Lon,
			EndStationID:     end.ID,
			EndStationName:   end.Name,
			EndLat:           end.Lat,
			EndLon:           end.Lon,

			StartLatRaw: raw.StartLat,
			StartLonRaw: raw.StartLon,
			EndLatRaw:   raw.EndLat,
			EndLonRaw:   raw.EndLon,

			MemberCasual: raw.MemberCasual,
			RideableType: raw.RideableType,
			BikeID:       raw.BikeID,
			BirthYear:    raw.BirthYear,
			Gender:       raw.Gender,

			BirthYearValid: byValid,
			GenderValid:    gValid,
			AgeAtTrip:      age,

			SourceFile:     name,
			StartMatchType: start.Provenance,
			EndMatchType:   end.Provenance,
		})
	}
	stats.RowsOut = len(out)

	if err := writeNormalized(outPath, out); err != nil {
		return nil, err
	}
	return stats, nil
}

// dropReason applies the row filters in a fixed order and returns the first
// failing bucket, so every dropped row lands in exactly one bucket.
func (p *Pipeline) dropReason(t *trips.RawTrip, expYear, expMonth int) (string, bool) {
	if !t.HasStarted || !t.HasEnded {
		return ReasonInvalidTimestamp, true
	}
	if t.StartID == "" || t.EndID == "" {
		return ReasonMissingStation, true
	}
	if t.DurationSec < p.cfg.Filters.MinDurationSec {
		return ReasonDurationTooShort, true
	}
	if t.DurationSec > p.cfg.Filters.MaxDurationSec {
		return ReasonDurationTooLong, true
	}
	if expYear != 0 && (t.StartedAt.Year() != expYear || int(t.StartedAt.Month()) != expMonth) {
		return ReasonWrongMonth, true
	}
	if p.isTestStation(t.StartName) || p.isTestStation(t.EndName) {
		return ReasonTestStation, true
	}
	return "", false
}

func (p *Pipeline) isTestStation(name string) bool {
	if name == "" {
		return false
	}
	lower := strings.ToLower(name)
	for _, pattern := range p.cfg.Filters.TestStationPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

func writeNormalized(path string, rows []*trips.NormalizedTrip) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&rows, f)
}

var (
	expectedMonthRe = regexp.MustCompile(`(\d{4})(\d{2})-citibike`)
	anyYearMonthRe  = regexp.MustCompile(`(\d{4})(\d{2})`)
)

// ExpectedMonth extracts the year and month encoded in a trip filename,
// e.g. "201409-citibike-tripdata.csv" -> (2014, 9). Returns zeros when the
// name carries no recognizable stamp; the wrong-month check is then skipped.
func ExpectedMonth(filename string) (year, month int) {
	if m := expectedMonthRe.FindStringSubmatch(filename); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		return y, mo
	}
	if m := anyYearMonthRe.FindStringSubmatch(filename); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		if y >= 2013 && y <= 2030 && mo >= 1 && mo <= 12 {
			return y, mo
		}
	}
	return 0, 0
}
