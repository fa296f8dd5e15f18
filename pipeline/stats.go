package pipeline

// Drop-reason bucket names. Every dropped row is counted under exactly one
// bucket, so the buckets sum to rows_in - rows_out.
const (
	ReasonParseError       = "parse_error"
	ReasonInvalidTimestamp = "invalid_timestamp"
	ReasonMissingStation   = "missing_station"
	ReasonDurationTooShort = "duration_too_short"
	ReasonDurationTooLong  = "duration_too_long"
	ReasonWrongMonth       = "wrong_month"
	ReasonTestStation      = "test_station"
)

// DateSanity counts how rows relate to the month encoded in the filename.
type DateSanity struct {
	DatesInExpectedMonth      int `json:"dates_in_expected_month"`
	DatesOutsideExpectedMonth int `json:"dates_outside_expected_month"`
}

// FileStats is the per-file accounting the run log records.
type FileStats struct {
	InputFile     string         `json:"input_file"`
	Schema        string         `json:"schema"`
	ExpectedYear  int            `json:"expected_year,omitempty"`
	ExpectedMonth int            `json:"expected_month,omitempty"`
	RowsIn        int            `json:"rows_in"`
	RowsOut       int            `json:"rows_out"`
	RowsFiltered  map[string]int `json:"rows_filtered"`
	StationMatch  map[string]int `json:"station_match"`
	DateSanity    DateSanity     `json:"date_sanity"`
	Skipped       bool           `json:"skipped,omitempty"`
	Error         string         `json:"error,omitempty"`
}

func newFileStats(name string, kind string) *FileStats {
	return &FileStats{
		InputFile: name,
		Schema:    kind,
		RowsFiltered: map[string]int{
			ReasonParseError:       0,
			ReasonInvalidTimestamp: 0,
			ReasonMissingStation:   0,
			ReasonDurationTooShort: 0,
			ReasonDurationTooLong:  0,
			ReasonWrongMonth:       0,
			ReasonTestStation:      0,
		},
		StationMatch: map[string]int{
			ProvenanceDirect:    0,
			ProvenanceCrosswalk: 0,
			ProvenanceGhost:     0,
			ProvenanceUnmatched: 0,
		},
	}
}

// Dropped returns the total number of filtered rows.
func (s *FileStats) Dropped() int {
	n := 0
	for _, c := range s.RowsFiltered {
		n += c
	}
	return n
}

// RunSummary aggregates a whole pipeline run for the run log.
type RunSummary struct {
	FilesTotal     int          `json:"files_total"`
	FilesProcessed int          `json:"files_processed"`
	FilesSkipped   int          `json:"files_skipped"`
	FilesFailed    int          `json:"files_failed"`
	TotalRowsIn    int          `json:"total_rows_in"`
	TotalRowsOut   int          `json:"total_rows_out"`
	FileStats      []*FileStats `json:"file_stats"`
}
