// Package runlog persists timestamped JSON run artifacts: crosswalk build
// audits, pipeline run summaries and validation reports. The logs are for
// humans reviewing pipeline health; no downstream program consumes them.
package runlog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/citybikelab/stationlink/internal"
)

// Record wraps a payload with run identity and timing metadata.
type Record struct {
	RunID     string `json:"run_id"`
	Timestamp string `json:"timestamp"`
	Payload   any    `json:"payload"`
}

// NewRunID returns a fresh identifier for a run.
func NewRunID() string {
	return uuid.NewString()
}

// Write persists a payload as <dir>/<prefix>_<timestamp>.json and returns
// the path written.
func Write(dir, prefix, runID string, payload any) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	rec := Record{
		RunID:     runID,
		Timestamp: internal.Iso8601Now(),
		Payload:   payload,
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, prefix+"_"+internal.TimestampStamp(time.Now())+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
