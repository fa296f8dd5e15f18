package trips

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/citybikelab/stationlink/internal"
	"github.com/citybikelab/stationlink/schema"
)

// Extractor reads rows of one trip file through its era layout.
type Extractor struct {
	layout schema.Layout
	col    map[string]int
}

// NewExtractor resolves the layout's column names against the file header.
// Columns the layout names but the header lacks are an error; optional
// fields (empty layout entries) are simply absent.
func NewExtractor(layout schema.Layout, header []string) (*Extractor, error) {
	idx := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}

	col := map[string]int{}
	required := map[string]string{
		"start_time": layout.StartTime,
		"end_time":   layout.EndTime,
		"start_id":   layout.StartID,
		"start_name": layout.StartName,
		"end_id":     layout.EndID,
		"end_name":   layout.EndName,
	}
	for field, name := range required {
		i := idx(name)
		if i < 0 {
			return nil, fmt.Errorf("layout %s: missing column %q (%s)", layout.Kind, name, field)
		}
		col[field] = i
	}
	optional := map[string]string{
		"ride_id":       layout.RideID,
		"rideable_type": layout.RideableType,
		"duration":      layout.Duration,
		"start_lat":     layout.StartLat,
		"start_lon":     layout.StartLon,
		"end_lat":       layout.EndLat,
		"end_lon":       layout.EndLon,
		"user_type":     layout.UserType,
		"bike_id":       layout.BikeID,
		"birth_year":    layout.BirthYear,
		"gender":        layout.Gender,
	}
	for field, name := range optional {
		if name == "" {
			continue
		}
		if i := idx(name); i >= 0 {
			col[field] = i
		}
	}
	return &Extractor{layout: layout, col: col}, nil
}

func (e *Extractor) field(rec []string, name string) string {
	i, ok := e.col[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// Row parses one record into a RawTrip. Unparseable timestamps leave the
// corresponding Has flag false rather than failing the row; the pipeline's
// filters decide what to do with it.
func (e *Extractor) Row(rec []string) (RawTrip, error) {
	t := RawTrip{
		RideID:       e.field(rec, "ride_id"),
		RideableType: e.field(rec, "rideable_type"),
		StartID:      CanonicalLegacyID(e.field(rec, "start_id")),
		StartName:    e.field(rec, "start_name"),
		EndID:        CanonicalLegacyID(e.field(rec, "end_id")),
		EndName:      e.field(rec, "end_name"),
		BikeID:       e.field(rec, "bike_id"),
		MemberCasual: normalizeRiderType(e.field(rec, "user_type")),
	}

	t.StartedAt, t.HasStarted = internal.ParseTripTime(e.field(rec, "start_time"))
	t.EndedAt, t.HasEnded = internal.ParseTripTime(e.field(rec, "end_time"))

	if dur := e.field(rec, "duration"); dur != "" {
		d, err := strconv.Atoi(dur)
		if err != nil {
			return t, fmt.Errorf("bad duration %q: %w", dur, err)
		}
		t.DurationSec = d
	} else if t.HasStarted && t.HasEnded {
		t.DurationSec = int(t.EndedAt.Sub(t.StartedAt).Seconds())
	}

	t.StartLat = parseCoord(e.field(rec, "start_lat"))
	t.StartLon = parseCoord(e.field(rec, "start_lon"))
	t.EndLat = parseCoord(e.field(rec, "end_lat"))
	t.EndLon = parseCoord(e.field(rec, "end_lon"))

	t.BirthYear = parseOptionalInt(e.field(rec, "birth_year"))
	t.Gender = parseOptionalInt(e.field(rec, "gender"))

	// Legacy eras have no ride identifier; derive a stable one so re-runs
	// produce identical output.
	if t.RideID == "" {
		t.RideID = SyntheticRideID(e.field(rec, "start_time"), t.StartID, t.BikeID)
	}
	return t, nil
}

// CanonicalLegacyID strips the ".0" suffix that float-typed CSV exports leave
// on integer station IDs ("519.0" and "519" are the same station).
func CanonicalLegacyID(id string) string {
	return strings.TrimSuffix(id, ".0")
}

// SyntheticRideID derives a deterministic ride ID for legacy rows from the
// raw start time, start station and bike ID.
func SyntheticRideID(startTime, startID, bikeID string) string {
	sum := md5.Sum([]byte(startTime + startID + bikeID))
	return hex.EncodeToString(sum[:])
}

// normalizeRiderType maps the legacy two-value rider scheme onto the modern
// one. Unrecognized values pass through unchanged.
func normalizeRiderType(v string) string {
	switch v {
	case "Subscriber":
		return "member"
	case "Customer":
		return "casual"
	}
	return v
}

func parseCoord(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseOptionalInt(s string) *int {
	if s == "" {
		return nil
	}
	// Some legacy files carry birth years as floats ("1985.0").
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	v := int(f)
	return &v
}
