package trips

import "time"

// RawTrip is one parsed trip row before station resolution and filtering.
// Pointer fields are absent in some eras.
type RawTrip struct {
	RideID       string
	RideableType string

	StartedAt   time.Time
	EndedAt     time.Time
	HasStarted  bool
	HasEnded    bool
	DurationSec int

	StartID   string
	StartName string
	StartLat  *float64
	StartLon  *float64

	EndID   string
	EndName string
	EndLat  *float64
	EndLon  *float64

	MemberCasual string
	BikeID       string
	BirthYear    *int
	Gender       *int
}

// NormalizedTrip is one row of normalized pipeline output.
//
// Raw endpoint coordinates are preserved alongside the canonical ones so the
// mapping validator can re-audit resolution decisions later. The match-type
// columns record how each endpoint was resolved: direct, crosswalk, ghost
// or unmatched.
type NormalizedTrip struct {
	RideID      string `csv:"ride_id"`
	StartedAt   string `csv:"started_at"`
	EndedAt     string `csv:"ended_at"`
	DurationSec int    `csv:"duration_sec"`

	StartStationID   string  `csv:"start_station_id"`
	StartStationName string  `csv:"start_station_name"`
	StartLat         float64 `csv:"start_lat"`
	StartLon         float64 `csv:"start_lon"`
	EndStationID     string  `csv:"end_station_id"`
	EndStationName   string  `csv:"end_station_name"`
	EndLat           float64 `csv:"end_lat"`
	EndLon           float64 `csv:"end_lon"`

	StartLatRaw *float64 `csv:"start_lat_raw"`
	StartLonRaw *float64 `csv:"start_lon_raw"`
	EndLatRaw   *float64 `csv:"end_lat_raw"`
	EndLonRaw   *float64 `csv:"end_lon_raw"`

	MemberCasual string `csv:"member_casual"`
	RideableType string `csv:"rideable_type"`
	BikeID       string `csv:"bike_id"`
	BirthYear    *int   `csv:"birth_year"`
	Gender       *int   `csv:"gender"`

	BirthYearValid *bool `csv:"birth_year_valid"`
	GenderValid    *bool `csv:"gender_valid"`
	AgeAtTrip      *int  `csv:"age_at_trip"`

	SourceFile     string `csv:"source_file"`
	StartMatchType string `csv:"start_match_type"`
	EndMatchType   string `csv:"end_match_type"`
}
