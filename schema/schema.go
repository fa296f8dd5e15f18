package schema

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Kind identifies which era layout a trip file uses.
type Kind string

const (
	KindModern      Kind = "modern"
	KindLegacy      Kind = "legacy"
	KindLegacyTitle Kind = "legacy_titlecase"
	KindUnknown     Kind = "unknown"
)

// Layout maps logical trip fields to the column names of one era.
// An empty column name means the era does not carry that field.
type Layout struct {
	Kind Kind

	RideID       string
	RideableType string
	StartTime    string
	EndTime      string
	Duration     string
	StartID      string
	StartName    string
	StartLat     string
	StartLon     string
	EndID        string
	EndName      string
	EndLat       string
	EndLon       string
	UserType     string
	BikeID       string
	BirthYear    string
	Gender       string
}

var layouts = map[Kind]Layout{
	KindModern: {
		Kind:         KindModern,
		RideID:       "ride_id",
		RideableType: "rideable_type",
		StartTime:    "started_at",
		EndTime:      "ended_at",
		StartID:      "start_station_id",
		StartName:    "start_station_name",
		StartLat:     "start_lat",
		StartLon:     "start_lng",
		EndID:        "end_station_id",
		EndName:      "end_station_name",
		EndLat:       "end_lat",
		EndLon:       "end_lng",
		UserType:     "member_casual",
	},
	KindLegacy: {
		Kind:      KindLegacy,
		StartTime: "starttime",
		EndTime:   "stoptime",
		Duration:  "tripduration",
		StartID:   "start station id",
		StartName: "start station name",
		StartLat:  "start station latitude",
		StartLon:  "start station longitude",
		EndID:     "end station id",
		EndName:   "end station name",
		EndLat:    "end station latitude",
		EndLon:    "end station longitude",
		UserType:  "usertype",
		BikeID:    "bikeid",
		BirthYear: "birth year",
		Gender:    "gender",
	},
	KindLegacyTitle: {
		Kind:      KindLegacyTitle,
		StartTime: "Start Time",
		EndTime:   "Stop Time",
		Duration:  "Trip Duration",
		StartID:   "Start Station ID",
		StartName: "Start Station Name",
		StartLat:  "Start Station Latitude",
		StartLon:  "Start Station Longitude",
		EndID:     "End Station ID",
		EndName:   "End Station Name",
		EndLat:    "End Station Latitude",
		EndLon:    "End Station Longitude",
		UserType:  "User Type",
		BikeID:    "Bike ID",
		BirthYear: "Birth Year",
		Gender:    "Gender",
	},
}

// LayoutFor returns the declarative layout for a detected kind.
func LayoutFor(kind Kind) (Layout, bool) {
	l, ok := layouts[kind]
	return l, ok
}

// Detect classifies a header row. The title-case check is case-sensitive on
// purpose: "Trip Duration" vs "tripduration" is exactly what separates the
// two legacy dialects.
func Detect(header []string) Kind {
	hasExact := func(col string) bool {
		for _, h := range header {
			if strings.TrimSpace(h) == col {
				return true
			}
		}
		return false
	}
	hasFold := func(col string) bool {
		for _, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return true
			}
		}
		return false
	}

	if hasFold("ride_id") || hasFold("member_casual") {
		return KindModern
	}
	if hasExact("Trip Duration") {
		return KindLegacyTitle
	}
	if hasFold("tripduration") {
		return KindLegacy
	}
	return KindUnknown
}

// DetectFile reads only the header line of a trip file and classifies it.
func DetectFile(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return KindUnknown, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return KindUnknown, fmt.Errorf("reading header of %s: %w", path, err)
	}
	return Detect(header), nil
}
