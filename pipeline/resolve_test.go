package pipeline

import (
	"testing"
)

func TestResolve(t *testing.T) {
	idx, xw := testResolver(t)
	r := NewResolver(idx, xw)

	lat, lon := 40.7500, -73.9700

	tests := []struct {
		name string
		id   string

		wantID         string
		wantName       string
		wantLat        float64
		wantLon        float64
		wantProvenance string
	}{
		{
			name:           "modern ID found in the station table",
			id:             modernPershing,
			wantID:         modernPershing,
			wantName:       "Pershing Square North",
			wantLat:        40.751873,
			wantLon:        -73.977706,
			wantProvenance: ProvenanceDirect,
		},
		{
			name:           "modern-shaped ID missing from the station table keeps raw values",
			id:             "deadbeef-0000-11e7-82f8-3863bb44ef7c",
			wantID:         "deadbeef-0000-11e7-82f8-3863bb44ef7c",
			wantName:       "Raw Station",
			wantLat:        lat,
			wantLon:        lon,
			wantProvenance: ProvenanceUnmatched,
		},
		{
			name:           "legacy ID mapped by the crosswalk",
			id:             "519",
			wantID:         modernPershing,
			wantName:       "Pershing Square North",
			wantLat:        40.751873,
			wantLon:        -73.977706,
			wantProvenance: ProvenanceCrosswalk,
		},
		{
			name:           "legacy ID kept as a ghost with denoised identity",
			id:             "830",
			wantID:         "830",
			wantName:       "Old Depot N",
			wantLat:        40.703,
			wantLon:        -73.992,
			wantProvenance: ProvenanceGhost,
		},
		{
			name:           "legacy ID with no crosswalk entry passes through verbatim",
			id:             "9999",
			wantID:         "9999",
			wantName:       "Raw Station",
			wantLat:        lat,
			wantLon:        lon,
			wantProvenance: ProvenanceUnmatched,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rawName := "Raw Station"
			if tt.id == "830" {
				rawName = "Old Depot"
			}
			res := r.Resolve(tt.id, rawName, &lat, &lon)

			if res.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", res.ID, tt.wantID)
			}
			if res.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", res.Name, tt.wantName)
			}
			if res.Lat != tt.wantLat || res.Lon != tt.wantLon {
				t.Errorf("coords = (%f, %f), want (%f, %f)", res.Lat, res.Lon, tt.wantLat, tt.wantLon)
			}
			if res.Provenance != tt.wantProvenance {
				t.Errorf("provenance = %q, want %q", res.Provenance, tt.wantProvenance)
			}
		})
	}
}

func TestResolve_NilCoords(t *testing.T) {
	idx, xw := testResolver(t)
	r := NewResolver(idx, xw)

	res := r.Resolve("9999", "Phantom Dock", nil, nil)
	if res.Provenance != ProvenanceUnmatched {
		t.Errorf("provenance = %q, want unmatched", res.Provenance)
	}
	if res.ID != "9999" || res.Name != "Phantom Dock" {
		t.Errorf("identity = %q/%q, want raw values kept", res.ID, res.Name)
	}
	if res.Lat != 0 || res.Lon != 0 {
		t.Errorf("coords = (%f, %f), want zero for absent raw coords", res.Lat, res.Lon)
	}
}
