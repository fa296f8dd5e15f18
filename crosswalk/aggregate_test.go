package crosswalk

import (
	"testing"

	"github.com/citybikelab/stationlink/config"
)

func TestAggregator_RobustStats(t *testing.T) {
	cfg := config.Default().Aggregate
	cfg.MinTripCount = 3
	agg := NewAggregator(cfg)

	// Nine clean observations and one corrupted name plus one GPS outlier
	// inside the bounding box; mode and median must shrug both off.
	for i := 0; i < 9; i++ {
		agg.Add("519", "Pershing Square North", 40.7519, -73.9777)
	}
	agg.Add("519", "Pershing Sq N ???", 40.7619, -73.9777)

	obs := agg.Observations()
	if len(obs) != 1 {
		t.Fatalf("got %d observations, want 1", len(obs))
	}
	if obs[0].Name != "Pershing Square North" {
		t.Errorf("name = %q, want the mode", obs[0].Name)
	}
	if obs[0].Lat != 40.7519 {
		t.Errorf("lat = %v, want the median 40.7519", obs[0].Lat)
	}
	if obs[0].TripCount != 10 {
		t.Errorf("trip count = %d, want 10", obs[0].TripCount)
	}
}

func TestAggregator_SupportThreshold(t *testing.T) {
	// A legacy station with only 4 observed trips is excluded entirely:
	// no crosswalk entry is produced for it.
	agg := NewAggregator(config.Default().Aggregate)
	for i := 0; i < 4; i++ {
		agg.Add("9999", "Phantom Dock", 40.75, -73.98)
	}
	if obs := agg.Observations(); len(obs) != 0 {
		t.Fatalf("got %d observations, want 0 below support threshold", len(obs))
	}
}

func TestAggregator_RejectsModernAndOutOfBounds(t *testing.T) {
	cfg := config.Default().Aggregate
	cfg.MinTripCount = 1
	agg := NewAggregator(cfg)

	agg.Add("66db2e9a-0aca-11e7", "Modern UUID", 40.75, -73.98) // separator => modern space
	agg.Add("12345678901", "Too Long", 40.75, -73.98)           // exceeds legacy length bound
	agg.Add("519", "Jersey Outlier", 39.0, -73.98)              // outside service area
	agg.Add("520", "W 52 St & 11 Ave", 40.7672, -73.9939)

	obs := agg.Observations()
	if len(obs) != 1 || obs[0].ID != "520" {
		t.Fatalf("got %+v, want only station 520", obs)
	}
}

func TestAggregator_DeterministicOrder(t *testing.T) {
	cfg := config.Default().Aggregate
	cfg.MinTripCount = 1
	agg := NewAggregator(cfg)
	for i := 0; i < 5; i++ {
		agg.Add("72", "W 52 St & 11 Ave", 40.7672, -73.9939)
	}
	for i := 0; i < 8; i++ {
		agg.Add("79", "Franklin St & W Broadway", 40.7192, -74.0067)
	}

	obs := agg.Observations()
	if len(obs) != 2 || obs[0].ID != "79" || obs[1].ID != "72" {
		t.Fatalf("observations not ordered by trip count desc: %+v", obs)
	}
}

func TestIsLegacyID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"519", true},
		{"519.0", true}, // canonicalized upstream, still short
		{"66db2e9a-0aca-11e7-82f3", false},
		{"", false},
		{"1234567890", false},
	}
	for _, tt := range tests {
		if got := IsLegacyID(tt.id, 10); got != tt.want {
			t.Errorf("IsLegacyID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
