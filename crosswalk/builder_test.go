package crosswalk

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/citybikelab/stationlink/config"
	"github.com/citybikelab/stationlink/match"
	"github.com/citybikelab/stationlink/stations"
)

const legacyHeader = `"tripduration","starttime","stoptime","start station id","start station name","start station latitude","start station longitude","end station id","end station name","end station latitude","end station longitude","bikeid","usertype","birth year","gender"`

func legacyRow(startID, startName string, lat, lon float64) string {
	return fmt.Sprintf(`600,"2014-09-01 08:00:00","2014-09-01 08:10:00","%s","%s",%f,%f,"72","W 52 St & 11 Ave",40.7672,-73.9939,"15822","Subscriber","1985","1"`,
		startID, startName, lat, lon)
}

func TestBuilder_Build(t *testing.T) {
	dir := t.TempDir()

	var rows []string
	rows = append(rows, legacyHeader)
	// 12 trips from a station co-located with a canonical one.
	for i := 0; i < 12; i++ {
		rows = append(rows, legacyRow("519", "Pershing Square North", 40.7519, -73.9777))
	}
	// 12 trips from a station nowhere near any canonical station: a ghost.
	for i := 0; i < 12; i++ {
		rows = append(rows, legacyRow("830", "Old Fulton St", 40.7030, -73.9920))
	}
	// Only 4 trips: below support, no crosswalk entry at all.
	for i := 0; i < 4; i++ {
		rows = append(rows, legacyRow("9999", "Phantom Dock", 40.7500, -73.9800))
	}
	raw := filepath.Join(dir, "201409-citibike-tripdata.csv")
	if err := os.WriteFile(raw, []byte(strings.Join(rows, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// A malformed file must be skipped, not abort the build.
	if err := os.WriteFile(filepath.Join(dir, "garbage.csv"), []byte("what,is\nthis"), 0o644); err != nil {
		t.Fatal(err)
	}

	idx := stations.NewIndex([]*stations.Station{
		{ID: "66db2e9a", Name: "Pershing Square North", Lat: 40.75188, Lon: -73.9777},
	})

	entries, summary, err := NewBuilder(config.Default(), idx).Build(dir)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (support threshold excludes 9999)", len(entries))
	}
	byID := map[string]*Entry{}
	for _, e := range entries {
		byID[e.LegacyID] = e
	}
	if _, ok := byID["9999"]; ok {
		t.Error("station with 4 trips must have no crosswalk entry")
	}

	matched := byID["519"]
	if matched == nil || matched.ModernID != "66db2e9a" {
		t.Fatalf("station 519 not matched: %+v", matched)
	}
	if matched.MatchConfidence != string(match.ConfidenceHigh) {
		t.Errorf("confidence = %s, want high for a co-located station", matched.MatchConfidence)
	}
	if matched.TripCount != 12 {
		t.Errorf("trip count = %d, want 12", matched.TripCount)
	}

	ghost := byID["830"]
	if ghost == nil || !ghost.IsGhost() {
		t.Fatalf("station 830 should be a ghost: %+v", ghost)
	}
	if ghost.MatchConfidence != string(match.ConfidenceNone) {
		t.Errorf("ghost confidence = %s, want none", ghost.MatchConfidence)
	}

	if summary.Matched != 1 || summary.GhostStations != 1 {
		t.Errorf("summary matched=%d ghosts=%d, want 1 and 1", summary.Matched, summary.GhostStations)
	}
	if summary.FilesSkipped != 1 {
		t.Errorf("files skipped = %d, want the malformed file counted", summary.FilesSkipped)
	}
	if len(summary.GhostIDs) != 1 || summary.GhostIDs[0] != "830" {
		t.Errorf("ghost ids = %v, want [830]", summary.GhostIDs)
	}
}

func TestBuilder_EmptyRawDirFails(t *testing.T) {
	idx := stations.NewIndex(nil)
	if _, _, err := NewBuilder(config.Default(), idx).Build(t.TempDir()); err == nil {
		t.Fatal("expected an error for an empty raw directory")
	}
}
