package stations

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// LoadCSV reads the canonical station table. The file is a precondition for
// both the crosswalk builder and the resolution pipeline, so a missing file
// is an error, not an empty table.
func LoadCSV(path string) ([]*Station, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening station table: %w", err)
	}
	defer f.Close()

	var list []*Station
	if err := gocsv.UnmarshalFile(f, &list); err != nil {
		return nil, fmt.Errorf("unmarshaling station table %s: %w", path, err)
	}

	seen := map[string]bool{}
	for _, s := range list {
		if s.ID == "" {
			return nil, fmt.Errorf("empty station_id in %s", path)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("repeated station_id '%s' in %s", s.ID, path)
		}
		seen[s.ID] = true
	}
	return list, nil
}
