package validate

import (
	"fmt"
	"io"
)

// PrintReport writes the human-readable validation report. Only the two
// flagged categories are listed in detail; healthy stations appear as a
// count.
func PrintReport(w io.Writer, r *Report) {
	rule := "============================================================"
	thin := "------------------------------------------------------------"

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "STATION MAPPING VALIDATION REPORT")
	if r.Year != 0 {
		fmt.Fprintf(w, "Year: %d\n", r.Year)
	}
	fmt.Fprintln(w, rule)

	fmt.Fprintf(w, "\nStations analyzed: %d\n", r.Summary.TotalStationsAnalyzed)
	fmt.Fprintf(w, "  Good mappings: %d\n", r.Summary.GoodMappings)
	fmt.Fprintf(w, "  Suspicious mappings (likely wrong): %d\n", r.Summary.SuspiciousMappings)
	fmt.Fprintf(w, "  Bad raw data (mapping OK, some trips off): %d\n", r.Summary.BadDataStations)

	if len(r.SuspiciousMappings) > 0 {
		fmt.Fprintf(w, "\n%s\n", thin)
		fmt.Fprintf(w, "SUSPICIOUS MAPPINGS (median distance > %.0fm)\n", r.DistanceThresholdM)
		fmt.Fprintln(w, "These may be incorrect mappings - review manually:")
		fmt.Fprintln(w, thin)
		for i, s := range r.SuspiciousMappings {
			if i == 20 {
				break
			}
			fmt.Fprintf(w, "\n  Legacy: %s - %s\n", s.LegacyID, s.LegacyName)
			fmt.Fprintf(w, "  Mapped to: %s\n", s.CanonicalName)
			fmt.Fprintf(w, "  Trips: %d | Median dist: %.0fm | Match: %s\n", s.TripCount, s.MedianDistanceM, s.MatchType)
			fmt.Fprintf(w, "  Legacy coords: (%.6f, %.6f)\n", s.LegacyLat, s.LegacyLon)
			fmt.Fprintf(w, "  Canon coords:  (%.6f, %.6f)\n", s.CanonicalLat, s.CanonicalLon)
		}
	}

	if len(r.BadDataStations) > 0 {
		fmt.Fprintf(w, "\n%s\n", thin)
		fmt.Fprintln(w, "BAD RAW DATA (mapping OK, but some trips have wrong coords)")
		fmt.Fprintln(w, thin)
		for i, s := range r.BadDataStations {
			if i == 10 {
				break
			}
			fmt.Fprintf(w, "\n  %s - %s\n", s.LegacyID, s.LegacyName)
			fmt.Fprintf(w, "  Trips: %d | %.1f%% over threshold\n", s.TripCount, s.PctOverThreshold)
		}
	}

	fmt.Fprintf(w, "\n%s\n", rule)
}
