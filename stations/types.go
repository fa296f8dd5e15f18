package stations

// Station is one row of the canonical station table exported from the live
// station feed. Keyed uniquely by ID.
type Station struct {
	ID        string  `csv:"station_id"`
	ShortName string  `csv:"short_name"`
	Name      string  `csv:"name"`
	Lat       float64 `csv:"lat"`
	Lon       float64 `csv:"lon"`
	Capacity  int     `csv:"capacity"`
	RegionID  string  `csv:"region_id"`
}
