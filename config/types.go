package config

// MatcherConfig holds the spatial/textual matching thresholds.
//
// The distance tiers and name-score cutoffs were tuned empirically against
// twelve years of NYC trip data; treat them as configuration, not constants.
type MatcherConfig struct {
	MaxDistanceM    float64 `yaml:"maxDistanceM" validate:"gt=0"`
	MinNameScore    int     `yaml:"minNameScore" validate:"gte=0,lte=100"`
	Candidates      int     `yaml:"candidates" validate:"gt=0"`
	MetersPerDegree float64 `yaml:"metersPerDegree" validate:"gt=0"`

	NameWeight      float64 `yaml:"nameWeight" validate:"gte=0,lte=1"`
	ProximityWeight float64 `yaml:"proximityWeight" validate:"gte=0,lte=1"`

	CoLocatedM        float64 `yaml:"coLocatedM" validate:"gt=0"`
	NearM             float64 `yaml:"nearM" validate:"gt=0"`
	NearMinNameScore  int     `yaml:"nearMinNameScore" validate:"gte=0,lte=100"`
	NearHighNameScore int     `yaml:"nearHighNameScore" validate:"gte=0,lte=100"`
	FarHighNameScore  int     `yaml:"farHighNameScore" validate:"gte=0,lte=100"`
}

// AggregateConfig controls how raw trip observations are collapsed into one
// record per legacy station before matching.
type AggregateConfig struct {
	MinTripCount   int `yaml:"minTripCount" validate:"gte=0"`
	MaxLegacyIDLen int `yaml:"maxLegacyIDLen" validate:"gt=0"`

	// Service-area bounding box; observations outside it are GPS garbage.
	MinLat float64 `yaml:"minLat"`
	MaxLat float64 `yaml:"maxLat"`
	MinLon float64 `yaml:"minLon"`
	MaxLon float64 `yaml:"maxLon"`
}

// FiltersConfig holds the row-level quality filters.
type FiltersConfig struct {
	MinDurationSec int `yaml:"minDurationSec" validate:"gte=0"`
	MaxDurationSec int `yaml:"maxDurationSec" validate:"gt=0"`

	// Substring denylist of depot/test/internal station names, matched
	// case-insensitively against both endpoints.
	TestStationPatterns []string `yaml:"testStationPatterns"`
}

// DemographicsConfig holds the sentinel rules for the legacy-era
// birth-year and gender fields.
type DemographicsConfig struct {
	SentinelBirthYear  int `yaml:"sentinelBirthYear"`
	SentinelCutoffYear int `yaml:"sentinelCutoffYear"`
	MinAge             int `yaml:"minAge" validate:"gte=0"`
	MaxAge             int `yaml:"maxAge" validate:"gt=0"`
}

// ValidatorConfig holds the mapping-validator thresholds.
type ValidatorConfig struct {
	DistanceThresholdM float64 `yaml:"distanceThresholdM" validate:"gt=0"`
	OutlierPct         float64 `yaml:"outlierPct" validate:"gte=0,lte=100"`
}

// PathsConfig holds default directories; each CLI command can override them.
type PathsConfig struct {
	RawDir       string `yaml:"rawDir"`
	ProcessedDir string `yaml:"processedDir"`
	ReferenceDir string `yaml:"referenceDir"`
	LogsDir      string `yaml:"logsDir"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Matcher      MatcherConfig      `yaml:"matcher"`
	Aggregate    AggregateConfig    `yaml:"aggregate"`
	Filters      FiltersConfig      `yaml:"filters"`
	Demographics DemographicsConfig `yaml:"demographics"`
	Validator    ValidatorConfig    `yaml:"validator"`
	Paths        PathsConfig        `yaml:"paths"`
}
