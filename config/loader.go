package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default returns the configuration with every threshold at its tuned value.
func Default() AppConfig {
	return AppConfig{
		Matcher: MatcherConfig{
			MaxDistanceM:    150,
			MinNameScore:    60,
			Candidates:      5,
			MetersPerDegree: 85000,

			NameWeight:      0.7,
			ProximityWeight: 0.3,

			CoLocatedM:        20,
			NearM:             50,
			NearMinNameScore:  50,
			NearHighNameScore: 70,
			FarHighNameScore:  80,
		},
		Aggregate: AggregateConfig{
			MinTripCount:   10,
			MaxLegacyIDLen: 10,
			MinLat:         40.4,
			MaxLat:         41.0,
			MinLon:         -74.3,
			MaxLon:         -73.7,
		},
		Filters: FiltersConfig{
			MinDurationSec: 90,
			MaxDurationSec: 14400,
			TestStationPatterns: []string{
				"don't use", "dont use", "do not use",
				"nycbs depot", "nycbs test",
				"mobile 01", "mobile 02",
				"8d ops", "8d qc", "8d mobile",
				"gow tech", "tech shop", "ssp tech",
				"kiosk in a box", "mlswkiosk",
				"facility", "warehouse",
				"temp", ".temp",
				"deployment",
				"mtl-eco", "lab",
				"la metro", "demo",
			},
		},
		Demographics: DemographicsConfig{
			SentinelBirthYear:  1969,
			SentinelCutoffYear: 2018,
			MinAge:             10,
			MaxAge:             100,
		},
		Validator: ValidatorConfig{
			DistanceThresholdM: 200,
			OutlierPct:         5.0,
		},
		Paths: PathsConfig{
			RawDir:       "data/raw_csvs",
			ProcessedDir: "data/processed",
			ReferenceDir: "reference",
			LogsDir:      "logs",
		},
	}
}

// Load reads the YAML configuration at path, overlays it on the defaults and
// validates the result. A missing file is not an error: every knob has a
// default, so the tool runs unconfigured.
func Load(path string) (AppConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
