package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/citybikelab/stationlink/config"
	"github.com/citybikelab/stationlink/crosswalk"
	"github.com/citybikelab/stationlink/internal"
	"github.com/citybikelab/stationlink/pipeline"
	"github.com/citybikelab/stationlink/runlog"
	"github.com/citybikelab/stationlink/stations"
	"github.com/citybikelab/stationlink/validate"
)

func main() {
	var (
		command    = flag.String("cmd", "", "Command to run: build, run, validate")
		configPath = flag.String("config", "config.yml", "Path to YAML config (missing file uses defaults)")

		rawDir       = flag.String("raw", "", "Directory with raw trip CSVs (default from config)")
		stationsPath = flag.String("stations", "", "Canonical station CSV (default <reference>/current_stations.csv)")
		referenceDir = flag.String("reference", "", "Directory with reference tables (default from config)")
		outDir       = flag.String("out", "", "Directory for normalized output (default from config)")
		processedDir = flag.String("processed", "", "Directory with normalized CSVs to validate (default from config)")
		logsDir      = flag.String("logs", "", "Directory for run logs (default from config)")

		year  = flag.Int("year", 0, "Only files from this year")
		limit = flag.Int("limit", 0, "Process only the first N files")
		force = flag.Bool("force", false, "Reprocess files even if output already exists")

		threshold  = flag.Float64("threshold", 0, "Validator distance threshold in meters (default from config)")
		outlierPct = flag.Float64("outlier-pct", 0, "Validator outlier percentage threshold (default from config)")
	)
	flag.Parse()

	internal.InitLogging()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	applyDefaults(&cfg, rawDir, referenceDir, outDir, processedDir, logsDir, stationsPath, threshold, outlierPct)

	switch *command {
	case "build":
		err = runBuild(cfg, *rawDir, *stationsPath, *referenceDir, *logsDir)
	case "run":
		err = runPipeline(cfg, *rawDir, *outDir, *referenceDir, *logsDir, pipeline.RunOptions{Year: *year, Limit: *limit, Force: *force}, *threshold, *outlierPct)
	case "validate":
		err = runValidate(*processedDir, *referenceDir, *logsDir, validate.Options{Year: *year, DistanceThresholdM: *threshold, OutlierPct: *outlierPct})
	default:
		fmt.Fprintln(os.Stderr, "usage: stationlink -cmd build|run|validate [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s failed: %v", *command, err)
	}
}

func applyDefaults(cfg *config.AppConfig, rawDir, referenceDir, outDir, processedDir, logsDir, stationsPath *string, threshold, outlierPct *float64) {
	if *rawDir == "" {
		*rawDir = cfg.Paths.RawDir
	}
	if *referenceDir == "" {
		*referenceDir = cfg.Paths.ReferenceDir
	}
	if *outDir == "" {
		*outDir = cfg.Paths.ProcessedDir
	}
	if *processedDir == "" {
		*processedDir = cfg.Paths.ProcessedDir
	}
	if *logsDir == "" {
		*logsDir = cfg.Paths.LogsDir
	}
	if *stationsPath == "" {
		*stationsPath = filepath.Join(*referenceDir, "current_stations.csv")
	}
	if *threshold == 0 {
		*threshold = cfg.Validator.DistanceThresholdM
	}
	if *outlierPct == 0 {
		*outlierPct = cfg.Validator.OutlierPct
	}
}

// runBuild builds the crosswalk: aggregate legacy stations from the raw
// files, match against the canonical set, persist crosswalk + override
// scaffold + audit log.
func runBuild(cfg config.AppConfig, rawDir, stationsPath, referenceDir, logsDir string) error {
	list, err := stations.LoadCSV(stationsPath)
	if err != nil {
		return fmt.Errorf("canonical station table is required before matching: %w", err)
	}
	idx := stations.NewIndex(list)
	log.Printf("loaded %d canonical stations from %s", idx.Len(), stationsPath)

	entries, summary, err := crosswalk.NewBuilder(cfg, idx).Build(rawDir)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(referenceDir, 0o755); err != nil {
		return err
	}
	crosswalkPath := filepath.Join(referenceDir, "station_crosswalk.csv")
	if err := crosswalk.Save(crosswalkPath, entries); err != nil {
		return fmt.Errorf("saving crosswalk: %w", err)
	}
	log.Printf("saved crosswalk to %s", crosswalkPath)

	overridePath := filepath.Join(referenceDir, "manual_overrides.csv")
	created, err := crosswalk.EnsureOverrideScaffold(overridePath)
	if err != nil {
		return fmt.Errorf("creating override scaffold: %w", err)
	}
	if created {
		log.Printf("created empty %s", filepath.Base(overridePath))
	}

	logPath, err := runlog.Write(logsDir, "crosswalk_build", runlog.NewRunID(), summary)
	if err != nil {
		return fmt.Errorf("writing audit log: %w", err)
	}

	log.Printf("=== Crosswalk Summary ===")
	log.Printf("Total legacy stations: %d", summary.LegacyStationsFound)
	log.Printf("Matched: %d (%.1f%%)", summary.Matched, summary.MatchRatePct)
	log.Printf("  High confidence: %d", summary.ConfidenceBreakdown["high"])
	log.Printf("  Medium confidence: %d", summary.ConfidenceBreakdown["medium"])
	log.Printf("  Low confidence: %d", summary.ConfidenceBreakdown["low"])
	log.Printf("Ghost stations (no match): %d", summary.GhostStations)
	if n := len(summary.LowConfidence); n > 0 {
		log.Printf("review %d low-confidence matches in the crosswalk CSV", n)
	}
	if summary.GhostStations > 0 {
		log.Printf("review %d ghost stations (closed/moved)", summary.GhostStations)
	}
	log.Printf("audit log saved to %s", logPath)
	return nil
}

// runPipeline normalizes the raw files and then validates the result, so
// every run ends with a health report even when some files failed.
func runPipeline(cfg config.AppConfig, rawDir, outDir, referenceDir, logsDir string, opts pipeline.RunOptions, threshold, outlierPct float64) error {
	list, err := stations.LoadCSV(filepath.Join(referenceDir, "current_stations.csv"))
	if err != nil {
		return fmt.Errorf("canonical station table is required: %w", err)
	}
	idx := stations.NewIndex(list)

	xw, err := crosswalk.LoadWithOverrides(
		filepath.Join(referenceDir, "station_crosswalk.csv"),
		filepath.Join(referenceDir, "manual_overrides.csv"),
	)
	if err != nil {
		return fmt.Errorf("crosswalk is required (run -cmd build first): %w", err)
	}
	log.Printf("loaded %d canonical stations, %d crosswalk entries", idx.Len(), xw.Len())

	summary, err := pipeline.New(cfg, idx, xw).Run(rawDir, outDir, opts)
	if err != nil {
		return err
	}

	runID := runlog.NewRunID()
	logPath, err := runlog.Write(logsDir, "pipeline_run", runID, summary)
	if err != nil {
		return fmt.Errorf("writing run log: %w", err)
	}
	log.Printf("processed %d files (%d skipped, %d failed)", summary.FilesProcessed, summary.FilesSkipped, summary.FilesFailed)
	log.Printf("%d rows in -> %d rows out", summary.TotalRowsIn, summary.TotalRowsOut)
	log.Printf("run log saved to %s", logPath)

	log.Printf("running station mapping validation...")
	report, err := validate.Run(outDir, xw, validate.Options{Year: opts.Year, DistanceThresholdM: threshold, OutlierPct: outlierPct})
	if err != nil {
		return fmt.Errorf("validating mappings: %w", err)
	}
	validate.PrintReport(os.Stdout, report)
	if _, err := runlog.Write(logsDir, "validation", runID, report); err != nil {
		return fmt.Errorf("writing validation log: %w", err)
	}
	return nil
}

func runValidate(processedDir, referenceDir, logsDir string, opts validate.Options) error {
	xw, err := crosswalk.LoadWithOverrides(
		filepath.Join(referenceDir, "station_crosswalk.csv"),
		filepath.Join(referenceDir, "manual_overrides.csv"),
	)
	if err != nil {
		return fmt.Errorf("crosswalk is required: %w", err)
	}
	report, err := validate.Run(processedDir, xw, opts)
	if err != nil {
		return err
	}
	validate.PrintReport(os.Stdout, report)
	logPath, err := runlog.Write(logsDir, "validation", runlog.NewRunID(), report)
	if err != nil {
		return fmt.Errorf("writing validation log: %w", err)
	}
	log.Printf("full results saved to %s", logPath)
	return nil
}
