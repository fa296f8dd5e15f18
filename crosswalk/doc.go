// Package crosswalk builds and serves the legacy-to-canonical station
// mapping.
//
// The builder aggregates every legacy station ever observed in the raw trip
// files, matches each against the canonical station set and persists one
// entry per legacy ID, matched or not. Operators can correct individual
// rows through a manual-override table that always wins on merge. The
// merged table is read-only for the duration of a pipeline run.
package crosswalk
