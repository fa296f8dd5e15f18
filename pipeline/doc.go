// Package pipeline normalizes raw trip files into the canonical trip schema.
//
// Each file is processed independently: its schema is detected, every row is
// extracted through the era layout, both endpoints are resolved to canonical
// station identity through the merged crosswalk, quality filters drop bad
// rows into named reason buckets, and one normalized CSV is written per
// input file. Reference tables are loaded once per run and never mutated,
// so re-running over the same inputs produces byte-identical output.
package pipeline
