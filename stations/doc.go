// Package stations loads the canonical station table and indexes it for
// ID lookup and nearest-neighbour queries.
//
// The table is the read-only ground truth for station identity: it is loaded
// once per run and never mutated, so every file processed in a run resolves
// against the same snapshot.
package stations
