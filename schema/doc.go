// Package schema classifies raw trip files into one of the known per-era
// column layouts by inspecting only the header line.
//
// Each era is described by a declarative Layout record mapping logical
// fields to column names; one generic extractor consumes any layout.
// Unknown headers are reported and the file skipped: silently misparsing a
// whole file is worse than dropping it.
package schema
