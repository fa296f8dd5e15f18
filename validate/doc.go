// Package validate audits crosswalk quality from pipeline output.
//
// Crosswalk errors that survive the matcher only become visible once volume
// is aggregated: if most of a station's trips sit far from the canonical
// coordinate it was mapped to, the mapping itself is wrong; if only a
// handful do, the mapping is fine and those rows carry corrupted GPS data.
// The remediation differs, so the validator keeps the two apart.
package validate
