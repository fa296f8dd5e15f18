// Package match finds the canonical station corresponding to a legacy
// station observation using spatial proximity and fuzzy name similarity.
//
// There is no shared key between the legacy and modern identifier spaces,
// so identity is inferred: nearby canonical candidates are scored by a blend
// of name similarity and proximity, and accepted through a tiered confidence
// ladder. An observation with no acceptable candidate is a ghost station,
// which is an expected outcome, not an error.
package match
