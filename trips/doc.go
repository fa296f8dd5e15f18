// Package trips turns raw trip-file rows into typed records.
//
// One generic extractor reads any era through its schema.Layout; the
// normalized record is the single output shape shared by all three eras.
package trips
