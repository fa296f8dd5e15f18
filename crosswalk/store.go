package crosswalk

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// Table is an in-memory crosswalk keyed by legacy ID, with a secondary key
// by modern ID for validator joins. It is immutable once loaded.
type Table struct {
	byLegacy map[string]*Entry
	byModern map[string]*Entry
	order    []string
}

func newTable(entries []*Entry) *Table {
	t := &Table{
		byLegacy: make(map[string]*Entry, len(entries)),
		byModern: make(map[string]*Entry, len(entries)),
	}
	for _, e := range entries {
		if _, seen := t.byLegacy[e.LegacyID]; !seen {
			t.order = append(t.order, e.LegacyID)
		}
		t.byLegacy[e.LegacyID] = e
		if e.ModernID != "" {
			t.byModern[e.ModernID] = e
		}
	}
	return t
}

// Lookup returns the entry for a legacy station ID.
func (t *Table) Lookup(legacyID string) (*Entry, bool) {
	e, ok := t.byLegacy[legacyID]
	return e, ok
}

// LookupModern returns the entry mapped to the given canonical ID.
func (t *Table) LookupModern(modernID string) (*Entry, bool) {
	e, ok := t.byModern[modernID]
	return e, ok
}

// Len returns the number of legacy stations in the table.
func (t *Table) Len() int {
	return len(t.byLegacy)
}

// Entries returns the entries in load order.
func (t *Table) Entries() []*Entry {
	out := make([]*Entry, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.byLegacy[id])
	}
	return out
}

func readEntries(path string) ([]*Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var entries []*Entry
	if err := gocsv.UnmarshalFile(f, &entries); err != nil {
		return nil, fmt.Errorf("unmarshaling crosswalk %s: %w", path, err)
	}
	return entries, nil
}

// Load reads a crosswalk CSV into a table. The file is a precondition for
// the pipeline, so a missing file is an error.
func Load(path string) (*Table, error) {
	entries, err := readEntries(path)
	if err != nil {
		return nil, err
	}
	return newTable(entries), nil
}

// LoadWithOverrides reads the builder-generated crosswalk and merges the
// manual-override table over it. Override rows replace builder rows with
// the same legacy ID; the merge is idempotent and neither input file is
// modified. A missing or empty override file leaves the crosswalk as built.
func LoadWithOverrides(crosswalkPath, overridePath string) (*Table, error) {
	entries, err := readEntries(crosswalkPath)
	if err != nil {
		return nil, err
	}

	overrides, err := readEntries(overridePath)
	if err != nil {
		if os.IsNotExist(err) {
			return newTable(entries), nil
		}
		return nil, err
	}
	if len(overrides) == 0 {
		return newTable(entries), nil
	}

	overridden := make(map[string]bool, len(overrides))
	for _, o := range overrides {
		overridden[o.LegacyID] = true
	}
	merged := make([]*Entry, 0, len(entries)+len(overrides))
	for _, e := range entries {
		if !overridden[e.LegacyID] {
			merged = append(merged, e)
		}
	}
	merged = append(merged, overrides...)
	return newTable(merged), nil
}

// Save writes the crosswalk CSV, fully replacing any previous file.
func Save(path string, entries []*Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&entries, f)
}

// EnsureOverrideScaffold creates an empty override table (header only) if
// none exists. An existing file is never touched: it is operator-owned.
func EnsureOverrideScaffold(path string) (created bool, err error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}
	f, err := os.Create(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	empty := []*Entry{}
	if err := gocsv.MarshalFile(&empty, f); err != nil {
		return false, err
	}
	return true, nil
}
