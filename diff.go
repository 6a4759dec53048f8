package lingosnip

import "sort"

// CatalogDiff represents the difference between two versions of a catalog.
type CatalogDiff struct {
	// Added contains keys present only in the new catalog.
	Added []string

	// Removed contains keys present only in the old catalog.
	Removed []string

	// Changed contains keys present in both whose values differ.
	Changed []string

	// Unchanged contains keys present in both with identical values.
	Unchanged []string
}

// DiffStats contains summary statistics for a diff.
type DiffStats struct {
	Added     int
	Removed   int
	Changed   int
	Unchanged int
}

// Stats returns summary statistics for the diff.
func (d *CatalogDiff) Stats() DiffStats {
	return DiffStats{
		Added:     len(d.Added),
		Removed:   len(d.Removed),
		Changed:   len(d.Changed),
		Unchanged: len(d.Unchanged),
	}
}

// HasChanges returns true if there are any differences.
func (d *CatalogDiff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Changed) > 0
}

// NeedsTranslation returns the keys whose translations must be redone in the
// other languages: new keys and keys whose source value changed.
func (d *CatalogDiff) NeedsTranslation() []string {
	result := make([]string, 0, len(d.Added)+len(d.Changed))
	result = append(result, d.Added...)
	result = append(result, d.Changed...)
	sort.Strings(result)
	return result
}

// DiffCatalogs compares two versions of a catalog and returns the
// differences, each key list sorted. Values are compared by hash of the
// trimmed text, so whitespace-only edits do not count as changes.
func DiffCatalogs(oldCat, newCat *Catalog) *CatalogDiff {
	diff := &CatalogDiff{}

	for key, newEntry := range entriesOf(newCat) {
		oldEntry, ok := entriesOf(oldCat)[key]
		switch {
		case !ok:
			diff.Added = append(diff.Added, key)
		case HashText(oldEntry.Value) != HashText(newEntry.Value):
			diff.Changed = append(diff.Changed, key)
		default:
			diff.Unchanged = append(diff.Unchanged, key)
		}
	}

	for key := range entriesOf(oldCat) {
		if _, ok := entriesOf(newCat)[key]; !ok {
			diff.Removed = append(diff.Removed, key)
		}
	}

	sort.Strings(diff.Added)
	sort.Strings(diff.Removed)
	sort.Strings(diff.Changed)
	sort.Strings(diff.Unchanged)
	return diff
}

func entriesOf(c *Catalog) map[string]TranslationEntry {
	if c == nil {
		return nil
	}
	return c.Entries
}
