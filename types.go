package lingosnip

import (
	"math"
	"strings"
	"time"
)

// ReviewStatus classifies how far along a catalog's translations are.
type ReviewStatus string

const (
	// ReviewStatusComplete means every entry has a non-empty value.
	ReviewStatusComplete ReviewStatus = "complete"
	// ReviewStatusPartial means some entries still have empty values.
	ReviewStatusPartial ReviewStatus = "partial"
	// ReviewStatusEmpty means the catalog has no usable entries.
	ReviewStatusEmpty ReviewStatus = "empty"
)

// TranslationEntry is one key's translated string within a catalog.
// Entries are created when a catalog is parsed and never mutated afterwards.
type TranslationEntry struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// CatalogMetadata describes the state of a loaded catalog.
type CatalogMetadata struct {
	LastModified time.Time    `json:"last_modified"`
	Completeness int          `json:"completeness"` // 0-100
	ReviewStatus ReviewStatus `json:"review_status"`
}

// Catalog is the full set of translated strings for one language.
type Catalog struct {
	Language string                      `json:"language"`
	Entries  map[string]TranslationEntry `json:"entries"`
	Metadata CatalogMetadata             `json:"metadata"`
}

// Value returns the translated string for key and whether the key exists.
func (c *Catalog) Value(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	entry, ok := c.Entries[key]
	if !ok {
		return "", false
	}
	return entry.Value, true
}

// Len returns the number of entries in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Entries)
}

// Completeness computes the percentage of entries with a non-empty trimmed
// value, rounded to the nearest integer. An empty catalog is 0% complete.
func Completeness(entries map[string]TranslationEntry) int {
	if len(entries) == 0 {
		return 0
	}
	filled := 0
	for _, e := range entries {
		if strings.TrimSpace(e.Value) != "" {
			filled++
		}
	}
	return int(math.Round(float64(filled) / float64(len(entries)) * 100))
}

// ReviewStatusFor derives the review status from a completeness percentage.
func ReviewStatusFor(completeness int) ReviewStatus {
	switch {
	case completeness >= 100:
		return ReviewStatusComplete
	case completeness > 0:
		return ReviewStatusPartial
	default:
		return ReviewStatusEmpty
	}
}
