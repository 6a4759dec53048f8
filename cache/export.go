package cache

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// ExportFormat represents the JSON structure for cache export/import.
type ExportFormat struct {
	Version    string            `json:"version"`
	ExportedAt string            `json:"exported_at"`
	Entries    []ExportEntry     `json:"entries"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ExportEntry represents a single cache entry. TTLSeconds is the remaining
// lifetime at export time, so an import re-arms expiry rather than extending it.
type ExportEntry struct {
	Key        string          `json:"key"`
	Data       json.RawMessage `json:"data"`
	TTLSeconds int             `json:"ttl_seconds"`
}

// Exporter provides cache export functionality.
type Exporter struct {
	service *Service
}

// NewExporter creates a new cache exporter.
func NewExporter(service *Service) *Exporter {
	return &Exporter{service: service}
}

// Export writes the cache contents to a writer in JSON format. Only
// strategies with a memory tier support export.
func (e *Exporter) Export(w io.Writer, metadata map[string]string) error {
	if e.service.store == nil {
		return fmt.Errorf("cache strategy %q does not support export", e.service.strategy)
	}

	now := time.Now()
	snapshot := e.service.store.Snapshot()
	entries := make([]ExportEntry, 0, len(snapshot))
	for key, entry := range snapshot {
		entries = append(entries, ExportEntry{
			Key:        key,
			Data:       entry.Data,
			TTLSeconds: entry.RemainingTTL(now),
		})
	}

	export := ExportFormat{
		Version:    "1.0",
		ExportedAt: now.UTC().Format(time.RFC3339),
		Entries:    entries,
		Metadata:   metadata,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(export); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	return nil
}

// ExportToFile exports the cache to a file.
// The path is provided by the caller and is intentionally user-controlled.
func (e *Exporter) ExportToFile(path string, metadata map[string]string) error {
	f, err := os.Create(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	return e.Export(f, metadata)
}

// Importer provides cache import functionality.
type Importer struct {
	service *Service
}

// NewImporter creates a new cache importer.
func NewImporter(service *Service) *Importer {
	return &Importer{service: service}
}

// ImportResult contains statistics about the import operation.
type ImportResult struct {
	Version  string
	Metadata map[string]string
	Imported int
	Skipped  int
}

// Import reads cache entries from a reader and loads them into the service.
// Entries whose remaining TTL was already zero at export are skipped.
func (i *Importer) Import(r io.Reader) (*ImportResult, error) {
	var export ExportFormat
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}

	result := &ImportResult{
		Version:  export.Version,
		Metadata: export.Metadata,
	}

	for _, entry := range export.Entries {
		if entry.TTLSeconds <= 0 {
			result.Skipped++
			continue
		}
		if err := i.service.Set(entry.Key, entry.Data, entry.TTLSeconds); err != nil {
			result.Skipped++
			continue
		}
		result.Imported++
	}

	return result, nil
}

// ImportFromFile imports cache entries from a file.
// The path is provided by the caller and is intentionally user-controlled.
func (i *Importer) ImportFromFile(path string) (*ImportResult, error) {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return i.Import(f)
}
