// Package catalog loads per-language translation catalogs from pluggable
// resource readers, memoizing them through the cache service.
package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/TessaraLabs/lingosnip"
)

// ResourceReader supplies the raw JSON for one language's catalog. Any
// key-value resource store satisfies this contract; the loader treats every
// read failure as the language being unavailable.
type ResourceReader interface {
	// Read returns the resource's raw JSON and its last modification time.
	Read(ctx context.Context, language string) ([]byte, time.Time, error)

	// ModTime returns the resource's last modification time without
	// reading it, so cached catalogs can be checked for staleness.
	ModTime(ctx context.Context, language string) (time.Time, error)
}

// DirReader reads catalogs from flat files named <language>.json inside a
// configured directory.
type DirReader struct {
	dir string
}

// NewDirReader creates a DirReader for the given directory.
func NewDirReader(dir string) *DirReader {
	return &DirReader{dir: dir}
}

func (r *DirReader) path(language string) string {
	return filepath.Join(r.dir, lingosnip.NormalizeTag(language)+".json")
}

// Read returns the language file's contents and modification time.
func (r *DirReader) Read(_ context.Context, language string) ([]byte, time.Time, error) {
	path := r.path(language)
	info, err := os.Stat(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	data, err := os.ReadFile(path) // #nosec G304 - catalog dir is operator-configured
	if err != nil {
		return nil, time.Time{}, err
	}
	return data, info.ModTime(), nil
}

// ModTime returns the language file's modification time.
func (r *DirReader) ModTime(_ context.Context, language string) (time.Time, error) {
	info, err := os.Stat(r.path(language))
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// MapReader serves catalogs from an in-memory map of language to raw JSON.
// Tests and embedded fixtures use it in place of the filesystem.
type MapReader struct {
	mu        sync.RWMutex
	resources map[string]mapResource
}

type mapResource struct {
	data    []byte
	modTime time.Time
}

// NewMapReader creates a MapReader pre-populated from resources
// (language tag to raw JSON text).
func NewMapReader(resources map[string]string) *MapReader {
	r := &MapReader{resources: make(map[string]mapResource, len(resources))}
	now := time.Now()
	for lang, data := range resources {
		r.resources[lingosnip.NormalizeTag(lang)] = mapResource{data: []byte(data), modTime: now}
	}
	return r
}

// SetResource adds or replaces a language's raw JSON, bumping its
// modification time.
func (r *MapReader) SetResource(language, data string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resources[lingosnip.NormalizeTag(language)] = mapResource{
		data:    []byte(data),
		modTime: time.Now(),
	}
}

// Read returns the language's raw JSON and modification time.
func (r *MapReader) Read(_ context.Context, language string) ([]byte, time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.resources[lingosnip.NormalizeTag(language)]
	if !ok {
		return nil, time.Time{}, fmt.Errorf("no resource for language %q", language)
	}
	return res.data, res.modTime, nil
}

// ModTime returns the language's modification time.
func (r *MapReader) ModTime(_ context.Context, language string) (time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.resources[lingosnip.NormalizeTag(language)]
	if !ok {
		return time.Time{}, fmt.Errorf("no resource for language %q", language)
	}
	return res.modTime, nil
}

// Verify both readers implement ResourceReader
var (
	_ ResourceReader = (*DirReader)(nil)
	_ ResourceReader = (*MapReader)(nil)
)
