package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/TessaraLabs/lingosnip"
	"github.com/TessaraLabs/lingosnip/cache"
)

// DefaultTTLSeconds is how long loaded catalogs stay cached.
const DefaultTTLSeconds = 3600

// Loader produces a lingosnip.Catalog for a language code, memoizing loads
// in memory and through an optional cache service. A cached catalog is
// invalidated when the backing resource's modification time changes.
type Loader struct {
	reader ResourceReader
	cache  *cache.Service
	ttl    int
	logger *slog.Logger

	mu       sync.Mutex
	catalogs map[string]*lingosnip.Catalog
}

// LoaderOption is a functional option for configuring the Loader.
type LoaderOption func(*Loader)

// WithCache backs the loader with a cache service.
func WithCache(svc *cache.Service) LoaderOption {
	return func(l *Loader) {
		l.cache = svc
	}
}

// WithTTL sets the cache TTL for loaded catalogs in seconds.
func WithTTL(seconds int) LoaderOption {
	return func(l *Loader) {
		if seconds > 0 {
			l.ttl = seconds
		}
	}
}

// WithLogger sets the loader's logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a Loader over the given resource reader.
func NewLoader(reader ResourceReader, opts ...LoaderOption) *Loader {
	l := &Loader{
		reader:   reader,
		ttl:      DefaultTTLSeconds,
		logger:   slog.Default(),
		catalogs: make(map[string]*lingosnip.Catalog),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the catalog for language, from the in-memory reference or the
// cache when fresh, otherwise from the backing resource. A missing or
// malformed resource fails with a LanguageNotFoundError; the resource is
// equally unusable either way.
func (l *Loader) Load(ctx context.Context, language string) (*lingosnip.Catalog, error) {
	lang := lingosnip.NormalizeTag(language)

	l.mu.Lock()
	defer l.mu.Unlock()

	if cat, ok := l.catalogs[lang]; ok && l.freshLocked(ctx, lang, cat) {
		return cat, nil
	}

	if l.cache != nil {
		var cat lingosnip.Catalog
		if l.cache.GetJSON(lingosnip.CatalogCacheKey(lang), &cat) && l.freshLocked(ctx, lang, &cat) {
			l.catalogs[lang] = &cat
			return &cat, nil
		}
	}

	cat, err := l.loadFromResource(ctx, lang)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if err := l.cache.Set(lingosnip.CatalogCacheKey(lang), cat, l.ttl); err != nil {
			l.logger.Warn("caching catalog failed", "language", lang, "error", err)
		}
	}
	l.catalogs[lang] = cat
	return cat, nil
}

// LoadAll loads every language for batch initialization. Failure of the
// first language (the default) is fatal; failures of later languages are
// logged and those languages omitted from the result.
func (l *Loader) LoadAll(ctx context.Context, languages []string) (map[string]*lingosnip.Catalog, error) {
	if len(languages) == 0 {
		return nil, &lingosnip.ConfigurationError{Message: "language list must not be empty"}
	}

	catalogs := make(map[string]*lingosnip.Catalog, len(languages))
	for i, lang := range languages {
		cat, err := l.Load(ctx, lang)
		if err != nil {
			if i == 0 {
				return nil, fmt.Errorf("default language %q failed to load: %w", lang, err)
			}
			l.logger.Warn("language failed to load, continuing degraded", "language", lang, "error", err)
			continue
		}
		catalogs[lang] = cat
	}
	return catalogs, nil
}

// Invalidate removes the given languages' cache entries and in-memory
// catalog references, or all of them when called without arguments.
func (l *Loader) Invalidate(languages ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(languages) == 0 {
		for lang := range l.catalogs {
			if l.cache != nil {
				l.cache.Delete(lingosnip.CatalogCacheKey(lang))
			}
		}
		l.catalogs = make(map[string]*lingosnip.Catalog)
		return
	}

	for _, language := range languages {
		lang := lingosnip.NormalizeTag(language)
		delete(l.catalogs, lang)
		if l.cache != nil {
			l.cache.Delete(lingosnip.CatalogCacheKey(lang))
		}
	}
}

// freshLocked reports whether a cached catalog still matches the backing
// resource's modification time. An unreadable mod time counts as stale so
// the load path surfaces the real error.
func (l *Loader) freshLocked(ctx context.Context, lang string, cat *lingosnip.Catalog) bool {
	modTime, err := l.reader.ModTime(ctx, lang)
	if err != nil {
		return false
	}
	return modTime.Equal(cat.Metadata.LastModified)
}

func (l *Loader) loadFromResource(ctx context.Context, lang string) (*lingosnip.Catalog, error) {
	data, modTime, err := l.reader.Read(ctx, lang)
	if err != nil {
		return nil, &lingosnip.LanguageNotFoundError{Language: lang, Cause: err}
	}

	entries, err := parseEntries(data)
	if err != nil {
		return nil, &lingosnip.LanguageNotFoundError{Language: lang, Cause: err}
	}

	completeness := lingosnip.Completeness(entries)
	return &lingosnip.Catalog{
		Language: lang,
		Entries:  entries,
		Metadata: lingosnip.CatalogMetadata{
			LastModified: modTime,
			Completeness: completeness,
			ReviewStatus: lingosnip.ReviewStatusFor(completeness),
		},
	}, nil
}

// parseEntries decodes a flat catalog resource. Values are plain strings or
// objects carrying a value and an optional description.
func parseEntries(data []byte) (map[string]lingosnip.TranslationEntry, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	entries := make(map[string]lingosnip.TranslationEntry, len(raw))
	for key, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			entries[key] = lingosnip.TranslationEntry{Key: key, Value: s}
			continue
		}

		var obj struct {
			Value       string `json:"value"`
			Description string `json:"description"`
		}
		if err := json.Unmarshal(value, &obj); err != nil {
			return nil, fmt.Errorf("parsing catalog entry %q: %w", key, err)
		}
		entries[key] = lingosnip.TranslationEntry{
			Key:         key,
			Value:       obj.Value,
			Description: obj.Description,
		}
	}
	return entries, nil
}

// Verify Loader implements the resolver's loader contract
var _ lingosnip.CatalogLoader = (*Loader)(nil)
