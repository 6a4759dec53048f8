package lingosnip

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// TranslationProvider is the interface for machine-translation backends used
// to fill gaps in target catalogs.
type TranslationProvider interface {
	Translate(ctx context.Context, req TranslateRequest) ([]string, error)
}

// TranslateRequest contains the parameters for one translation request.
type TranslateRequest struct {
	Texts          []string
	TargetLanguage string
	SourceLanguage string
	Context        string            // Global context hint (e.g. "login page of a SaaS product")
	Glossary       map[string]string // Preferred translations for specific phrases
}

// Filler machine-translates the keys a target catalog is missing relative to
// a source catalog. Strict resolution aborts on missing keys; the filler is
// how operators close those gaps ahead of a deployment.
type Filler struct {
	provider  TranslationProvider
	context   string
	glossary  map[string]string
	batchSize int
}

// FillerOption is a functional option for configuring the Filler.
type FillerOption func(*Filler)

// WithFillContext sets a global context hint passed to the provider.
func WithFillContext(ctx string) FillerOption {
	return func(f *Filler) {
		f.context = ctx
	}
}

// WithGlossary sets preferred translations for specific phrases.
func WithGlossary(glossary map[string]string) FillerOption {
	return func(f *Filler) {
		f.glossary = glossary
	}
}

// WithBatchSize caps how many texts are sent per provider request.
func WithBatchSize(n int) FillerOption {
	return func(f *Filler) {
		if n > 0 {
			f.batchSize = n
		}
	}
}

const defaultFillBatchSize = 25

// NewFiller creates a Filler backed by the given provider.
func NewFiller(provider TranslationProvider, opts ...FillerOption) *Filler {
	f := &Filler{
		provider:  provider,
		batchSize: defaultFillBatchSize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FillResult reports what a Fill call did.
type FillResult struct {
	Catalog *Catalog // Updated copy of the target catalog
	Filled  []string // Keys that received a machine translation
	Skipped []string // Keys empty in the source catalog too
}

// Fill translates every key that has a non-empty value in source but is
// absent or empty in target, returning an updated copy of target. The target
// catalog itself is never mutated. Keys are processed in sorted order so
// repeated runs issue identical requests.
func (f *Filler) Fill(ctx context.Context, source, target *Catalog) (*FillResult, error) {
	if f.provider == nil {
		return nil, &ConfigurationError{Message: "no translation provider configured"}
	}
	if source == nil || target == nil {
		return nil, &ConfigurationError{Message: "source and target catalogs are required"}
	}

	var missing, skipped []string
	for key, entry := range source.Entries {
		if value, ok := target.Value(key); ok && strings.TrimSpace(value) != "" {
			continue
		}
		if strings.TrimSpace(entry.Value) == "" {
			skipped = append(skipped, key)
			continue
		}
		missing = append(missing, key)
	}
	sort.Strings(missing)
	sort.Strings(skipped)

	entries := make(map[string]TranslationEntry, len(target.Entries)+len(missing))
	for k, v := range target.Entries {
		entries[k] = v
	}

	for start := 0; start < len(missing); start += f.batchSize {
		end := start + f.batchSize
		if end > len(missing) {
			end = len(missing)
		}
		batch := missing[start:end]

		texts := make([]string, len(batch))
		for i, key := range batch {
			texts[i] = source.Entries[key].Value
		}

		results, err := f.provider.Translate(ctx, TranslateRequest{
			Texts:          texts,
			TargetLanguage: target.Language,
			SourceLanguage: source.Language,
			Context:        f.context,
			Glossary:       f.glossary,
		})
		if err != nil {
			return nil, err
		}
		if len(results) != len(texts) {
			return nil, &ProviderError{
				Message:   fmt.Sprintf("translation count mismatch: expected %d, got %d", len(texts), len(results)),
				Retryable: true,
			}
		}

		for i, key := range batch {
			entries[key] = TranslationEntry{
				Key:         key,
				Value:       results[i],
				Description: source.Entries[key].Description,
			}
		}
	}

	completeness := Completeness(entries)
	updated := &Catalog{
		Language: target.Language,
		Entries:  entries,
		Metadata: CatalogMetadata{
			LastModified: target.Metadata.LastModified,
			Completeness: completeness,
			ReviewStatus: ReviewStatusFor(completeness),
		},
	}

	return &FillResult{
		Catalog: updated,
		Filled:  missing,
		Skipped: skipped,
	}, nil
}
