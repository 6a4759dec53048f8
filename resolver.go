package lingosnip

import (
	"context"
	"fmt"
	"strings"
)

// DefaultMarker is the template variable the generated conditional tests
// against the current language.
const DefaultMarker = "lang"

// CatalogLoader supplies one language's catalog on demand.
type CatalogLoader interface {
	Load(ctx context.Context, language string) (*Catalog, error)
}

// Resolver turns one translation key plus an ordered language priority list
// into a single multi-branch conditional snippet.
//
// It carries no process-wide state: the loader, language list and marker are
// all supplied at construction, so independent resolvers with different
// language sets can coexist.
type Resolver struct {
	loader    CatalogLoader
	languages []string
	marker    string
}

// ResolverOption is a functional option for configuring the Resolver.
type ResolverOption func(*Resolver)

// WithMarker sets the template variable name tested by generated
// conditionals (default "lang").
func WithMarker(marker string) ResolverOption {
	return func(r *Resolver) {
		if marker != "" {
			r.marker = marker
		}
	}
}

// NewResolver creates a Resolver for the given ordered language list.
// Index 0 is the highest priority language and supplies the fallback branch.
// The loader may be nil if only ResolveFromCatalogs is used.
func NewResolver(loader CatalogLoader, languages []string, opts ...ResolverOption) (*Resolver, error) {
	if len(languages) == 0 {
		return nil, &ConfigurationError{Message: "language list must not be empty"}
	}
	seen := make(map[string]bool, len(languages))
	for _, lang := range languages {
		if seen[lang] {
			return nil, &ConfigurationError{Message: fmt.Sprintf("duplicate language %q in language list", lang)}
		}
		seen[lang] = true
	}

	r := &Resolver{
		loader:    loader,
		languages: languages,
		marker:    DefaultMarker,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Languages returns the ordered language list.
func (r *Resolver) Languages() []string {
	return r.languages
}

// Marker returns the template variable name used in conditionals.
func (r *Resolver) Marker() string {
	return r.marker
}

// Resolve produces the conditional snippet for key in strict mode.
//
// Catalogs are loaded sequentially in priority order; a key absent from any
// configured language's catalog aborts resolution with a
// TranslationMissingError before later languages are attempted. A language
// whose backing resource is missing or unreadable aborts with a
// LanguageNotFoundError.
func (r *Resolver) Resolve(ctx context.Context, key string) (string, error) {
	if len(r.languages) == 0 {
		return "", &ConfigurationError{Message: "language list must not be empty"}
	}
	if r.loader == nil {
		return "", &ConfigurationError{Message: "no catalog loader configured"}
	}

	values := make([]string, 0, len(r.languages))
	for _, lang := range r.languages {
		cat, err := r.loader.Load(ctx, lang)
		if err != nil {
			return "", err
		}
		value, ok := cat.Value(key)
		if !ok {
			return "", &TranslationMissingError{Key: key, Language: lang}
		}
		values = append(values, value)
	}

	return renderConditional(r.marker, r.languages, values), nil
}

// ResolveFromCatalogs produces the conditional snippet for key in lenient
// mode, against catalogs the caller already holds. A key absent from a
// catalog (or a language with no catalog in the map) yields an inline
// MissingPlaceholder instead of an error. Batch template generation uses
// this path.
func (r *Resolver) ResolveFromCatalogs(key string, catalogs map[string]*Catalog, languages []string) (string, error) {
	if len(languages) == 0 {
		return "", &ConfigurationError{Message: "language list must not be empty"}
	}

	values := make([]string, 0, len(languages))
	for _, lang := range languages {
		value, ok := catalogs[lang].Value(key)
		if !ok {
			value = MissingPlaceholder(key)
		}
		values = append(values, value)
	}

	return renderConditional(r.marker, languages, values), nil
}

// MissingPlaceholder is the inline marker lenient resolution substitutes for
// a missing translation.
func MissingPlaceholder(key string) string {
	return "[MISSING: " + key + "]"
}

// renderConditional emits the Liquid conditional: an if branch for the first
// language, an elsif branch per remaining language, and an else branch that
// repeats the first language's value. Branches are joined with newlines.
func renderConditional(marker string, languages, values []string) string {
	branches := make([]string, 0, len(languages)+2)
	for i, lang := range languages {
		keyword := "elsif"
		if i == 0 {
			keyword = "if"
		}
		branches = append(branches, fmt.Sprintf("{%% %s %s == '%s' %%}%s", keyword, marker, lang, values[i]))
	}
	branches = append(branches, "{% else %}"+values[0])
	branches = append(branches, "{% endif %}")
	return strings.Join(branches, "\n")
}
