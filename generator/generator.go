// Package generator performs batch template generation: it substitutes
// language-conditional snippets for translation-key placeholders in template
// text, using the resolver's lenient mode so one missing translation leaves
// a visible inline marker instead of aborting the whole batch.
package generator

import (
	"regexp"
	"sort"

	"github.com/TessaraLabs/lingosnip"
)

// placeholderPattern matches @@translation.key@@ markers in template text.
var placeholderPattern = regexp.MustCompile(`@@([A-Za-z0-9._-]+)@@`)

// Generator substitutes resolved conditionals into templates against a set
// of pre-loaded catalogs.
type Generator struct {
	resolver  *lingosnip.Resolver
	catalogs  map[string]*lingosnip.Catalog
	languages []string
}

// New creates a Generator. The language list must match the priority order
// the deployment expects; index 0 supplies the fallback branch.
func New(resolver *lingosnip.Resolver, catalogs map[string]*lingosnip.Catalog, languages []string) (*Generator, error) {
	if resolver == nil {
		return nil, &lingosnip.ConfigurationError{Message: "resolver is required"}
	}
	if len(languages) == 0 {
		return nil, &lingosnip.ConfigurationError{Message: "language list must not be empty"}
	}
	return &Generator{
		resolver:  resolver,
		catalogs:  catalogs,
		languages: languages,
	}, nil
}

// Result is the outcome of generating one template.
type Result struct {
	Content  string   // Template text with placeholders substituted
	Resolved int      // Number of placeholders substituted
	Missing  []string // Keys absent from at least one language's catalog
}

// Generate substitutes every @@key@@ placeholder in a plain-text template.
func (g *Generator) Generate(templateText string) (*Result, error) {
	result := &Result{}
	missing := make(map[string]bool)

	result.Content = placeholderPattern.ReplaceAllStringFunc(templateText, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		return g.substitute(key, result, missing)
	})

	result.Missing = sortedKeys(missing)
	return result, nil
}

// substitute resolves one key leniently and records bookkeeping.
func (g *Generator) substitute(key string, result *Result, missing map[string]bool) string {
	snippet, err := g.resolver.ResolveFromCatalogs(key, g.catalogs, g.languages)
	if err != nil {
		// Only an empty language list produces an error, and New rejects that.
		return lingosnip.MissingPlaceholder(key)
	}
	result.Resolved++
	for _, lang := range g.languages {
		if _, ok := g.catalogs[lang].Value(key); !ok {
			missing[key] = true
			break
		}
	}
	return snippet
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
