package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/TessaraLabs/lingosnip"
	"github.com/TessaraLabs/lingosnip/cache"
)

// countingReader wraps a ResourceReader and counts Read calls per language.
type countingReader struct {
	ResourceReader
	reads map[string]int
}

func newCountingReader(inner ResourceReader) *countingReader {
	return &countingReader{ResourceReader: inner, reads: make(map[string]int)}
}

func (r *countingReader) Read(ctx context.Context, language string) ([]byte, time.Time, error) {
	r.reads[lingosnip.NormalizeTag(language)]++
	return r.ResourceReader.Read(ctx, language)
}

func fixtureReader() *MapReader {
	return NewMapReader(map[string]string{
		"fr-FR": `{"greeting": "Bonjour", "farewell": "Au revoir"}`,
		"en-US": `{"greeting": "Hello", "farewell": "Goodbye"}`,
	})
}

func TestLoader_Load(t *testing.T) {
	loader := NewLoader(fixtureReader())

	cat, err := loader.Load(context.Background(), "fr-FR")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cat.Language != "fr-FR" {
		t.Errorf("Language = %q", cat.Language)
	}
	if got, _ := cat.Value("greeting"); got != "Bonjour" {
		t.Errorf("greeting = %q", got)
	}
	if cat.Metadata.Completeness != 100 {
		t.Errorf("Completeness = %d, want 100", cat.Metadata.Completeness)
	}
	if cat.Metadata.ReviewStatus != lingosnip.ReviewStatusComplete {
		t.Errorf("ReviewStatus = %q", cat.Metadata.ReviewStatus)
	}
}

func TestLoader_NormalizesTag(t *testing.T) {
	loader := NewLoader(fixtureReader())

	cat, err := loader.Load(context.Background(), "fr_FR")
	if err != nil {
		t.Fatalf("Load with underscore tag failed: %v", err)
	}
	if cat.Language != "fr-FR" {
		t.Errorf("Language = %q, want fr-FR", cat.Language)
	}
}

func TestLoader_Memoizes(t *testing.T) {
	reader := newCountingReader(fixtureReader())
	loader := NewLoader(reader)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := loader.Load(ctx, "en-US"); err != nil {
			t.Fatalf("Load %d failed: %v", i, err)
		}
	}

	if reader.reads["en-US"] != 1 {
		t.Errorf("resource read %d times, want 1", reader.reads["en-US"])
	}
}

func TestLoader_ReloadsOnModTimeChange(t *testing.T) {
	inner := fixtureReader()
	reader := newCountingReader(inner)
	loader := NewLoader(reader)

	ctx := context.Background()
	if _, err := loader.Load(ctx, "en-US"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Touch the resource: the next Load must re-read it.
	inner.SetResource("en-US", `{"greeting": "Hi"}`)

	cat, err := loader.Load(ctx, "en-US")
	if err != nil {
		t.Fatalf("Load after update failed: %v", err)
	}
	if got, _ := cat.Value("greeting"); got != "Hi" {
		t.Errorf("greeting = %q, want updated value", got)
	}
	if reader.reads["en-US"] != 2 {
		t.Errorf("resource read %d times, want 2", reader.reads["en-US"])
	}
}

func TestLoader_MissingLanguage(t *testing.T) {
	loader := NewLoader(fixtureReader())

	_, err := loader.Load(context.Background(), "xx-XX")
	if !lingosnip.IsLanguageNotFound(err) {
		t.Errorf("expected LanguageNotFoundError, got %v", err)
	}
}

func TestLoader_MalformedResource(t *testing.T) {
	reader := NewMapReader(map[string]string{
		"de-DE": `{not json`,
	})
	loader := NewLoader(reader)

	_, err := loader.Load(context.Background(), "de-DE")
	if !lingosnip.IsLanguageNotFound(err) {
		t.Errorf("malformed resource should be LanguageNotFoundError, got %v", err)
	}
}

func TestLoader_DescriptionObjects(t *testing.T) {
	reader := NewMapReader(map[string]string{
		"en-US": `{
			"plain": "Hello",
			"annotated": {"value": "Log in", "description": "Button on the login page"}
		}`,
	})
	loader := NewLoader(reader)

	cat, err := loader.Load(context.Background(), "en-US")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got, _ := cat.Value("plain"); got != "Hello" {
		t.Errorf("plain = %q", got)
	}
	if got, _ := cat.Value("annotated"); got != "Log in" {
		t.Errorf("annotated = %q", got)
	}
	if desc := cat.Entries["annotated"].Description; desc != "Button on the login page" {
		t.Errorf("Description = %q", desc)
	}
}

func TestLoader_PartialCompleteness(t *testing.T) {
	reader := NewMapReader(map[string]string{
		"es-ES": `{"a": "Hola", "b": "", "c": "Adios"}`,
	})
	loader := NewLoader(reader)

	cat, err := loader.Load(context.Background(), "es-ES")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cat.Metadata.Completeness != 67 {
		t.Errorf("Completeness = %d, want 67", cat.Metadata.Completeness)
	}
	if cat.Metadata.ReviewStatus != lingosnip.ReviewStatusPartial {
		t.Errorf("ReviewStatus = %q", cat.Metadata.ReviewStatus)
	}
}

func TestLoader_CacheServiceShared(t *testing.T) {
	svc := cache.NewMemoryService()
	defer svc.Close()

	reader := newCountingReader(fixtureReader())
	loader1 := NewLoader(reader, WithCache(svc))

	ctx := context.Background()
	if _, err := loader1.Load(ctx, "fr-FR"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// A second loader over the same cache service hits the cached catalog
	// instead of the resource.
	loader2 := NewLoader(reader, WithCache(svc))
	cat, err := loader2.Load(ctx, "fr-FR")
	if err != nil {
		t.Fatalf("Load via shared cache failed: %v", err)
	}
	if got, _ := cat.Value("greeting"); got != "Bonjour" {
		t.Errorf("greeting = %q", got)
	}
	if reader.reads["fr-FR"] != 1 {
		t.Errorf("resource read %d times, want 1", reader.reads["fr-FR"])
	}
}

func TestLoader_Invalidate(t *testing.T) {
	svc := cache.NewMemoryService()
	defer svc.Close()

	inner := fixtureReader()
	reader := newCountingReader(inner)
	loader := NewLoader(reader, WithCache(svc))

	ctx := context.Background()
	loader.Load(ctx, "fr-FR")
	loader.Load(ctx, "en-US")

	loader.Invalidate("fr-FR")

	if _, ok := svc.Get(lingosnip.CatalogCacheKey("fr-FR")); ok {
		t.Error("invalidated language should be evicted from the cache service")
	}
	if _, ok := svc.Get(lingosnip.CatalogCacheKey("en-US")); !ok {
		t.Error("other languages should stay cached")
	}

	loader.Load(ctx, "fr-FR")
	if reader.reads["fr-FR"] != 2 {
		t.Errorf("resource read %d times after invalidation, want 2", reader.reads["fr-FR"])
	}
}

func TestLoader_InvalidateAll(t *testing.T) {
	svc := cache.NewMemoryService()
	defer svc.Close()

	loader := NewLoader(fixtureReader(), WithCache(svc))

	ctx := context.Background()
	loader.Load(ctx, "fr-FR")
	loader.Load(ctx, "en-US")

	loader.Invalidate()

	for _, lang := range []string{"fr-FR", "en-US"} {
		if _, ok := svc.Get(lingosnip.CatalogCacheKey(lang)); ok {
			t.Errorf("language %q should be evicted", lang)
		}
	}
}

func TestLoadAll(t *testing.T) {
	loader := NewLoader(fixtureReader())

	catalogs, err := loader.LoadAll(context.Background(), []string{"fr-FR", "en-US"})
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(catalogs) != 2 {
		t.Errorf("loaded %d catalogs, want 2", len(catalogs))
	}
}

func TestLoadAll_DefaultLanguageFatal(t *testing.T) {
	loader := NewLoader(fixtureReader())

	_, err := loader.LoadAll(context.Background(), []string{"xx-XX", "fr-FR"})
	if err == nil {
		t.Fatal("missing default language should fail LoadAll")
	}
	if !lingosnip.IsLanguageNotFound(err) {
		t.Errorf("expected wrapped LanguageNotFoundError, got %v", err)
	}
}

func TestLoadAll_SecondaryLanguageDegrades(t *testing.T) {
	loader := NewLoader(fixtureReader())

	catalogs, err := loader.LoadAll(context.Background(), []string{"fr-FR", "xx-XX", "en-US"})
	if err != nil {
		t.Fatalf("LoadAll should tolerate secondary failures: %v", err)
	}
	if len(catalogs) != 2 {
		t.Errorf("loaded %d catalogs, want 2", len(catalogs))
	}
	if _, ok := catalogs["xx-XX"]; ok {
		t.Error("failed language should be omitted")
	}
}

func TestLoadAll_EmptyLanguages(t *testing.T) {
	loader := NewLoader(fixtureReader())

	if _, err := loader.LoadAll(context.Background(), nil); !lingosnip.IsConfiguration(err) {
		t.Errorf("empty language list should be a ConfigurationError, got %v", err)
	}
}
