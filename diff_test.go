package lingosnip

import (
	"reflect"
	"testing"
)

func TestDiffCatalogs(t *testing.T) {
	oldCat := testCatalog("en-US", map[string]string{
		"greeting": "Hello",
		"farewell": "Goodbye",
		"title":    "Welcome",
	})
	newCat := testCatalog("en-US", map[string]string{
		"greeting": "Hello",
		"title":    "Welcome back",
		"cta":      "Sign up",
	})

	diff := DiffCatalogs(oldCat, newCat)

	if got := diff.Added; !reflect.DeepEqual(got, []string{"cta"}) {
		t.Errorf("Added = %v", got)
	}
	if got := diff.Removed; !reflect.DeepEqual(got, []string{"farewell"}) {
		t.Errorf("Removed = %v", got)
	}
	if got := diff.Changed; !reflect.DeepEqual(got, []string{"title"}) {
		t.Errorf("Changed = %v", got)
	}
	if got := diff.Unchanged; !reflect.DeepEqual(got, []string{"greeting"}) {
		t.Errorf("Unchanged = %v", got)
	}
	if !diff.HasChanges() {
		t.Error("HasChanges should be true")
	}

	stats := diff.Stats()
	if stats.Added != 1 || stats.Removed != 1 || stats.Changed != 1 || stats.Unchanged != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestDiffCatalogsWhitespaceOnly(t *testing.T) {
	oldCat := testCatalog("en-US", map[string]string{"greeting": "Hello"})
	newCat := testCatalog("en-US", map[string]string{"greeting": "  Hello  "})

	diff := DiffCatalogs(oldCat, newCat)
	if len(diff.Changed) != 0 {
		t.Errorf("whitespace-only edit should not count as a change, got %v", diff.Changed)
	}
	if diff.HasChanges() {
		t.Error("HasChanges should be false")
	}
}

func TestDiffCatalogsNil(t *testing.T) {
	newCat := testCatalog("en-US", map[string]string{"a": "1", "b": "2"})

	diff := DiffCatalogs(nil, newCat)
	if got := diff.Added; !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Added = %v", got)
	}

	diff = DiffCatalogs(newCat, nil)
	if got := diff.Removed; !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Removed = %v", got)
	}
}

func TestNeedsTranslation(t *testing.T) {
	diff := &CatalogDiff{
		Added:   []string{"zebra", "apple"},
		Changed: []string{"mango"},
	}
	got := diff.NeedsTranslation()
	want := []string{"apple", "mango", "zebra"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NeedsTranslation() = %v, want %v", got, want)
	}
}
