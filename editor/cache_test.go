package editor_test

import (
	"testing"

	"github.com/goliatone/go-blog/editor"
)

func TestCache_SaveLoadRoundTrip(t *testing.T) {
	cache := editor.NewCache(editor.NewMemoryStore())
	draft := editor.Draft{
		Title:   "my post",
		Summary: "short",
		Tags:    "#go #blog",
		Alias:   "my-post",
		Content: "body text",
	}

	if err := cache.Save("doc-1", draft); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := cache.Load("doc-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded != draft {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}

func TestCache_ScopesAreIsolated(t *testing.T) {
	cache := editor.NewCache(editor.NewMemoryStore())

	if err := cache.Save("doc-1", editor.Draft{Title: "one"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := cache.Save(editor.ScopeNew, editor.Draft{Title: "unsaved"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := cache.Load("doc-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Title != "one" {
		t.Fatalf("scope bleed: %+v", loaded)
	}
}

func TestCache_ClearRemovesScope(t *testing.T) {
	cache := editor.NewCache(editor.NewMemoryStore())

	if err := cache.Save("doc-1", editor.Draft{Title: "one", Content: "body"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := cache.Clear("doc-1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	loaded, err := cache.Load("doc-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded != (editor.Draft{}) {
		t.Fatalf("expected empty draft after clear, got %+v", loaded)
	}
}

func TestCache_PrefillSeedsOnce(t *testing.T) {
	cache := editor.NewCache(editor.NewMemoryStore())
	remote := editor.Draft{Title: "server title", Content: "server body"}

	first, err := cache.Prefill("doc-1", remote)
	if err != nil {
		t.Fatalf("Prefill: %v", err)
	}
	if first != remote {
		t.Fatalf("first prefill should return the record, got %+v", first)
	}

	// local edit after the initial load
	if err := cache.SetField("doc-1", "title", "edited locally"); err != nil {
		t.Fatalf("SetField: %v", err)
	}

	second, err := cache.Prefill("doc-1", remote)
	if err != nil {
		t.Fatalf("Prefill again: %v", err)
	}
	if second.Title != "edited locally" {
		t.Fatalf("re-fetch must not overwrite local edits, got %+v", second)
	}
}

func TestScopeFor(t *testing.T) {
	if got := editor.ScopeFor(""); got != editor.ScopeNew {
		t.Fatalf("blank id should map to the new scope, got %q", got)
	}
	if got := editor.ScopeFor("  "); got != editor.ScopeNew {
		t.Fatalf("whitespace id should map to the new scope, got %q", got)
	}
	if got := editor.ScopeFor("abc-123"); got != "abc-123" {
		t.Fatalf("id should be used verbatim, got %q", got)
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store, err := editor.NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := store.Set("doc/with/slashes", "title", "persisted"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	reopened, err := editor.NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore reopen: %v", err)
	}
	value, ok, err := reopened.Get("doc/with/slashes", "title")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || value != "persisted" {
		t.Fatalf("expected persisted value, got %q ok=%v", value, ok)
	}

	if err := reopened.Clear("doc/with/slashes"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := reopened.Get("doc/with/slashes", "title"); ok {
		t.Fatalf("value should be gone after clear")
	}
}

func TestPreferences_DefaultsAndRoundTrip(t *testing.T) {
	store := editor.NewMemoryStore()

	prefs, err := editor.LoadPreferences(store)
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if prefs != editor.DefaultPreferences() {
		t.Fatalf("expected defaults, got %+v", prefs)
	}

	prefs.FontSize = 18
	prefs.FontFamily = "monospace"
	if err := editor.SavePreferences(store, prefs); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}
	loaded, err := editor.LoadPreferences(store)
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if loaded != prefs {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}
