package markdown_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/feeds"
	internalfeeds "github.com/goliatone/go-blog/internal/feeds"
	"github.com/goliatone/go-blog/internal/markdown"
)

var importAuthor = uuid.MustParse("00000000-0000-0000-0000-0000000000aa")

func newImporter(t *testing.T) (*markdown.Importer, feeds.Service) {
	t.Helper()
	svc := internalfeeds.NewService(
		internalfeeds.NewMemoryFeedRepository(),
		internalfeeds.NewMemoryTagRepository(),
	)
	importer, err := markdown.NewImporter(markdown.ImporterConfig{
		Feeds:    svc,
		AuthorID: importAuthor,
	})
	if err != nil {
		t.Fatalf("new importer: %v", err)
	}
	return importer, svc
}

func TestImportDocument_CreatesFeed(t *testing.T) {
	importer, svc := newImporter(t)
	source := []byte(`---
title: Hello World
summary: A greeting.
tags: [go, blog]
date: 2025-01-02T15:04:05Z
---
Body of the post.
`)

	feed, created, err := importer.ImportDocument(context.Background(), "hello.md", source)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !created {
		t.Fatal("expected a new feed")
	}
	if feed.Title != "Hello World" {
		t.Fatalf("title = %q", feed.Title)
	}
	if feed.Alias == nil || *feed.Alias != "hello" {
		t.Fatalf("alias should fall back to the file name, got %v", feed.Alias)
	}
	if feed.Summary != "A greeting." {
		t.Fatalf("summary = %q", feed.Summary)
	}
	if len(feed.Tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(feed.Tags))
	}
	want := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
	if !feed.CreatedAt.Equal(want) {
		t.Fatalf("created at = %v, want %v", feed.CreatedAt, want)
	}

	stored, err := svc.GetByAlias(context.Background(), "hello")
	if err != nil {
		t.Fatalf("get by alias: %v", err)
	}
	if stored.ID != feed.ID {
		t.Fatal("stored feed does not match")
	}
}

func TestImportDocument_AliasFromFrontMatter(t *testing.T) {
	importer, _ := newImporter(t)
	source := []byte(`---
title: Custom Alias
alias: My Custom Alias
---
Body.
`)

	feed, _, err := importer.ImportDocument(context.Background(), "ignored.md", source)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if feed.Alias == nil || *feed.Alias != "my-custom-alias" {
		t.Fatalf("alias should be normalized, got %v", feed.Alias)
	}
}

func TestImportDocument_TitleFromHeading(t *testing.T) {
	importer, _ := newImporter(t)
	source := []byte("# First Heading\n\nBody text.\n")

	feed, _, err := importer.ImportDocument(context.Background(), "untitled.md", source)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if feed.Title != "First Heading" {
		t.Fatalf("title = %q", feed.Title)
	}
}

func TestImportDocument_UpdatesExisting(t *testing.T) {
	importer, svc := newImporter(t)
	first := []byte(`---
title: Version One
alias: versioned
tags: [old]
---
Original body.
`)
	second := []byte(`---
title: Version Two
alias: versioned
tags: [new]
---
Revised body.
`)

	created, wasNew, err := importer.ImportDocument(context.Background(), "v1.md", first)
	if err != nil || !wasNew {
		t.Fatalf("first import: created=%v err=%v", wasNew, err)
	}

	updated, wasNew, err := importer.ImportDocument(context.Background(), "v2.md", second)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if wasNew {
		t.Fatal("second import should update, not create")
	}
	if updated.ID != created.ID {
		t.Fatal("update must target the same feed")
	}
	if updated.Title != "Version Two" {
		t.Fatalf("title = %q", updated.Title)
	}
	if len(updated.Tags) != 1 || updated.Tags[0].Name != "new" {
		t.Fatalf("tags should be replaced, got %+v", updated.Tags)
	}

	listed, err := svc.List(context.Background(), feeds.ListFeedsRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected a single feed, got %d", len(listed))
	}
}

func TestImportDocument_UnlistedDraft(t *testing.T) {
	importer, _ := newImporter(t)
	source := []byte(`---
title: Quiet Note
draft: true
listed: false
---
Body.
`)

	feed, _, err := importer.ImportDocument(context.Background(), "note.md", source)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !feed.Draft {
		t.Fatal("draft flag lost")
	}
	if feed.Listed {
		t.Fatal("listed flag lost")
	}
}

func TestImportDirectory(t *testing.T) {
	importer, _ := newImporter(t)
	dir := t.TempDir()

	good := "---\ntitle: From Disk\n---\nBody.\n"
	if err := os.WriteFile(filepath.Join(dir, "post.md"), []byte(good), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	result, err := importer.ImportDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("import dir: %v", err)
	}
	if len(result.Created) != 1 || result.Created[0] != "post" {
		t.Fatalf("created = %v", result.Created)
	}
	if len(result.Updated) != 0 || len(result.Skipped) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestParseFrontMatter_NoBlock(t *testing.T) {
	meta, body, err := markdown.ParseFrontMatter([]byte("Just a body.\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if meta.Title != "" {
		t.Fatalf("unexpected title %q", meta.Title)
	}
	if string(body) != "Just a body.\n" {
		t.Fatalf("body = %q", body)
	}
	if !meta.IsListed() {
		t.Fatal("listed must default to true")
	}
}
