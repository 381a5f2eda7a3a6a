package markdowncmd_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	markdowncmd "github.com/goliatone/go-blog/internal/commands/markdown"
	internalfeeds "github.com/goliatone/go-blog/internal/feeds"
)

var author = uuid.MustParse("00000000-0000-0000-0000-0000000000aa")

func TestImportDirectoryCommand(t *testing.T) {
	svc := internalfeeds.NewService(
		internalfeeds.NewMemoryFeedRepository(),
		internalfeeds.NewMemoryTagRepository(),
	)
	handler, err := markdowncmd.NewImportDirectoryHandler(svc, nil)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	dir := t.TempDir()
	doc := "---\ntitle: Imported Post\nalias: imported-post\n---\nBody.\n"
	if err := os.WriteFile(filepath.Join(dir, "post.md"), []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	err = handler.Execute(context.Background(), markdowncmd.ImportDirectoryCommand{
		Directory: dir,
		AuthorID:  author,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	feed, err := svc.GetByAlias(context.Background(), "imported-post")
	if err != nil {
		t.Fatalf("imported feed missing: %v", err)
	}
	if feed.Title != "Imported Post" {
		t.Fatalf("title = %q", feed.Title)
	}
}

func TestImportDirectoryCommandValidation(t *testing.T) {
	svc := internalfeeds.NewService(
		internalfeeds.NewMemoryFeedRepository(),
		internalfeeds.NewMemoryTagRepository(),
	)
	handler, err := markdowncmd.NewImportDirectoryHandler(svc, nil)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	err = handler.Execute(context.Background(), markdowncmd.ImportDirectoryCommand{AuthorID: author})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}

	err = handler.Execute(context.Background(), markdowncmd.ImportDirectoryCommand{Directory: t.TempDir()})
	if err == nil {
		t.Fatal("expected validation error for missing author")
	}
}

func TestNewImportDirectoryHandlerRequiresService(t *testing.T) {
	if _, err := markdowncmd.NewImportDirectoryHandler(nil, nil); err != markdowncmd.ErrFeedServiceRequired {
		t.Fatalf("expected ErrFeedServiceRequired, got %v", err)
	}
}
