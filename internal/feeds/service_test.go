package feeds_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-blog/internal/feeds"
	"github.com/google/uuid"
)

var testClock = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newService(t *testing.T) (feeds.Service, *feeds.MemoryFeedRepository) {
	t.Helper()
	repo := feeds.NewMemoryFeedRepository()
	tags := feeds.NewMemoryTagRepository()
	svc := feeds.NewService(repo, tags,
		feeds.WithClock(func() time.Time { return testClock }),
	)
	return svc, repo
}

func TestService_Create_RequiresTitleAndContent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	author := uuid.MustParse("00000000-0000-0000-0000-0000000000aa")

	_, err := svc.Create(ctx, feeds.CreateFeedRequest{Content: "body", AuthorID: author})
	if !errors.Is(err, feeds.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}

	_, err = svc.Create(ctx, feeds.CreateFeedRequest{Title: "hello", AuthorID: author})
	if !errors.Is(err, feeds.ErrContentRequired) {
		t.Fatalf("expected ErrContentRequired, got %v", err)
	}

	_, err = svc.Create(ctx, feeds.CreateFeedRequest{Title: "hello", Content: "body"})
	if !errors.Is(err, feeds.ErrAuthorRequired) {
		t.Fatalf("expected ErrAuthorRequired, got %v", err)
	}
}

func TestService_Create_AutoSummaryOnBlank(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	created, err := svc.Create(ctx, feeds.CreateFeedRequest{
		Title:    "First post",
		Content:  "# Heading\n\nSome **bold** prose with a [link](https://example.com).",
		AuthorID: uuid.MustParse("00000000-0000-0000-0000-0000000000aa"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Summary != "Heading Some bold prose with a link." {
		t.Fatalf("unexpected summary %q", created.Summary)
	}
	if !created.CreatedAt.Equal(testClock) {
		t.Fatalf("expected clock timestamp, got %v", created.CreatedAt)
	}
}

func TestService_Create_KeepsExplicitSummary(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	created, err := svc.Create(ctx, feeds.CreateFeedRequest{
		Title:    "First post",
		Content:  "body",
		Summary:  "hand written",
		AuthorID: uuid.MustParse("00000000-0000-0000-0000-0000000000aa"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Summary != "hand written" {
		t.Fatalf("expected explicit summary, got %q", created.Summary)
	}
}

func TestService_Create_AliasConflict(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	author := uuid.MustParse("00000000-0000-0000-0000-0000000000aa")

	_, err := svc.Create(ctx, feeds.CreateFeedRequest{
		Title: "one", Content: "body", Alias: "hello-world", AuthorID: author,
	})
	if err != nil {
		t.Fatalf("Create initial: %v", err)
	}

	_, err = svc.Create(ctx, feeds.CreateFeedRequest{
		Title: "two", Content: "body", Alias: "hello-world", AuthorID: author,
	})
	if !errors.Is(err, feeds.ErrAliasExists) {
		t.Fatalf("expected ErrAliasExists, got %v", err)
	}
}

func TestService_Create_NormalizesAlias(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	created, err := svc.Create(ctx, feeds.CreateFeedRequest{
		Title:    "one",
		Content:  "body",
		Alias:    "  Hello World!  ",
		AuthorID: uuid.MustParse("00000000-0000-0000-0000-0000000000aa"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Alias == nil || *created.Alias != "hello-world" {
		t.Fatalf("expected normalized alias, got %v", created.Alias)
	}
}

func TestService_Create_ResolvesTags(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	created, err := svc.Create(ctx, feeds.CreateFeedRequest{
		Title:    "tagged",
		Content:  "body",
		Tags:     []string{"go", "blog", "go"},
		AuthorID: uuid.MustParse("00000000-0000-0000-0000-0000000000aa"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	names := created.TagNames()
	if len(names) != 2 || names[0] != "go" || names[1] != "blog" {
		t.Fatalf("expected deduped tags [go blog], got %v", names)
	}
}

func TestService_Update_PartialFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	author := uuid.MustParse("00000000-0000-0000-0000-0000000000aa")

	created, err := svc.Create(ctx, feeds.CreateFeedRequest{
		Title:    "original",
		Content:  "original body",
		Summary:  "original summary",
		Tags:     []string{"go"},
		AuthorID: author,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	title := "renamed"
	updated, err := svc.Update(ctx, feeds.UpdateFeedRequest{
		ID:    created.ID,
		Title: &title,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "renamed" {
		t.Fatalf("expected renamed title, got %q", updated.Title)
	}
	if updated.Content != "original body" {
		t.Fatalf("content should be untouched, got %q", updated.Content)
	}
	if len(updated.TagNames()) != 1 {
		t.Fatalf("nil Tags should keep existing tags, got %v", updated.TagNames())
	}
}

func TestService_Update_ClearsTagsWithEmptySlice(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	created, err := svc.Create(ctx, feeds.CreateFeedRequest{
		Title:    "tagged",
		Content:  "body",
		Tags:     []string{"go", "blog"},
		AuthorID: uuid.MustParse("00000000-0000-0000-0000-0000000000aa"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(ctx, feeds.UpdateFeedRequest{
		ID:   created.ID,
		Tags: []string{},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(updated.TagNames()) != 0 {
		t.Fatalf("empty Tags should clear tags, got %v", updated.TagNames())
	}
}

func TestService_Update_RejectsEmptyTitle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	created, err := svc.Create(ctx, feeds.CreateFeedRequest{
		Title:    "original",
		Content:  "body",
		AuthorID: uuid.MustParse("00000000-0000-0000-0000-0000000000aa"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	empty := "   "
	_, err = svc.Update(ctx, feeds.UpdateFeedRequest{ID: created.ID, Title: &empty})
	if !errors.Is(err, feeds.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
}

func TestService_Resolve_ByIDAndAlias(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	created, err := svc.Create(ctx, feeds.CreateFeedRequest{
		Title:    "resolvable",
		Content:  "body",
		Alias:    "resolvable",
		AuthorID: uuid.MustParse("00000000-0000-0000-0000-0000000000aa"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	byID, err := svc.Resolve(ctx, created.ID.String())
	if err != nil {
		t.Fatalf("Resolve by id: %v", err)
	}
	if byID.ID != created.ID {
		t.Fatalf("resolve by id returned wrong feed")
	}

	byAlias, err := svc.Resolve(ctx, "resolvable")
	if err != nil {
		t.Fatalf("Resolve by alias: %v", err)
	}
	if byAlias.ID != created.ID {
		t.Fatalf("resolve by alias returned wrong feed")
	}
}

func TestService_Resolve_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.Resolve(ctx, "missing")
	var notFound *feeds.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestService_List_HidesDraftsByDefault(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	author := uuid.MustParse("00000000-0000-0000-0000-0000000000aa")

	if _, err := svc.Create(ctx, feeds.CreateFeedRequest{
		Title: "published", Content: "body", Listed: true, AuthorID: author,
	}); err != nil {
		t.Fatalf("Create published: %v", err)
	}
	if _, err := svc.Create(ctx, feeds.CreateFeedRequest{
		Title: "draft", Content: "body", Draft: true, Listed: true, AuthorID: author,
	}); err != nil {
		t.Fatalf("Create draft: %v", err)
	}
	if _, err := svc.Create(ctx, feeds.CreateFeedRequest{
		Title: "secret", Content: "body", AuthorID: author,
	}); err != nil {
		t.Fatalf("Create unlisted: %v", err)
	}

	visible, err := svc.List(ctx, feeds.ListFeedsRequest{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(visible) != 1 || visible[0].Title != "published" {
		t.Fatalf("expected only the published listed feed, got %d", len(visible))
	}

	all, err := svc.List(ctx, feeds.ListFeedsRequest{IncludeDrafts: true, IncludeUnlisted: true})
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 feeds, got %d", len(all))
	}
}

func TestService_List_FiltersByTag(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	author := uuid.MustParse("00000000-0000-0000-0000-0000000000aa")

	if _, err := svc.Create(ctx, feeds.CreateFeedRequest{
		Title: "go post", Content: "body", Listed: true, Tags: []string{"go"}, AuthorID: author,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, feeds.CreateFeedRequest{
		Title: "misc post", Content: "body", Listed: true, Tags: []string{"misc"}, AuthorID: author,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	matched, err := svc.List(ctx, feeds.ListFeedsRequest{Tag: "GO"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(matched) != 1 || matched[0].Title != "go post" {
		t.Fatalf("expected tag filter to match go post, got %d", len(matched))
	}
}

func TestService_Delete_SoftHidesFeed(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	created, err := svc.Create(ctx, feeds.CreateFeedRequest{
		Title:    "short lived",
		Content:  "body",
		AuthorID: uuid.MustParse("00000000-0000-0000-0000-0000000000aa"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, feeds.DeleteFeedRequest{ID: created.ID}); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, err = svc.Get(ctx, created.ID)
	var notFound *feeds.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError after delete, got %v", err)
	}
}

func TestService_Tags_CountsVisibleFeeds(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	author := uuid.MustParse("00000000-0000-0000-0000-0000000000aa")

	for _, title := range []string{"a", "b"} {
		if _, err := svc.Create(ctx, feeds.CreateFeedRequest{
			Title: title, Content: "body", Listed: true, Tags: []string{"go"}, AuthorID: author,
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if _, err := svc.Create(ctx, feeds.CreateFeedRequest{
		Title: "hidden", Content: "body", Draft: true, Listed: true, Tags: []string{"go"}, AuthorID: author,
	}); err != nil {
		t.Fatalf("Create draft: %v", err)
	}
	if _, err := svc.Create(ctx, feeds.CreateFeedRequest{
		Title: "backstage", Content: "body", Tags: []string{"go"}, AuthorID: author,
	}); err != nil {
		t.Fatalf("Create unlisted: %v", err)
	}

	counts, err := svc.Tags(ctx)
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if len(counts) != 1 || counts[0].Name != "go" || counts[0].Count != 2 {
		t.Fatalf("expected go tag counted twice, got %+v", counts)
	}
}
