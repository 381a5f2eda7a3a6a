package markdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/feeds"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

var (
	ErrFeedServiceRequired = errors.New("markdown importer: feed service is required")
	ErrAuthorRequired      = errors.New("markdown importer: author id is required")
)

// ImporterConfig encapsulates dependencies required to persist markdown
// documents as feeds.
type ImporterConfig struct {
	Feeds    feeds.Service
	AuthorID uuid.UUID
	Logger   interfaces.Logger
}

// Importer turns markdown files with frontmatter into feed entries. Files are
// keyed by alias (frontmatter alias, falling back to the file name), so
// re-importing a file updates the existing entry instead of duplicating it.
type Importer struct {
	feeds    feeds.Service
	authorID uuid.UUID
	logger   interfaces.Logger
}

// ImportResult summarises one importer run.
type ImportResult struct {
	Created []string
	Updated []string
	Skipped []string
}

func NewImporter(cfg ImporterConfig) (*Importer, error) {
	if cfg.Feeds == nil {
		return nil, ErrFeedServiceRequired
	}
	if cfg.AuthorID == uuid.Nil {
		return nil, ErrAuthorRequired
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{
		feeds:    cfg.Feeds,
		authorID: cfg.AuthorID,
		logger:   logger,
	}, nil
}

// ImportFile imports a single markdown file from disk.
func (i *Importer) ImportFile(ctx context.Context, path string) (*feeds.Feed, bool, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("markdown importer: read %s: %w", path, err)
	}
	return i.ImportDocument(ctx, filepath.Base(path), source)
}

// ImportDocument imports one markdown source. The boolean reports whether a
// new feed was created rather than an existing one updated.
func (i *Importer) ImportDocument(ctx context.Context, filename string, source []byte) (*feeds.Feed, bool, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, false, err
	}

	alias := strings.TrimSpace(meta.Alias)
	if alias == "" {
		alias = strings.TrimSuffix(filename, filepath.Ext(filename))
	}
	alias, err = feeds.NormalizeAlias(alias)
	if err != nil {
		return nil, false, fmt.Errorf("markdown importer: alias for %s: %w", filename, err)
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = deriveTitle(body, alias)
	}

	existing, err := i.feeds.GetByAlias(ctx, alias)
	if err != nil {
		var notFound *feeds.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, false, err
		}
		created, err := i.createFeed(ctx, alias, title, meta, body)
		if err != nil {
			return nil, false, err
		}
		i.logger.Info("import.created", "alias", alias, "feed_id", created.ID.String())
		return created, true, nil
	}

	updated, err := i.updateFeed(ctx, existing, title, meta, body)
	if err != nil {
		return nil, false, err
	}
	i.logger.Info("import.updated", "alias", alias, "feed_id", updated.ID.String())
	return updated, false, nil
}

// ImportDirectory imports every .md file in dir, not recursing.
func (i *Importer) ImportDirectory(ctx context.Context, dir string) (*ImportResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("markdown importer: read dir %s: %w", dir, err)
	}

	result := &ImportResult{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".md") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		feed, created, err := i.ImportFile(ctx, path)
		if err != nil {
			i.logger.Warn("import.skipped", "file", entry.Name(), "error", err)
			result.Skipped = append(result.Skipped, entry.Name())
			continue
		}
		ref := entry.Name()
		if feed.Alias != nil {
			ref = *feed.Alias
		}
		if created {
			result.Created = append(result.Created, ref)
		} else {
			result.Updated = append(result.Updated, ref)
		}
	}
	return result, nil
}

func (i *Importer) createFeed(ctx context.Context, alias, title string, meta FeedFrontMatter, body []byte) (*feeds.Feed, error) {
	req := feeds.CreateFeedRequest{
		Title:    title,
		Content:  string(body),
		Summary:  meta.Summary,
		Alias:    alias,
		Tags:     meta.Tags,
		Draft:    meta.Draft,
		Listed:   meta.IsListed(),
		AuthorID: i.authorID,
	}
	if !meta.Date.IsZero() {
		date := meta.Date
		req.CreatedAt = &date
	}
	return i.feeds.Create(ctx, req)
}

func (i *Importer) updateFeed(ctx context.Context, existing *feeds.Feed, title string, meta FeedFrontMatter, body []byte) (*feeds.Feed, error) {
	content := string(body)
	listed := meta.IsListed()
	draft := meta.Draft
	req := feeds.UpdateFeedRequest{
		ID:      existing.ID,
		Title:   &title,
		Content: &content,
		Draft:   &draft,
		Listed:  &listed,
	}
	if summary := strings.TrimSpace(meta.Summary); summary != "" {
		req.Summary = &summary
	}
	if meta.Tags != nil {
		req.Tags = meta.Tags
	}
	if !meta.Date.IsZero() {
		date := meta.Date
		req.CreatedAt = &date
	}
	return i.feeds.Update(ctx, req)
}

// deriveTitle falls back to the first heading line, then the alias.
func deriveTitle(body []byte, alias string) string {
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if trimmed := strings.TrimLeft(line, "# "); strings.HasPrefix(line, "#") && trimmed != "" {
			return trimmed
		}
		break
	}
	return alias
}
