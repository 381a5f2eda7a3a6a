package blog

import (
	"github.com/goliatone/go-blog/comments"
	"github.com/goliatone/go-blog/feeds"
	"github.com/goliatone/go-blog/internal/di"
	bloghttp "github.com/goliatone/go-blog/internal/http"
	"github.com/goliatone/go-blog/internal/rss"
	"github.com/goliatone/go-blog/objects"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/goliatone/go-blog/users"
	"github.com/uptrace/bun"
)

// FeedService exports the feed service contract for consumers of the blog package.
type FeedService = feeds.Service

// CommentService exports the comment service contract.
type CommentService = comments.Service

// UserService exports the user service contract.
type UserService = users.Service

// ObjectService exports the object storage service contract.
type ObjectService = objects.Service

// MarkdownService exports the markdown rendering contract.
type MarkdownService = interfaces.MarkdownService

// Module represents the top level blog runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a blog module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Feeds returns the configured feed service.
func (m *Module) Feeds() FeedService {
	return m.container.FeedService()
}

// Comments returns the comment service, nil when the feature is disabled.
func (m *Module) Comments() CommentService {
	return m.container.CommentService()
}

// Users returns the configured user service.
func (m *Module) Users() UserService {
	return m.container.UserService()
}

// Objects returns the object storage service, nil when the feature is disabled.
func (m *Module) Objects() ObjectService {
	return m.container.ObjectService()
}

// Markdown returns the markdown renderer, nil when the feature is disabled.
func (m *Module) Markdown() MarkdownService {
	return m.container.MarkdownService()
}

// SEO returns the RSS, sitemap and robots generator, nil when RSS is disabled.
func (m *Module) SEO() *rss.Service {
	return m.container.SEOService()
}

// API returns the HTTP adapter wired against the module services.
func (m *Module) API() *bloghttp.API {
	return m.container.API()
}

// DB returns the database handle, nil for memory deployments.
func (m *Module) DB() *bun.DB {
	return m.container.DB()
}
