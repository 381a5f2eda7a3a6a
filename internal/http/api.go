package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-blog/comments"
	"github.com/goliatone/go-blog/feeds"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/rss"
	"github.com/goliatone/go-blog/objects"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/goliatone/go-blog/users"
)

// SessionCookieName carries the signed session token between requests.
const SessionCookieName = "blog_session"

const stateCookieName = "blog_oauth_state"

// API registers the blog endpoints on a stdlib mux.
type API struct {
	basePath string
	feeds    feeds.Service
	comments comments.Service
	users    users.Service
	objects  objects.Service
	seo      *rss.Service
	logger   interfaces.Logger

	secureCookies bool
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API instance.
func NewAPI(opts ...Option) *API {
	api := &API{
		basePath: "/",
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the mount point (defaults to "/").
func WithBasePath(path string) Option {
	return func(api *API) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithFeedService wires the feed service.
func WithFeedService(service feeds.Service) Option {
	return func(api *API) {
		api.feeds = service
	}
}

// WithCommentService wires the comment service.
func WithCommentService(service comments.Service) Option {
	return func(api *API) {
		api.comments = service
	}
}

// WithUserService wires the account service.
func WithUserService(service users.Service) Option {
	return func(api *API) {
		api.users = service
	}
}

// WithObjectService wires the object storage service.
func WithObjectService(service objects.Service) Option {
	return func(api *API) {
		api.objects = service
	}
}

// WithSEOService wires the syndication service.
func WithSEOService(service *rss.Service) Option {
	return func(api *API) {
		api.seo = service
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// WithSecureCookies marks session cookies Secure. Enable behind TLS.
func WithSecureCookies(secure bool) Option {
	return func(api *API) {
		api.secureCookies = secure
	}
}

// Register attaches every endpoint to the provided mux.
func (api *API) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: api is nil")
	}

	base := joinPath(api.basePath, "")

	api.registerFeedRoutes(mux, base)
	api.registerCommentRoutes(mux, base)
	api.registerStorageRoutes(mux, base)
	api.registerUserRoutes(mux, base)
	api.registerSEORoutes(mux, base)

	return nil
}
