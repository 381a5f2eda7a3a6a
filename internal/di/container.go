package di

import (
	"strings"

	"github.com/goliatone/go-blog/comments"
	"github.com/goliatone/go-blog/feeds"
	internalcomments "github.com/goliatone/go-blog/internal/comments"
	internalfeeds "github.com/goliatone/go-blog/internal/feeds"
	bloghttp "github.com/goliatone/go-blog/internal/http"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	internalobjects "github.com/goliatone/go-blog/internal/objects"
	"github.com/goliatone/go-blog/internal/rss"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/internal/storageconfig"
	internalusers "github.com/goliatone/go-blog/internal/users"
	"github.com/goliatone/go-blog/objects"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/goliatone/go-blog/users"
	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"
)

// Container wires module dependencies. Defaults favour in-memory
// repositories; a bun database swaps in persistent ones.
type Container struct {
	Config runtimeconfig.Config

	bunDB          *bun.DB
	loggerProvider interfaces.LoggerProvider
	cacheService   repocache.CacheService
	keySerializer  repocache.KeySerializer
	routeManager   *urlkit.RouteManager

	feedRepo    internalfeeds.FeedRepository
	tagRepo     internalfeeds.TagRepository
	commentRepo internalcomments.CommentRepository
	userRepo    internalusers.UserRepository
	objectRepo  internalobjects.ObjectRepository

	objectProvider interfaces.ObjectProvider
	presigner      interfaces.ObjectPresigner
	oauth          internalusers.OAuthClient
	tokens         interfaces.TokenIssuer

	feedSvc     feeds.Service
	commentSvc  comments.Service
	userSvc     users.Service
	objectSvc   objects.Service
	markdownSvc interfaces.MarkdownService
	seoSvc      *rss.Service
	api         *bloghttp.API
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB injects an already-open database connection.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithLoggerProvider overrides the default go-logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithCache overrides the repository cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithRouteManager overrides the canonical URL route manager.
func WithRouteManager(manager *urlkit.RouteManager) Option {
	return func(c *Container) {
		c.routeManager = manager
	}
}

// WithObjectProvider overrides the blob store backing object storage.
func WithObjectProvider(provider interfaces.ObjectProvider) Option {
	return func(c *Container) {
		c.objectProvider = provider
	}
}

// WithPresigner overrides the signed URL generator for stored objects.
func WithPresigner(presigner interfaces.ObjectPresigner) Option {
	return func(c *Container) {
		c.presigner = presigner
	}
}

// WithOAuthClient overrides the GitHub OAuth client, typically with a stub.
func WithOAuthClient(client internalusers.OAuthClient) Option {
	return func(c *Container) {
		c.oauth = client
	}
}

// WithTokenIssuer overrides the session token issuer.
func WithTokenIssuer(issuer interfaces.TokenIssuer) Option {
	return func(c *Container) {
		c.tokens = issuer
	}
}

// WithFeedService overrides the assembled feed service.
func WithFeedService(svc feeds.Service) Option {
	return func(c *Container) {
		c.feedSvc = svc
	}
}

// WithCommentService overrides the assembled comment service.
func WithCommentService(svc comments.Service) Option {
	return func(c *Container) {
		c.commentSvc = svc
	}
}

// WithUserService overrides the assembled user service.
func WithUserService(svc users.Service) Option {
	return func(c *Container) {
		c.userSvc = svc
	}
}

// WithObjectService overrides the assembled object storage service.
func WithObjectService(svc objects.Service) Option {
	return func(c *Container) {
		c.objectSvc = svc
	}
}

// WithMarkdownService overrides the markdown rendering service.
func WithMarkdownService(svc interfaces.MarkdownService) Option {
	return func(c *Container) {
		c.markdownSvc = svc
	}
}

// NewContainer validates cfg and assembles every enabled service. Options
// apply before assembly so overrides win over defaults.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:      cfg,
		feedRepo:    internalfeeds.NewMemoryFeedRepository(),
		tagRepo:     internalfeeds.NewMemoryTagRepository(),
		commentRepo: internalcomments.NewMemoryCommentRepository(),
		userRepo:    internalusers.NewMemoryUserRepository(),
		objectRepo:  internalobjects.NewMemoryObjectRepository(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if err := c.configureDatabase(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureRoutes()
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	if err := c.configureAuth(); err != nil {
		return nil, err
	}
	if err := c.configureServices(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	logCfg := c.Config.Logging
	format := logCfg.Format
	if strings.EqualFold(logCfg.Provider, "console") {
		format = "console"
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     logCfg.Level,
		Format:    format,
		AddSource: logCfg.AddSource,
		Focus:     logCfg.Focus,
	})
	if err != nil {
		return err
	}

	c.loggerProvider = provider
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cacheCfg := repocache.DefaultConfig()
		if c.Config.Cache.TTL > 0 {
			cacheCfg.TTL = c.Config.Cache.TTL
		}
		service, err := repocache.NewCacheService(cacheCfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}

	c.feedRepo = internalfeeds.NewBunFeedRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.tagRepo = internalfeeds.NewBunTagRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.commentRepo = internalcomments.NewBunCommentRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.userRepo = internalusers.NewBunUserRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.objectRepo = internalobjects.NewBunObjectRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

func (c *Container) configureRoutes() {
	if c.routeManager != nil {
		return
	}

	routeCfg := c.Config.RouteConfig
	if routeCfg == nil {
		routeCfg = &urlkit.Config{
			Groups: []urlkit.GroupConfig{
				{
					Name:    "site",
					BaseURL: strings.TrimRight(c.Config.Site.BaseURL, "/"),
					Paths: map[string]string{
						"home":    "/",
						"feed":    "/feed/:ref",
						"rss":     "/rss",
						"sitemap": "/sitemap.xml",
					},
				},
			},
		}
	}

	c.routeManager = urlkit.NewRouteManager(routeCfg)
}

func (c *Container) configureStorage() error {
	if !c.Config.Features.Storage {
		return nil
	}

	storageCfg := c.Config.Storage
	provider := storageCfg.Provider
	root := storageCfg.Root
	baseURL := storageCfg.BaseURL

	if len(storageCfg.Profile) > 0 {
		profile, err := storageconfig.ParseProfile(storageCfg.Profile)
		if err != nil {
			return err
		}
		provider = profile.Provider
		if profile.Root != "" {
			root = profile.Root
		}
		if profile.BaseURL != "" {
			baseURL = profile.BaseURL
		}
	}

	if baseURL == "" {
		baseURL = strings.TrimRight(c.Config.Site.BaseURL, "/") + "/objects"
	}

	if c.objectProvider == nil {
		switch provider {
		case "memory":
			c.objectProvider = internalobjects.NewMemoryProvider(baseURL)
		default:
			fsProvider, err := internalobjects.NewFSProvider(root, baseURL)
			if err != nil {
				return err
			}
			c.objectProvider = fsProvider
		}
	}

	if c.presigner == nil && c.Config.Session.Secret != "" {
		signer, err := internalobjects.NewURLSigner([]byte(c.Config.Session.Secret), baseURL)
		if err != nil {
			return err
		}
		c.presigner = signer
	}

	return nil
}

func (c *Container) configureAuth() error {
	if c.tokens == nil {
		issuer, err := internalusers.NewHMACTokenIssuer(
			[]byte(c.Config.Session.Secret),
			internalusers.WithTokenTTL(c.Config.Session.TTL),
		)
		if err != nil {
			return err
		}
		c.tokens = issuer
	}

	if c.oauth == nil {
		c.oauth = internalusers.NewGithubClient(internalusers.GithubConfig{
			ClientID:     c.Config.Github.ClientID,
			ClientSecret: c.Config.Github.ClientSecret,
			RedirectURL:  c.Config.Github.RedirectURL,
		}, nil)
	}

	return nil
}

func (c *Container) configureServices() error {
	cfg := c.Config

	if c.feedSvc == nil {
		c.feedSvc = internalfeeds.NewService(
			c.feedRepo,
			c.tagRepo,
			internalfeeds.WithLogger(logging.FeedsLogger(c.loggerProvider)),
			internalfeeds.WithSummaryBudget(cfg.Feeds.SummaryBudget),
			internalfeeds.WithAutoSummary(cfg.Feeds.AutoSummary),
		)
	}

	if c.commentSvc == nil && cfg.Features.Comments {
		c.commentSvc = internalcomments.NewService(
			c.commentRepo,
			c.feedSvc,
			internalcomments.WithLogger(logging.CommentsLogger(c.loggerProvider)),
		)
	}

	if c.userSvc == nil {
		c.userSvc = internalusers.NewService(
			c.userRepo,
			c.oauth,
			c.tokens,
			internalusers.WithLogger(logging.UsersLogger(c.loggerProvider)),
		)
	}

	if c.objectSvc == nil && cfg.Features.Storage && c.objectProvider != nil {
		objectOpts := []internalobjects.ServiceOption{
			internalobjects.WithLogger(logging.ObjectsLogger(c.loggerProvider)),
		}
		if c.presigner != nil {
			objectOpts = append(objectOpts, internalobjects.WithPresigner(c.presigner))
		}
		c.objectSvc = internalobjects.NewService(c.objectProvider, c.objectRepo, objectOpts...)
	}

	if c.markdownSvc == nil && cfg.Features.Markdown {
		c.markdownSvc = markdown.NewService(interfaces.RenderOptions{
			HighlightStyle: cfg.Markdown.HighlightStyle,
			SafeMode:       cfg.Markdown.SafeMode,
			VideoEmbeds:    cfg.Markdown.VideoEmbeds,
			ImageLightbox:  cfg.Markdown.ImageLightbox,
		}, markdown.WithLogger(logging.MarkdownLogger(c.loggerProvider)))
	}

	if c.seoSvc == nil && cfg.Features.RSS {
		seo, err := rss.NewService(c.feedSvc, rss.Config{
			Title:       cfg.Site.Title,
			Description: cfg.Site.Description,
			Language:    cfg.Site.Language,
			Routes:      c.routeManager,
		}, rss.WithLogger(logging.ModuleLogger(c.loggerProvider, "blog.rss")))
		if err != nil {
			return err
		}
		c.seoSvc = seo
	}

	apiOpts := []bloghttp.Option{
		bloghttp.WithBasePath(cfg.HTTP.BasePath),
		bloghttp.WithFeedService(c.feedSvc),
		bloghttp.WithUserService(c.userSvc),
		bloghttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
		bloghttp.WithSecureCookies(cfg.Session.SecureCookies),
	}
	if c.commentSvc != nil {
		apiOpts = append(apiOpts, bloghttp.WithCommentService(c.commentSvc))
	}
	if c.objectSvc != nil {
		apiOpts = append(apiOpts, bloghttp.WithObjectService(c.objectSvc))
	}
	if c.seoSvc != nil {
		apiOpts = append(apiOpts, bloghttp.WithSEOService(c.seoSvc))
	}
	c.api = bloghttp.NewAPI(apiOpts...)

	return nil
}

// DB exposes the configured database handle; nil for memory deployments.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// LoggerProvider returns the configured logger provider, possibly nil.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// RouteManager returns the canonical URL route manager.
func (c *Container) RouteManager() *urlkit.RouteManager {
	return c.routeManager
}

// FeedService returns the configured feed service.
func (c *Container) FeedService() feeds.Service {
	return c.feedSvc
}

// CommentService returns the comment service; nil when comments are disabled.
func (c *Container) CommentService() comments.Service {
	return c.commentSvc
}

// UserService returns the configured user service.
func (c *Container) UserService() users.Service {
	return c.userSvc
}

// ObjectService returns the object storage service; nil when storage is
// disabled.
func (c *Container) ObjectService() objects.Service {
	return c.objectSvc
}

// MarkdownService returns the renderer; nil when markdown is disabled.
func (c *Container) MarkdownService() interfaces.MarkdownService {
	return c.markdownSvc
}

// SEOService returns the RSS and sitemap generator; nil when RSS is disabled.
func (c *Container) SEOService() *rss.Service {
	return c.seoSvc
}

// API returns the HTTP adapter wired against the assembled services.
func (c *Container) API() *bloghttp.API {
	return c.api
}
