package rss

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-blog/feeds"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

var (
	ErrFeedServiceRequired = errors.New("rss: feed service is required")
	ErrRoutesRequired      = errors.New("rss: route manager is required")
)

const defaultMaxItems = 50

// Config describes the site the syndication documents are generated for.
// Routes must define the configured group with "home", "feed" and "sitemap"
// routes; the feed route takes a :ref parameter holding the alias or id.
type Config struct {
	Title       string
	Description string
	Language    string
	Routes      *urlkit.RouteManager
	Group       string
	FeedRoute   string
	MaxItems    int
}

// Service renders the RSS channel, the sitemap and robots.txt from the
// visible feed listing. Drafts and unlisted feeds never appear.
type Service struct {
	feeds  feeds.Service
	cfg    Config
	logger interfaces.Logger
}

type ServiceOption func(*Service)

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(feedSvc feeds.Service, cfg Config, opts ...ServiceOption) (*Service, error) {
	if feedSvc == nil {
		return nil, ErrFeedServiceRequired
	}
	if cfg.Routes == nil {
		return nil, ErrRoutesRequired
	}
	if cfg.Group == "" {
		cfg.Group = "site"
	}
	if cfg.FeedRoute == "" {
		cfg.FeedRoute = "feed"
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = defaultMaxItems
	}

	s := &Service{
		feeds:  feedSvc,
		cfg:    cfg,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Channel renders the RSS 2.0 document for the visible feeds, newest first.
func (s *Service) Channel(ctx context.Context) ([]byte, error) {
	entries, err := s.visibleFeeds(ctx)
	if err != nil {
		return nil, err
	}

	homeURL, err := s.routeURL("home", nil)
	if err != nil {
		return nil, err
	}

	channel := rssChannel{
		Title:       s.cfg.Title,
		Link:        homeURL,
		Description: s.cfg.Description,
		Language:    s.cfg.Language,
	}

	for _, feed := range entries {
		link, err := s.feedURL(feed)
		if err != nil {
			s.logger.Warn("rss.item.skipped", "feed_id", feed.ID.String(), "error", err)
			continue
		}
		item := rssItem{
			Title:       feed.Title,
			Link:        link,
			Description: feed.Summary,
			GUID:        rssGUID{IsPermaLink: true, Value: link},
			PubDate:     feed.CreatedAt.UTC().Format(time.RFC1123Z),
		}
		for _, tag := range feed.Tags {
			item.Categories = append(item.Categories, tag.Name)
		}
		channel.Items = append(channel.Items, item)
	}

	if len(channel.Items) > 0 {
		channel.LastBuildDate = channel.Items[0].PubDate
	}

	return encodeRSS(channel)
}

// Sitemap renders sitemap.xml, one canonical URL per visible feed plus the
// site root.
func (s *Service) Sitemap(ctx context.Context) ([]byte, error) {
	entries, err := s.visibleFeeds(ctx)
	if err != nil {
		return nil, err
	}

	homeURL, err := s.routeURL("home", nil)
	if err != nil {
		return nil, err
	}

	urls := []sitemapURL{{Loc: homeURL}}
	for _, feed := range entries {
		link, err := s.feedURL(feed)
		if err != nil {
			continue
		}
		lastMod := feed.CreatedAt
		if feed.UpdatedAt.After(lastMod) {
			lastMod = feed.UpdatedAt
		}
		urls = append(urls, sitemapURL{
			Loc:     link,
			LastMod: lastMod.UTC().Format("2006-01-02"),
		})
	}

	return encodeSitemap(urls)
}

// Robots returns robots.txt allowing everything and pointing crawlers at
// the sitemap.
func (s *Service) Robots() ([]byte, error) {
	sitemapURL, err := s.routeURL("sitemap", nil)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s\n", sitemapURL)), nil
}

func (s *Service) visibleFeeds(ctx context.Context) ([]*feeds.Feed, error) {
	entries, err := s.feeds.List(ctx, feeds.ListFeedsRequest{Limit: s.cfg.MaxItems})
	if err != nil {
		return nil, fmt.Errorf("rss: list feeds: %w", err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (s *Service) feedURL(feed *feeds.Feed) (string, error) {
	ref := feed.ID.String()
	if feed.Alias != nil && *feed.Alias != "" {
		ref = *feed.Alias
	}
	return s.routeURL(s.cfg.FeedRoute, map[string]any{"ref": ref})
}

func (s *Service) routeURL(route string, params map[string]any) (url string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("rss: route %q: %v", route, rec)
		}
	}()

	builder := s.cfg.Routes.Group(s.cfg.Group).Builder(route)
	for key, val := range params {
		builder.WithParam(key, val)
	}
	return builder.Build()
}
