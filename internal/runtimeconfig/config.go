package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

// Validation failures are sentinel errors so hosts can branch on them.
var ErrSiteTitleRequired = errors.New("blog config: site title is required")
var ErrSiteBaseURLRequired = errors.New("blog config: site base url is required")
var ErrDatabaseDriverUnknown = errors.New("blog config: database driver is invalid")
var ErrDatabaseDSNRequired = errors.New("blog config: database dsn is required")
var ErrStorageProviderUnknown = errors.New("blog config: storage provider is invalid")
var ErrStorageRootRequired = errors.New("blog config: storage root is required for the fs provider")
var ErrSessionSecretRequired = errors.New("blog config: session secret is required")
var ErrSessionTTLInvalid = errors.New("blog config: session ttl must be positive")
var ErrGithubClientRequired = errors.New("blog config: github client id and secret are required")
var ErrLoggingProviderRequired = errors.New("blog config: logging provider is required when logging is enabled")
var ErrLoggingProviderUnknown = errors.New("blog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("blog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")
var ErrSummaryBudgetInvalid = errors.New("blog config: summary budget must be positive")

// Config aggregates adapter bindings for the blog module. Fields use simple
// types so host applications can populate them from their own config layer.
type Config struct {
	Site     SiteConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Github   GithubConfig
	Session  SessionConfig
	Feeds    FeedConfig
	Cache    CacheConfig
	Markdown MarkdownConfig
	Commands CommandsConfig
	HTTP     HTTPConfig
	Logging  LoggingConfig
	Features Features

	// RouteConfig feeds the go-urlkit manager used for canonical URLs.
	RouteConfig *urlkit.Config
}

// SiteConfig identifies the published site.
type SiteConfig struct {
	Title       string
	Description string
	Language    string
	BaseURL     string
}

// DatabaseConfig selects the bun dialect and connection string.
type DatabaseConfig struct {
	Driver string
	DSN    string
}

// StorageConfig selects the object storage backend.
type StorageConfig struct {
	Provider string
	Root     string
	BaseURL  string
	// Profile optionally points at a JSON document validated against the
	// storage profile schema before the provider boots.
	Profile map[string]any
}

// GithubConfig carries the OAuth application credentials.
type GithubConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// SessionConfig controls session token minting.
type SessionConfig struct {
	Secret        string
	TTL           time.Duration
	SecureCookies bool
}

// FeedConfig tunes feed behaviour.
type FeedConfig struct {
	SummaryBudget int
	AutoSummary   bool
}

// CacheConfig controls the repository read-through cache.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// MarkdownConfig wires the markdown importer and renderer.
type MarkdownConfig struct {
	ContentDir     string
	HighlightStyle string
	SafeMode       bool
	VideoEmbeds    bool
	ImageLightbox  bool
}

// CommandsConfig tunes the command handler foundation.
type CommandsConfig struct {
	Timeout time.Duration
}

// HTTPConfig controls the HTTP adapter.
type HTTPConfig struct {
	Addr     string
	BasePath string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles optional functionality.
type Features struct {
	Comments bool
	Storage  bool
	RSS      bool
	Markdown bool
	Logger   bool
}

// DefaultConfig returns a configuration with conservative defaults: sqlite
// on disk, filesystem storage, every feature enabled.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Title:    "Blog",
			Language: "en-us",
			BaseURL:  "http://localhost:8080",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "file:blog.db?cache=shared&_fk=1",
		},
		Storage: StorageConfig{
			Provider: "fs",
			Root:     "data/objects",
		},
		Session: SessionConfig{
			TTL: 30 * 24 * time.Hour,
		},
		Feeds: FeedConfig{
			SummaryBudget: 150,
			AutoSummary:   true,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Minute,
		},
		Markdown: MarkdownConfig{
			HighlightStyle: "github",
			VideoEmbeds:    true,
			ImageLightbox:  true,
		},
		Commands: CommandsConfig{
			Timeout: 30 * time.Second,
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
		Features: Features{
			Comments: true,
			Storage:  true,
			RSS:      true,
			Markdown: true,
			Logger:   true,
		},
	}
}

// Validate checks internal consistency before the container boots.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Site.Title) == "" {
		return ErrSiteTitleRequired
	}
	if cfg.Features.RSS && strings.TrimSpace(cfg.Site.BaseURL) == "" {
		return ErrSiteBaseURLRequired
	}

	switch normalize(cfg.Database.Driver) {
	case "sqlite", "postgres", "memory":
	default:
		return fmt.Errorf("%w: %s", ErrDatabaseDriverUnknown, cfg.Database.Driver)
	}
	if normalize(cfg.Database.Driver) != "memory" && strings.TrimSpace(cfg.Database.DSN) == "" {
		return ErrDatabaseDSNRequired
	}

	if cfg.Features.Storage {
		switch normalize(cfg.Storage.Provider) {
		case "fs":
			if strings.TrimSpace(cfg.Storage.Root) == "" {
				return ErrStorageRootRequired
			}
		case "memory":
		default:
			return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
		}
	}

	if strings.TrimSpace(cfg.Session.Secret) == "" {
		return ErrSessionSecretRequired
	}
	if cfg.Session.TTL <= 0 {
		return ErrSessionTTLInvalid
	}
	if strings.TrimSpace(cfg.Github.ClientID) == "" || strings.TrimSpace(cfg.Github.ClientSecret) == "" {
		return ErrGithubClientRequired
	}

	if cfg.Feeds.SummaryBudget <= 0 {
		return ErrSummaryBudgetInvalid
	}

	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
