package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

var (
	ErrSiteTitleRequired       = runtimeconfig.ErrSiteTitleRequired
	ErrSiteBaseURLRequired     = runtimeconfig.ErrSiteBaseURLRequired
	ErrDatabaseDriverUnknown   = runtimeconfig.ErrDatabaseDriverUnknown
	ErrDatabaseDSNRequired     = runtimeconfig.ErrDatabaseDSNRequired
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageRootRequired     = runtimeconfig.ErrStorageRootRequired
	ErrSessionSecretRequired   = runtimeconfig.ErrSessionSecretRequired
	ErrSessionTTLInvalid       = runtimeconfig.ErrSessionTTLInvalid
	ErrGithubClientRequired    = runtimeconfig.ErrGithubClientRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrSummaryBudgetInvalid    = runtimeconfig.ErrSummaryBudgetInvalid
)

type (
	Config         = runtimeconfig.Config
	SiteConfig     = runtimeconfig.SiteConfig
	DatabaseConfig = runtimeconfig.DatabaseConfig
	StorageConfig  = runtimeconfig.StorageConfig
	GithubConfig   = runtimeconfig.GithubConfig
	SessionConfig  = runtimeconfig.SessionConfig
	FeedConfig     = runtimeconfig.FeedConfig
	CacheConfig    = runtimeconfig.CacheConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	CommandsConfig = runtimeconfig.CommandsConfig
	HTTPConfig     = runtimeconfig.HTTPConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	Features       = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
