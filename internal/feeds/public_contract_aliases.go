package feeds

import blogfeeds "github.com/goliatone/go-blog/feeds"

type (
	Feed     = blogfeeds.Feed
	Tag      = blogfeeds.Tag
	FeedTag  = blogfeeds.FeedTag
	TagCount = blogfeeds.TagCount

	CreateFeedRequest = blogfeeds.CreateFeedRequest
	UpdateFeedRequest = blogfeeds.UpdateFeedRequest
	DeleteFeedRequest = blogfeeds.DeleteFeedRequest
	ListFeedsRequest  = blogfeeds.ListFeedsRequest

	NotFoundError    = blogfeeds.NotFoundError
	AliasExistsError = blogfeeds.AliasExistsError
)

var (
	ErrTitleRequired   = blogfeeds.ErrTitleRequired
	ErrContentRequired = blogfeeds.ErrContentRequired
	ErrAliasInvalid    = blogfeeds.ErrAliasInvalid
	ErrAliasExists     = blogfeeds.ErrAliasExists
	ErrFeedIDRequired  = blogfeeds.ErrFeedIDRequired
	ErrAuthorRequired  = blogfeeds.ErrAuthorRequired
	ErrFeedNotVisible  = blogfeeds.ErrFeedNotVisible
)

const (
	ImagePlaceholder     = blogfeeds.ImagePlaceholder
	DefaultSummaryBudget = blogfeeds.DefaultSummaryBudget
)
