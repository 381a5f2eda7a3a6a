package comments

import blogcomments "github.com/goliatone/go-blog/comments"

// Type aliases keep the public contract in the comments package while the
// implementation lives here.
type (
	Comment              = blogcomments.Comment
	CreateCommentRequest = blogcomments.CreateCommentRequest
	NotFoundError        = blogcomments.NotFoundError
)

var (
	ErrAuthorRequired   = blogcomments.ErrAuthorRequired
	ErrContentRequired  = blogcomments.ErrContentRequired
	ErrFeedRequired     = blogcomments.ErrFeedRequired
	ErrFeedNotVisible   = blogcomments.ErrFeedNotVisible
	ErrParentMismatch   = blogcomments.ErrParentMismatch
	ErrNestedReply      = blogcomments.ErrNestedReply
	ErrCommentIDMissing = blogcomments.ErrCommentIDMissing
)
