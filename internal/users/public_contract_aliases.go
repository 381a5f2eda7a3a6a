package users

import blogusers "github.com/goliatone/go-blog/users"

// Type aliases keep the public contract in the users package while the
// implementation lives here.
type (
	User          = blogusers.User
	Role          = blogusers.Role
	GithubProfile = blogusers.GithubProfile
	NotFoundError = blogusers.NotFoundError
)

const (
	RoleAdmin  = blogusers.RoleAdmin
	RoleReader = blogusers.RoleReader
)

var (
	ErrRegistrationClosed = blogusers.ErrRegistrationClosed
	ErrInvalidToken       = blogusers.ErrInvalidToken
	ErrTokenExpired       = blogusers.ErrTokenExpired
	ErrPermissionDenied   = blogusers.ErrPermissionDenied
	ErrExchangeFailed     = blogusers.ErrExchangeFailed
)
