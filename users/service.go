package users

import (
	"context"

	"github.com/google/uuid"
)

// Service exposes account management and the OAuth login flow.
type Service interface {
	// Register creates the account for an OAuth profile. Only the first
	// registrant succeeds; afterwards ErrRegistrationClosed is returned.
	Register(ctx context.Context, profile GithubProfile) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByGithubID(ctx context.Context, githubID int64) (*User, error)
	// AuthorizeURL builds the provider redirect for the login entry point.
	AuthorizeURL(state string) string
	// LoginWithCode exchanges an OAuth authorization code, registering the
	// profile when the platform has no users yet, and returns the account
	// with a signed session token.
	LoginWithCode(ctx context.Context, code string) (*User, string, error)
	// Profile resolves the account behind a session token.
	Profile(ctx context.Context, token string) (*User, error)
}
