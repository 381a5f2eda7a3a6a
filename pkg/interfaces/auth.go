package interfaces

import "context"

type AuthProvider interface {
	CurrentUserID(ctx context.Context) (string, error)
	HasPermission(ctx context.Context, permission string) (bool, error)
}

// TokenIssuer mints and verifies session tokens handed to clients after a
// successful OAuth exchange.
type TokenIssuer interface {
	Issue(ctx context.Context, subject string) (string, error)
	Verify(ctx context.Context, token string) (string, error)
}
