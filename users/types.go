package users

import (
	"time"

	"github.com/goliatone/go-blog/internal/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Role is the permission level attached to an account.
type Role = domain.Role

const (
	RoleAdmin  = domain.RoleAdmin
	RoleReader = domain.RoleReader
)

// User is an account backed by an external OAuth identity. The platform is
// single-writer: the first registrant becomes the admin and registration
// closes behind them.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	GithubID  int64      `bun:"github_id,notnull,unique" json:"githubId"`
	Username  string     `bun:"username,notnull" json:"username"`
	AvatarURL string     `bun:"avatar_url" json:"avatarUrl"`
	Role      Role       `bun:"role,notnull" json:"role"`
	CreatedAt time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
	DeletedAt *time.Time `bun:"deleted_at,nullzero" json:"-"`
}

// IsAdmin reports whether the account may write feeds and moderate comments.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// GithubProfile is the subset of the OAuth provider's user payload the
// platform keeps.
type GithubProfile struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}
