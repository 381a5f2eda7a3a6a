package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/domain"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/activity"
	"github.com/goliatone/go-blog/pkg/interfaces"
	blogusers "github.com/goliatone/go-blog/users"
)

// Service exposes account management use cases. The public contract lives in
// the users package; this interface restates it for internal consumers.
type Service = blogusers.Service

// UserRepository abstracts storage operations for user entities.
type UserRepository interface {
	Create(ctx context.Context, record *User) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByGithubID(ctx context.Context, githubID int64) (*User, error)
	Update(ctx context.Context, record *User) (*User, error)
	Count(ctx context.Context) (int, error)
}

type ServiceOption func(*service)

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

type IDGenerator func() uuid.UUID

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithActivityEmitter(emitter *activity.Emitter) ServiceOption {
	return func(s *service) {
		if emitter != nil {
			s.activity = emitter
		}
	}
}

type service struct {
	repo     UserRepository
	oauth    OAuthClient
	tokens   interfaces.TokenIssuer
	now      func() time.Time
	id       IDGenerator
	logger   interfaces.Logger
	activity *activity.Emitter
}

// NewService constructs the user service over a repository, an OAuth client,
// and a token issuer.
func NewService(repo UserRepository, oauth OAuthClient, tokens interfaces.TokenIssuer, opts ...ServiceOption) Service {
	s := &service{
		repo:     repo,
		oauth:    oauth,
		tokens:   tokens,
		now:      time.Now,
		id:       uuid.New,
		logger:   logging.NoOp(),
		activity: activity.NewEmitter(nil, activity.Config{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates the first, and only, account. The first registrant becomes
// the admin; once any account exists registration is closed.
func (s *service) Register(ctx context.Context, profile GithubProfile) (*User, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrRegistrationClosed
	}

	now := s.now()
	record := &User{
		ID:        s.id(),
		GithubID:  profile.ID,
		Username:  strings.TrimSpace(profile.Login),
		AvatarURL: profile.AvatarURL,
		Role:      domain.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user.registered", "user_id", created.ID.String(), "username", created.Username)
	s.emitActivity(ctx, created, "register")
	return created, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	if id == uuid.Nil {
		return nil, &NotFoundError{Resource: "user"}
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByGithubID(ctx context.Context, githubID int64) (*User, error) {
	return s.repo.GetByGithubID(ctx, githubID)
}

func (s *service) AuthorizeURL(state string) string {
	return s.oauth.AuthorizeURL(state)
}

// LoginWithCode exchanges the authorization code, registering the profile
// when no account exists yet, and refreshes the stored username and avatar
// on every successful login.
func (s *service) LoginWithCode(ctx context.Context, code string) (*User, string, error) {
	profile, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, "", err
	}

	user, err := s.repo.GetByGithubID(ctx, profile.ID)
	if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, "", err
		}
		user, err = s.Register(ctx, profile)
		if err != nil {
			return nil, "", err
		}
	} else if s.refreshProfile(user, profile) {
		user.UpdatedAt = s.now()
		if user, err = s.repo.Update(ctx, user); err != nil {
			return nil, "", err
		}
	}

	token, err := s.tokens.Issue(ctx, user.ID.String())
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user.login", "user_id", user.ID.String())
	s.emitActivity(ctx, user, "login")
	return user, token, nil
}

func (s *service) Profile(ctx context.Context, token string) (*User, error) {
	subject, err := s.tokens.Verify(ctx, token)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) refreshProfile(user *User, profile GithubProfile) bool {
	changed := false
	if login := strings.TrimSpace(profile.Login); login != "" && login != user.Username {
		user.Username = login
		changed = true
	}
	if profile.AvatarURL != "" && profile.AvatarURL != user.AvatarURL {
		user.AvatarURL = profile.AvatarURL
		changed = true
	}
	return changed
}

func (s *service) emitActivity(ctx context.Context, user *User, verb string) {
	if s.activity == nil || !s.activity.Enabled() {
		return
	}
	event := activity.Event{
		Verb:       "user:" + verb,
		ActorID:    user.ID.String(),
		UserID:     user.ID.String(),
		ObjectType: "user",
		ObjectID:   user.ID.String(),
		OccurredAt: s.now(),
		Metadata: map[string]any{
			"username": user.Username,
		},
	}
	if err := s.activity.Emit(ctx, event); err != nil {
		s.logger.Warn("user activity emit failed", "error", err)
	}
}
