package activity

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Event describes a single domain action worth recording (a feed published,
// a comment removed). String IDs keep the emitter decoupled from uuid
// handling at call sites.
type Event struct {
	Verb           string
	ActorID        string
	UserID         string
	TenantID       string
	ObjectType     string
	ObjectID       string
	Channel        string
	DefinitionCode string
	Recipients     []string
	Metadata       map[string]any
	OccurredAt     time.Time
}

// Hook receives emitted events. Implementations decide delivery (user
// activity feeds, audit logs, webhooks).
type Hook interface {
	Notify(ctx context.Context, event Event) error
}

// Config controls emitter defaults applied to every event.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter fans events out to the registered hooks. A nil or disabled emitter
// drops events silently so services can emit unconditionally.
type Emitter struct {
	hooks []Hook
	cfg   Config
	now   func() time.Time
}

// NewEmitter builds an emitter over the supplied hooks.
func NewEmitter(hooks []Hook, cfg Config) *Emitter {
	return &Emitter{
		hooks: hooks,
		cfg:   cfg,
		now:   time.Now,
	}
}

// Enabled reports whether emitted events will be delivered.
func (e *Emitter) Enabled() bool {
	return e != nil && e.cfg.Enabled && len(e.hooks) > 0
}

// Emit delivers the event to every hook, joining hook errors. Defaults for
// channel and timestamp are applied when the caller leaves them empty.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() {
		return nil
	}
	if strings.TrimSpace(event.Verb) == "" {
		return nil
	}
	if event.Channel == "" {
		event.Channel = e.cfg.Channel
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = e.now()
	}

	var errs []error
	for _, hook := range e.hooks {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
