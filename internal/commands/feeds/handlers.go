package feedscmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"
	"github.com/google/uuid"

	"github.com/goliatone/go-blog/feeds"
	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	publishOperation   = "feeds.publish"
	unpublishOperation = "feeds.unpublish"
)

var ErrFeedServiceRequired = errors.New("feeds command: feed service is required")

var (
	_ command.Commander[PublishFeedCommand]   = (*PublishFeedHandler)(nil)
	_ command.Commander[UnpublishFeedCommand] = (*UnpublishFeedHandler)(nil)
)

// PublishFeedHandler promotes a draft to the public listing.
type PublishFeedHandler struct {
	inner *commands.Handler[PublishFeedCommand]
}

func NewPublishFeedHandler(service feeds.Service, logger interfaces.Logger, opts ...commands.HandlerOption[PublishFeedCommand]) (*PublishFeedHandler, error) {
	if service == nil {
		return nil, ErrFeedServiceRequired
	}
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg PublishFeedCommand) error {
		return setDraft(ctx, service, msg.FeedID, false)
	}

	handlerOpts := []commands.HandlerOption[PublishFeedCommand]{
		commands.WithLogger[PublishFeedCommand](baseLogger),
		commands.WithOperation[PublishFeedCommand](publishOperation),
		commands.WithMessageFields(func(msg PublishFeedCommand) map[string]any {
			return map[string]any{"feed_id": msg.FeedID.String()}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PublishFeedCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishFeedHandler{inner: commands.NewHandler(exec, handlerOpts...)}, nil
}

// Execute satisfies command.Commander[PublishFeedCommand].
func (h *PublishFeedHandler) Execute(ctx context.Context, msg PublishFeedCommand) error {
	return h.inner.Execute(ctx, msg)
}

// UnpublishFeedHandler demotes a published feed back to draft.
type UnpublishFeedHandler struct {
	inner *commands.Handler[UnpublishFeedCommand]
}

func NewUnpublishFeedHandler(service feeds.Service, logger interfaces.Logger, opts ...commands.HandlerOption[UnpublishFeedCommand]) (*UnpublishFeedHandler, error) {
	if service == nil {
		return nil, ErrFeedServiceRequired
	}
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg UnpublishFeedCommand) error {
		return setDraft(ctx, service, msg.FeedID, true)
	}

	handlerOpts := []commands.HandlerOption[UnpublishFeedCommand]{
		commands.WithLogger[UnpublishFeedCommand](baseLogger),
		commands.WithOperation[UnpublishFeedCommand](unpublishOperation),
		commands.WithMessageFields(func(msg UnpublishFeedCommand) map[string]any {
			return map[string]any{"feed_id": msg.FeedID.String()}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[UnpublishFeedCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UnpublishFeedHandler{inner: commands.NewHandler(exec, handlerOpts...)}, nil
}

// Execute satisfies command.Commander[UnpublishFeedCommand].
func (h *UnpublishFeedHandler) Execute(ctx context.Context, msg UnpublishFeedCommand) error {
	return h.inner.Execute(ctx, msg)
}

func setDraft(ctx context.Context, service feeds.Service, feedID uuid.UUID, draft bool) error {
	record, err := service.Get(ctx, feedID)
	if err != nil {
		return err
	}
	if record.Draft == draft {
		return nil
	}
	_, err = service.Update(ctx, feeds.UpdateFeedRequest{
		ID:    feedID,
		Draft: &draft,
	})
	return err
}
