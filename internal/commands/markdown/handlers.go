package markdowncmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-blog/feeds"
	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const importOperation = "markdown.import_directory"

var ErrFeedServiceRequired = errors.New("markdown command: feed service is required")

var _ command.Commander[ImportDirectoryCommand] = (*ImportDirectoryHandler)(nil)

// ImportDirectoryHandler orchestrates markdown directory imports via the
// shared command handler foundation.
type ImportDirectoryHandler struct {
	inner *commands.Handler[ImportDirectoryCommand]
}

// NewImportDirectoryHandler creates a handler bound to the supplied feed
// service.
func NewImportDirectoryHandler(service feeds.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ImportDirectoryCommand]) (*ImportDirectoryHandler, error) {
	if service == nil {
		return nil, ErrFeedServiceRequired
	}
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ImportDirectoryCommand) error {
		importer, err := markdown.NewImporter(markdown.ImporterConfig{
			Feeds:    service,
			AuthorID: msg.AuthorID,
			Logger:   baseLogger,
		})
		if err != nil {
			return err
		}
		result, err := importer.ImportDirectory(ctx, msg.Directory)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"created_count": len(result.Created),
			"updated_count": len(result.Updated),
			"skipped_count": len(result.Skipped),
		}).Info("markdown.command.import_directory.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportDirectoryCommand]{
		commands.WithLogger[ImportDirectoryCommand](baseLogger),
		commands.WithOperation[ImportDirectoryCommand](importOperation),
		commands.WithMessageFields(func(msg ImportDirectoryCommand) map[string]any {
			return map[string]any{
				"directory": msg.Directory,
				"author_id": msg.AuthorID.String(),
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportDirectoryHandler{inner: commands.NewHandler(exec, handlerOpts...)}, nil
}

// Execute satisfies command.Commander[ImportDirectoryCommand].
func (h *ImportDirectoryHandler) Execute(ctx context.Context, msg ImportDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
