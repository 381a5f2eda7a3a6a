package markdown

import (
	"context"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Service implements interfaces.MarkdownService over a GoldmarkRenderer.
type Service struct {
	defaults interfaces.RenderOptions
	renderer interfaces.MarkdownRenderer
	logger   interfaces.Logger
}

type ServiceOption func(*Service)

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderer overrides the underlying renderer.
func WithRenderer(renderer interfaces.MarkdownRenderer) ServiceOption {
	return func(s *Service) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// NewService builds the markdown service. Defaults apply wherever a caller
// passes zero-valued options.
func NewService(defaults interfaces.RenderOptions, opts ...ServiceOption) *Service {
	s := &Service{
		defaults: defaults,
		renderer: NewGoldmarkRenderer(defaults),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ interfaces.MarkdownService = (*Service)(nil)

func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.RenderOptions) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return s.renderer.RenderWithOptions(markdown, mergeRenderOptions(s.defaults, opts))
}

func (s *Service) Outline(ctx context.Context, markdown []byte) ([]interfaces.Heading, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return extractOutline(markdown)
}

func mergeRenderOptions(base, override interfaces.RenderOptions) interfaces.RenderOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.SafeMode {
		result.SafeMode = true
	}
	if override.HighlightStyle != "" {
		result.HighlightStyle = override.HighlightStyle
	}
	if override.VideoEmbeds {
		result.VideoEmbeds = true
	}
	if override.ImageLightbox {
		result.ImageLightbox = true
	}
	return result
}

// DefaultRenderOptions are the settings the reader frontend renders with.
func DefaultRenderOptions() interfaces.RenderOptions {
	return interfaces.RenderOptions{
		HighlightStyle: defaultHighlightStyle,
		VideoEmbeds:    true,
		ImageLightbox:  true,
	}
}
