package interfaces

import "context"

// MarkdownRenderer defines how raw Markdown bytes are converted into HTML.
// Implementations are expected to be stateless so a single instance can be
// shared across requests without locking.
type MarkdownRenderer interface {
	// Render converts Markdown into HTML using the renderer's default settings.
	Render(markdown []byte) ([]byte, error)
	// RenderWithOptions converts Markdown into HTML using the supplied overrides.
	RenderWithOptions(markdown []byte, opts RenderOptions) ([]byte, error)
}

// RenderOptions customises Markdown rendering behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type RenderOptions struct {
	Extensions     []string
	HardWraps      bool
	SafeMode       bool
	HighlightStyle string
	VideoEmbeds    bool
	ImageLightbox  bool
}

// MarkdownService exposes the high-level rendering workflows used by the HTTP
// layer and the reader frontend: full-document rendering plus structural
// extraction for outlines.
type MarkdownService interface {
	Render(ctx context.Context, markdown []byte, opts RenderOptions) ([]byte, error)
	Outline(ctx context.Context, markdown []byte) ([]Heading, error)
}

// Heading captures one entry of a rendered document outline.
type Heading struct {
	Level int
	Text  string
	ID    string
}
