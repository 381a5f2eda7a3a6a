package markdown

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func render(t *testing.T, source string, opts interfaces.RenderOptions) string {
	t.Helper()
	svc := NewService(opts)
	out, err := svc.Render(context.Background(), []byte(source), interfaces.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRender_FencedCodeBlock(t *testing.T) {
	source := "```go\npackage main\n```\n"
	html := render(t, source, DefaultRenderOptions())

	if !strings.Contains(html, `<div class="code-block copy-enabled" data-lang="go">`) {
		t.Fatalf("missing code block wrapper: %s", html)
	}
	if !strings.Contains(html, "<pre") {
		t.Fatalf("expected highlighted pre output: %s", html)
	}
	if !strings.Contains(html, "package") {
		t.Fatalf("code content lost: %s", html)
	}
}

func TestRender_FencedCodeBlockNoLanguage(t *testing.T) {
	source := "```\nplain text\n```\n"
	html := render(t, source, DefaultRenderOptions())

	if !strings.Contains(html, `data-lang=""`) {
		t.Fatalf("expected empty data-lang attribute: %s", html)
	}
	if !strings.Contains(html, "plain text") {
		t.Fatalf("code content lost: %s", html)
	}
}

func TestRender_ImageLightbox(t *testing.T) {
	source := "![diagram](https://cdn.example.com/diagram.png)\n"
	html := render(t, source, DefaultRenderOptions())

	if !strings.Contains(html, `<a class="lightbox" href="https://cdn.example.com/diagram.png"`) {
		t.Fatalf("missing lightbox anchor: %s", html)
	}
	if !strings.Contains(html, `loading="lazy"`) {
		t.Fatalf("image should lazy load: %s", html)
	}
}

func TestRender_ImageWithoutLightbox(t *testing.T) {
	source := "![diagram](https://cdn.example.com/diagram.png)\n"
	html := render(t, source, interfaces.RenderOptions{})

	if strings.Contains(html, "lightbox") {
		t.Fatalf("lightbox markup should require the option: %s", html)
	}
	if !strings.Contains(html, "<img") {
		t.Fatalf("image tag missing: %s", html)
	}
}

func TestRender_VideoEmbeds(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "youtube watch",
			source: "[talk](https://www.youtube.com/watch?v=dQw4w9WgXcQ)",
			want:   "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name:   "youtube short link",
			source: "[talk](https://youtu.be/dQw4w9WgXcQ)",
			want:   "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name:   "bilibili",
			source: "[talk](https://www.bilibili.com/video/BV1xx411c7mD)",
			want:   "bvid=BV1xx411c7mD",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			html := render(t, tc.source, DefaultRenderOptions())
			if !strings.Contains(html, `<div class="video-embed">`) {
				t.Fatalf("missing embed wrapper: %s", html)
			}
			if !strings.Contains(html, "<iframe") {
				t.Fatalf("missing iframe: %s", html)
			}
			if !strings.Contains(html, tc.want) {
				t.Fatalf("embed url %q missing in %s", tc.want, html)
			}
		})
	}
}

func TestRender_OrdinaryLinkStaysAnchor(t *testing.T) {
	html := render(t, "[docs](https://example.com/docs)", DefaultRenderOptions())

	if strings.Contains(html, "iframe") {
		t.Fatalf("ordinary link must not embed: %s", html)
	}
	if !strings.Contains(html, `<a href="https://example.com/docs"`) {
		t.Fatalf("anchor missing: %s", html)
	}
}

func TestRender_GFMTable(t *testing.T) {
	source := "| a | b |\n| --- | --- |\n| 1 | 2 |\n"
	html := render(t, source, DefaultRenderOptions())

	if !strings.Contains(html, "<table>") {
		t.Fatalf("table extension inactive: %s", html)
	}
}

func TestRender_SafeModeStripsRawHTML(t *testing.T) {
	safe := render(t, "<script>alert(1)</script>", interfaces.RenderOptions{SafeMode: true})
	if strings.Contains(safe, "<script>") {
		t.Fatalf("raw html leaked in safe mode: %s", safe)
	}

	unsafe := render(t, "<em>kept</em>", interfaces.RenderOptions{})
	if !strings.Contains(unsafe, "<em>kept</em>") {
		t.Fatalf("raw html should pass through by default: %s", unsafe)
	}
}

func TestOutline(t *testing.T) {
	source := "# Intro\n\nbody\n\n## Getting Started\n\n### Details\n"
	svc := NewService(DefaultRenderOptions())

	headings, err := svc.Outline(context.Background(), []byte(source))
	if err != nil {
		t.Fatalf("outline: %v", err)
	}
	if len(headings) != 3 {
		t.Fatalf("expected 3 headings, got %d", len(headings))
	}
	if headings[0].Level != 1 || headings[0].Text != "Intro" {
		t.Fatalf("unexpected first heading: %+v", headings[0])
	}
	if headings[1].ID != "getting-started" {
		t.Fatalf("expected auto heading id, got %q", headings[1].ID)
	}
	if headings[2].Level != 3 {
		t.Fatalf("expected level 3, got %d", headings[2].Level)
	}
}

func TestRender_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewService(DefaultRenderOptions())
	if _, err := svc.Render(ctx, []byte("# hi"), interfaces.RenderOptions{}); err == nil {
		t.Fatal("expected context error")
	}
}
