package markdown

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

const defaultHighlightStyle = "github"

// hooksExtension swaps in the blog's element renderers: fenced code blocks
// get chroma highlighting with a copy-button wrapper, images open a lightbox,
// and links to known video hosts become embed iframes.
type hooksExtension struct {
	highlightStyle string
	videoEmbeds    bool
	imageLightbox  bool
}

func (e hooksExtension) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&hookRenderer{
			highlightStyle: e.highlightStyle,
			videoEmbeds:    e.videoEmbeds,
			imageLightbox:  e.imageLightbox,
		}, 200),
	))
}

type hookRenderer struct {
	highlightStyle string
	videoEmbeds    bool
	imageLightbox  bool
}

func (r *hookRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCode)
	if r.imageLightbox {
		reg.Register(ast.KindImage, r.renderImage)
	}
	if r.videoEmbeds {
		reg.Register(ast.KindLink, r.renderLink)
	}
}

func (r *hookRenderer) renderFencedCode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	block := node.(*ast.FencedCodeBlock)
	language := string(block.Language(source))

	var code bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		code.Write(source[line.Start:line.Stop])
	}

	fmt.Fprintf(w, `<div class="code-block copy-enabled" data-lang="%s">`, escapeAttr(language))
	if err := highlightCode(w, code.String(), language, r.highlightStyle); err != nil {
		w.WriteString("<pre><code>")
		w.Write(util.EscapeHTML(code.Bytes()))
		w.WriteString("</code></pre>")
	}
	w.WriteString("</div>\n")
	return ast.WalkContinue, nil
}

func highlightCode(w util.BufWriter, code, language, styleName string) error {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	if styleName == "" {
		styleName = defaultHighlightStyle
	}
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return err
	}
	formatter := chromahtml.New(chromahtml.PreventSurroundingPre(false))
	return formatter.Format(w, style, iterator)
}

func (r *hookRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	image := node.(*ast.Image)
	src := string(util.EscapeHTML(util.URLEscape(image.Destination, true)))
	alt := escapeAttr(string(nodeText(image, source)))

	fmt.Fprintf(w, `<a class="lightbox" href="%s" data-lightbox="post"><img src="%s" alt="%s" loading="lazy"></a>`,
		src, src, alt)
	return ast.WalkSkipChildren, nil
}

func (r *hookRenderer) renderLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	link := node.(*ast.Link)
	dest := string(link.Destination)

	if embed, ok := videoEmbedURL(dest); ok {
		if entering {
			fmt.Fprintf(w, `<div class="video-embed"><iframe src="%s" frameborder="0" allowfullscreen></iframe></div>`,
				escapeAttr(embed))
		}
		return ast.WalkSkipChildren, nil
	}

	if entering {
		fmt.Fprintf(w, `<a href="%s"`, string(util.EscapeHTML(util.URLEscape(link.Destination, true))))
		if len(link.Title) > 0 {
			fmt.Fprintf(w, ` title="%s"`, escapeAttr(string(link.Title)))
		}
		w.WriteString(">")
	} else {
		w.WriteString("</a>")
	}
	return ast.WalkContinue, nil
}

// videoEmbedURL maps a watch-page URL on a known video host to its embed
// player URL.
func videoEmbedURL(raw string) (string, bool) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")

	switch host {
	case "youtube.com":
		if parsed.Path == "/watch" {
			if id := parsed.Query().Get("v"); id != "" {
				return "https://www.youtube.com/embed/" + url.PathEscape(id), true
			}
		}
	case "youtu.be":
		if id := strings.Trim(parsed.Path, "/"); id != "" {
			return "https://www.youtube.com/embed/" + url.PathEscape(id), true
		}
	case "bilibili.com":
		if rest, ok := strings.CutPrefix(parsed.Path, "/video/"); ok {
			if id := strings.Trim(rest, "/"); id != "" {
				return "https://player.bilibili.com/player.html?bvid=" + url.QueryEscape(id), true
			}
		}
	}
	return "", false
}

func nodeText(node ast.Node, source []byte) []byte {
	var out bytes.Buffer
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if text, ok := child.(*ast.Text); ok {
			out.Write(text.Segment.Value(source))
			continue
		}
		out.Write(nodeText(child, source))
	}
	return out.Bytes()
}

func escapeAttr(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}
