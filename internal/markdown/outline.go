package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// extractOutline walks the document AST and collects its headings with the
// ids the auto-heading-id parser assigned.
func extractOutline(markdown []byte) ([]interfaces.Heading, error) {
	engine := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	document := engine.Parser().Parse(text.NewReader(markdown))

	headings := []interfaces.Heading{}
	err := ast.Walk(document, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := node.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		entry := interfaces.Heading{
			Level: heading.Level,
			Text:  string(nodeText(heading, markdown)),
		}
		if id, ok := heading.AttributeString("id"); ok {
			if raw, ok := id.([]byte); ok {
				entry.ID = string(raw)
			}
		}
		headings = append(headings, entry)
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}
	return headings, nil
}
