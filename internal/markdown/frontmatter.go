package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"
)

// FeedFrontMatter is the metadata block an imported markdown file may carry.
// Listed defaults to true; a file has to opt out of the public listing.
type FeedFrontMatter struct {
	Title   string    `yaml:"title"`
	Summary string    `yaml:"summary"`
	Alias   string    `yaml:"alias"`
	Tags    []string  `yaml:"tags"`
	Draft   bool      `yaml:"draft"`
	Listed  *bool     `yaml:"listed"`
	Date    time.Time `yaml:"date"`
}

// ParseFrontMatter extracts metadata and the Markdown body from the provided
// source bytes. Files without a frontmatter block yield zero metadata and the
// full source as body.
func ParseFrontMatter(source []byte) (FeedFrontMatter, []byte, error) {
	var meta FeedFrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FeedFrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta, body, nil
}

// IsListed resolves the listed flag with its default.
func (m FeedFrontMatter) IsListed() bool {
	if m.Listed == nil {
		return true
	}
	return *m.Listed
}
