package feeds

import (
	"regexp"
	"strings"
)

// ImagePlaceholder stands in for stripped image syntax in derived summaries.
const ImagePlaceholder = "[image]"

// DefaultSummaryBudget is the rune budget applied when callers pass a
// non-positive budget to Summarize.
const DefaultSummaryBudget = 150

var (
	imagePattern   = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkPattern    = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	htmlPattern    = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
	headingPattern = regexp.MustCompile(`(?m)^[ \t]{0,3}#{1,6}[ \t]+`)
	quotePattern   = regexp.MustCompile(`(?m)^[ \t]*>+[ \t]?`)
	fencePattern   = regexp.MustCompile("(?m)^```[^\n]*$")
	markerPattern  = regexp.MustCompile("[*_~`]+")
	spacePattern   = regexp.MustCompile(`\s+`)
)

// Summarize derives a plain-text preview from raw Markdown. Image syntax
// becomes ImagePlaceholder, links collapse to their text, HTML tags and
// emphasis/heading/quote markers are stripped, whitespace runs shrink to a
// single space, and the result is truncated to budget runes. A source that
// contains nothing but images yields the placeholder exactly once. Pure total
// function on strings; no error conditions.
func Summarize(markdown string, budget int) string {
	if budget <= 0 {
		budget = DefaultSummaryBudget
	}

	hadImage := imagePattern.MatchString(markdown)

	out := imagePattern.ReplaceAllString(markdown, ImagePlaceholder)
	out = linkPattern.ReplaceAllString(out, "$1")
	out = htmlPattern.ReplaceAllString(out, "")
	out = headingPattern.ReplaceAllString(out, "")
	out = quotePattern.ReplaceAllString(out, "")
	out = fencePattern.ReplaceAllString(out, "")
	out = markerPattern.ReplaceAllString(out, "")
	out = strings.TrimSpace(spacePattern.ReplaceAllString(out, " "))

	if hadImage && onlyPlaceholders(out) {
		return ImagePlaceholder
	}
	return truncateRunes(out, budget)
}

// onlyPlaceholders reports whether text contains nothing besides placeholder
// tokens and whitespace.
func onlyPlaceholders(text string) bool {
	stripped := strings.TrimSpace(strings.ReplaceAll(text, ImagePlaceholder, ""))
	return stripped == ""
}

func truncateRunes(text string, budget int) string {
	runes := []rune(text)
	if len(runes) <= budget {
		return text
	}
	return string(runes[:budget])
}
