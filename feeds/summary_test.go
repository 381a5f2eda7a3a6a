package feeds_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-blog/feeds"
)

func TestSummarizeStripsMarkup(t *testing.T) {
	src := "# Title\n\nSome **bold** and _italic_ text with a [link](https://example.com) inline.\n\n> quoted line\n"

	got := feeds.Summarize(src, 150)
	want := "Title Some bold and italic text with a link inline. quoted line"
	if got != want {
		t.Fatalf("expected %q got %q", want, got)
	}
}

func TestSummarizeReplacesImages(t *testing.T) {
	src := "Intro ![diagram](https://example.com/a.png) outro"

	got := feeds.Summarize(src, 150)
	want := "Intro " + feeds.ImagePlaceholder + " outro"
	if got != want {
		t.Fatalf("expected %q got %q", want, got)
	}
}

func TestSummarizeImageOnlySourceYieldsSinglePlaceholder(t *testing.T) {
	cases := []string{
		"![](https://example.com/a.png)",
		"![a](x.png) ![b](y.png)",
		"![a](x.png)\n\n![b](y.png)\n![c](z.png)",
	}
	for _, src := range cases {
		got := feeds.Summarize(src, 150)
		if got != feeds.ImagePlaceholder {
			t.Fatalf("source %q: expected single placeholder, got %q", src, got)
		}
		if strings.Count(got, feeds.ImagePlaceholder) != 1 {
			t.Fatalf("source %q: placeholder repeated: %q", src, got)
		}
	}
}

func TestSummarizeEmptySource(t *testing.T) {
	if got := feeds.Summarize("", 150); got != "" {
		t.Fatalf("expected empty summary got %q", got)
	}
	if got := feeds.Summarize("   \n\t", 150); got != "" {
		t.Fatalf("expected empty summary for whitespace source got %q", got)
	}
}

func TestSummarizeStripsHTMLTags(t *testing.T) {
	src := `before <div class="wide"><span>inner</span></div> after`

	got := feeds.Summarize(src, 150)
	want := "before inner after"
	if got != want {
		t.Fatalf("expected %q got %q", want, got)
	}
}

func TestSummarizeTruncatesToBudget(t *testing.T) {
	src := strings.Repeat("word ", 100)

	got := feeds.Summarize(src, 20)
	if runeCount := len([]rune(got)); runeCount != 20 {
		t.Fatalf("expected 20 runes got %d (%q)", runeCount, got)
	}
}

func TestSummarizeTruncatesMultibyteOnRuneBoundary(t *testing.T) {
	src := strings.Repeat("日本語のテキスト", 40)

	got := feeds.Summarize(src, 10)
	if runeCount := len([]rune(got)); runeCount != 10 {
		t.Fatalf("expected 10 runes got %d", runeCount)
	}
	if !strings.HasPrefix(src, got) {
		t.Fatalf("truncation broke rune boundary: %q", got)
	}
}

func TestSummarizeCollapsesWhitespace(t *testing.T) {
	src := "a\n\n\nb\t\tc   d"

	got := feeds.Summarize(src, 150)
	want := "a b c d"
	if got != want {
		t.Fatalf("expected %q got %q", want, got)
	}
}

func TestSummarizeDefaultBudget(t *testing.T) {
	src := strings.Repeat("x", 400)

	got := feeds.Summarize(src, 0)
	if runeCount := len([]rune(got)); runeCount != feeds.DefaultSummaryBudget {
		t.Fatalf("expected default budget %d got %d", feeds.DefaultSummaryBudget, runeCount)
	}
}
