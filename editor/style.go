// Package editor implements the text-buffer commands, draft persistence,
// and submission flow behind a writing client. Everything operates on plain
// strings and explicit state so it can back any front end.
package editor

import (
	"fmt"
	"strings"
)

// Style identifies an inline toggleable markup style.
type Style int

const (
	StyleBold Style = iota
	StyleItalic
	StyleUnderline
	StyleStrikethrough
	StyleSuperscript
	StyleSubscript
)

// Selection is a half-open [Start, End) byte range into the buffer. A caret
// is a selection with Start == End.
type Selection struct {
	Start int
	End   int
}

// Empty reports whether the selection is a bare caret.
func (s Selection) Empty() bool { return s.Start == s.End }

type delimiterPair struct {
	open  string
	close string
}

var styleDelimiters = map[Style]delimiterPair{
	StyleBold:          {"**", "**"},
	StyleItalic:        {"*", "*"},
	StyleUnderline:     {"<u>", "</u>"},
	StyleStrikethrough: {"~~", "~~"},
	StyleSuperscript:   {"<sup>", "</sup>"},
	StyleSubscript:     {"<sub>", "</sub>"},
}

// Toggle wraps the selection in the style's delimiters, or strips them when
// the selected text is already wrapped. After wrapping, the returned
// selection spans the delimiters, so feeding it straight back into Toggle
// restores the original text. An empty selection inserts the delimiter pair
// and places the caret after the closing delimiter.
func Toggle(buffer string, sel Selection, style Style) (string, Selection) {
	pair, ok := styleDelimiters[style]
	if !ok {
		return buffer, sel
	}
	sel = clampSelection(buffer, sel)

	if sel.Empty() {
		out := buffer[:sel.Start] + pair.open + pair.close + buffer[sel.Start:]
		caret := sel.Start + len(pair.open) + len(pair.close)
		return out, Selection{Start: caret, End: caret}
	}

	selected := buffer[sel.Start:sel.End]
	if wrapped(selected, pair) {
		inner := selected[len(pair.open) : len(selected)-len(pair.close)]
		out := buffer[:sel.Start] + inner + buffer[sel.End:]
		return out, Selection{Start: sel.Start, End: sel.Start + len(inner)}
	}

	out := buffer[:sel.Start] + pair.open + selected + pair.close + buffer[sel.End:]
	return out, Selection{
		Start: sel.Start,
		End:   sel.End + len(pair.open) + len(pair.close),
	}
}

func wrapped(s string, pair delimiterPair) bool {
	if len(s) < len(pair.open)+len(pair.close) {
		return false
	}
	return strings.HasPrefix(s, pair.open) && strings.HasSuffix(s, pair.close)
}

// InsertTable inserts a Markdown table skeleton at the caret, on its own
// lines. Rows and cols are clamped to at least 1.
func InsertTable(buffer string, caret int, rows, cols int) (string, Selection) {
	caret = clampOffset(buffer, caret)
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}

	var b strings.Builder
	header := strings.TrimSuffix(strings.Repeat("|     ", cols)+"|", " ")
	divider := strings.TrimSuffix(strings.Repeat("| --- ", cols)+"|", " ")
	b.WriteString(header + "\n")
	b.WriteString(divider + "\n")
	for i := 0; i < rows; i++ {
		b.WriteString(header + "\n")
	}

	block := b.String()
	if caret > 0 && buffer[caret-1] != '\n' {
		block = "\n" + block
	}
	out := buffer[:caret] + block + buffer[caret:]
	end := caret + len(block)
	return out, Selection{Start: end, End: end}
}

// InsertImage inserts image syntax at the caret and places the caret after it.
func InsertImage(buffer string, caret int, alt, url string) (string, Selection) {
	caret = clampOffset(buffer, caret)
	tag := fmt.Sprintf("![%s](%s)", alt, url)
	out := buffer[:caret] + tag + buffer[caret:]
	end := caret + len(tag)
	return out, Selection{Start: end, End: end}
}

// ReplaceFirst substitutes the first occurrence of old in the buffer. Used to
// swap an upload placeholder for the final URL once the upload resolves; when
// old is absent the buffer is returned unchanged.
func ReplaceFirst(buffer, old, new string) string {
	if old == "" {
		return buffer
	}
	return strings.Replace(buffer, old, new, 1)
}

// ToggleHeading sets or clears an ATX heading prefix on the line containing
// the caret. Level is clamped to 1..6; toggling the current level removes the
// prefix, any other level replaces it.
func ToggleHeading(buffer string, caret int, level int) (string, Selection) {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	caret = clampOffset(buffer, caret)
	lineStart, lineEnd := lineBounds(buffer, caret)
	line := buffer[lineStart:lineEnd]

	stripped := strings.TrimLeft(line, "#")
	existing := len(line) - len(stripped)
	stripped = strings.TrimPrefix(stripped, " ")

	var replaced string
	if existing == level {
		replaced = stripped
	} else {
		replaced = strings.Repeat("#", level) + " " + stripped
	}
	out := buffer[:lineStart] + replaced + buffer[lineEnd:]
	caret = lineStart + len(replaced)
	return out, Selection{Start: caret, End: caret}
}

// ToggleQuote toggles a "> " prefix on the line containing the caret.
func ToggleQuote(buffer string, caret int) (string, Selection) {
	caret = clampOffset(buffer, caret)
	lineStart, lineEnd := lineBounds(buffer, caret)
	line := buffer[lineStart:lineEnd]

	var replaced string
	switch {
	case strings.HasPrefix(line, "> "):
		replaced = line[2:]
	case strings.HasPrefix(line, ">"):
		replaced = line[1:]
	default:
		replaced = "> " + line
	}
	out := buffer[:lineStart] + replaced + buffer[lineEnd:]
	caret = lineStart + len(replaced)
	return out, Selection{Start: caret, End: caret}
}

func clampSelection(buffer string, sel Selection) Selection {
	sel.Start = clampOffset(buffer, sel.Start)
	sel.End = clampOffset(buffer, sel.End)
	if sel.End < sel.Start {
		sel.Start, sel.End = sel.End, sel.Start
	}
	return sel
}

func clampOffset(buffer string, offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(buffer) {
		return len(buffer)
	}
	return offset
}

func lineBounds(buffer string, offset int) (int, int) {
	start := strings.LastIndexByte(buffer[:offset], '\n') + 1
	end := strings.IndexByte(buffer[offset:], '\n')
	if end < 0 {
		end = len(buffer)
	} else {
		end += offset
	}
	return start, end
}
