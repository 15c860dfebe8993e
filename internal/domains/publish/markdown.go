package publish

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Generated copy arrives either as HTML or as a small markdown subset:
// #/##/### headings, **bold**, *italic*, blank-line paragraph breaks
// and single-newline line breaks. Content that already carries
// block-level HTML passes through untouched; anything richer than the
// subset is deliberately left alone.

var (
	blockHTMLRe = regexp.MustCompile(`(?i)<(p|div|h[1-6]|ul|ol|li|blockquote|pre|table|figure|section|article)\b`)
	boldRe      = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe    = regexp.MustCompile(`\*([^*]+)\*`)
	tagStripRe  = regexp.MustCompile(`<[^>]*>`)
	spaceRe     = regexp.MustCompile(`\s+`)
)

// HasBlockHTML reports whether s already contains block-level markup.
func HasBlockHTML(s string) bool {
	return blockHTMLRe.MatchString(s)
}

// PrepareContent returns post-ready HTML.
func PrepareContent(s string) string {
	if HasBlockHTML(s) {
		return s
	}
	return convertMarkdownSubset(s)
}

func convertMarkdownSubset(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")

	var out []string
	var paragraph []string

	flush := func() {
		if len(paragraph) == 0 {
			return
		}
		out = append(out, "<p>"+strings.Join(paragraph, "<br>")+"</p>")
		paragraph = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}

		if level, text := headingLine(trimmed); level > 0 {
			flush()
			out = append(out, fmt.Sprintf("<h%d>%s</h%d>", level, inline(text), level))
			continue
		}

		paragraph = append(paragraph, inline(trimmed))
	}
	flush()

	return strings.Join(out, "\n")
}

func headingLine(line string) (int, string) {
	switch {
	case strings.HasPrefix(line, "### "):
		return 3, strings.TrimPrefix(line, "### ")
	case strings.HasPrefix(line, "## "):
		return 2, strings.TrimPrefix(line, "## ")
	case strings.HasPrefix(line, "# "):
		return 1, strings.TrimPrefix(line, "# ")
	default:
		return 0, ""
	}
}

// inline applies bold before italic so ** pairs are not eaten as two
// italic markers.
func inline(s string) string {
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicRe.ReplaceAllString(s, "<em>$1</em>")
	return s
}

// Excerpt derives the post excerpt: plain text, cut at a word boundary
// around maxLen characters.
func Excerpt(content string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 150
	}

	text := tagStripRe.ReplaceAllString(content, " ")
	text = strings.NewReplacer("#", "", "**", "", "*", "").Replace(text)
	text = html.UnescapeString(text)
	text = strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))

	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	cut := string(runes[:maxLen])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
