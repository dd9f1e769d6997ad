// Package ingestion normalizes candidate-supplied text before it reaches the
// evaluators: resumes and job descriptions arrive pasted from editors, ATS
// exports and rich-text fields, often with HTML still attached.
package ingestion

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var spaceRun = regexp.MustCompile(`\s+`)

// CleanText normalizes text while preserving line structure: line endings,
// per-line whitespace, and runs of blank lines.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			cleaned = append(cleaned, "")
			continue
		}
		trimmed := strings.TrimLeft(line, " \t")
		indent := len(line) - len(trimmed)
		trimmed = spaceRun.ReplaceAllString(trimmed, " ")
		if indent > 0 {
			trimmed = strings.Repeat(" ", indent) + trimmed
		}
		cleaned = append(cleaned, trimmed)
	}

	result := strings.Join(cleaned, "\n")
	result = collapseBlankLines(result)
	return strings.TrimSpace(result)
}

// Normalize prepares raw candidate input for prompting: strips HTML when the
// text looks like markup, then cleans whitespace.
func Normalize(content string) string {
	if looksLikeHTML(content) {
		if text, err := StripHTML(content); err == nil {
			content = text
		}
	}
	return CleanText(content)
}

// StripHTML extracts readable text from HTML, dropping script and style
// content and preserving block boundaries as newlines.
func StripHTML(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript").Remove()

	var sb strings.Builder
	doc.Find("p, li, h1, h2, h3, h4, h5, h6, div, br, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	sb.WriteString(doc.Text())

	return sb.String(), nil
}

// Truncate caps text at limit runes, appending an ellipsis marker when cut.
// Stage 3 transcripts are truncated to a fixed budget before the inference
// call; scoring quality degrades gracefully, cost does not.
func Truncate(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "\n[transcript truncated]"
}

// looksLikeHTML is a cheap heuristic for pasted markup
func looksLikeHTML(content string) bool {
	lower := strings.ToLower(content)
	return strings.Contains(lower, "<html") ||
		strings.Contains(lower, "<body") ||
		strings.Contains(lower, "<div") ||
		strings.Contains(lower, "<p>") ||
		strings.Contains(lower, "</p>")
}

// collapseBlankLines reduces runs of blank lines to at most one
func collapseBlankLines(content string) string {
	for strings.Contains(content, "\n\n\n") {
		content = strings.ReplaceAll(content, "\n\n\n", "\n\n")
	}
	return content
}
