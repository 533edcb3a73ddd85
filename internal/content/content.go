// ABOUTME: Content processing utilities for feed items
// ABOUTME: Detects HTML, converts to Markdown, and derives plain-text snippets

package content

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// htmlTagPattern matches common HTML tags
var htmlTagPattern = regexp.MustCompile(`<\s*(p|div|span|a|br|img|h[1-6]|ul|ol|li|table|tr|td|th|strong|em|b|i|code|pre|blockquote)[^>]*>`)

// IsHTML checks if content appears to be HTML
func IsHTML(content string) bool {
	// Quick checks for obvious HTML markers
	if strings.Contains(content, "<!DOCTYPE") || strings.Contains(content, "<html") {
		return true
	}

	// Check for common HTML tags
	return htmlTagPattern.MatchString(content)
}

// ToMarkdown converts HTML content to Markdown
// If the content doesn't appear to be HTML, returns it unchanged
func ToMarkdown(content string) string {
	if content == "" {
		return content
	}

	if !IsHTML(content) {
		return content
	}

	markdown, err := htmltomarkdown.ConvertString(content)
	if err != nil {
		// If conversion fails, return original content
		return content
	}

	// Clean up excessive whitespace
	markdown = strings.TrimSpace(markdown)

	return markdown
}

// snippetMaxLen caps derived snippets at roughly a paragraph.
const snippetMaxLen = 300

var (
	markdownImagePattern = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	markdownLinkPattern  = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
)

// Snippet derives a short plain-text preview from item content. Used when
// the source provides no snippet of its own.
func Snippet(content string) string {
	text := ToMarkdown(content)

	// Strip the markdown decoration that survives conversion.
	text = markdownImagePattern.ReplaceAllString(text, "")
	text = markdownLinkPattern.ReplaceAllString(text, "$1")
	text = strings.NewReplacer("#", "", "*", "", "`", "", ">", "").Replace(text)
	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))

	runes := []rune(text)
	if len(runes) > snippetMaxLen {
		text = strings.TrimSpace(string(runes[:snippetMaxLen])) + "…"
	}
	return text
}
