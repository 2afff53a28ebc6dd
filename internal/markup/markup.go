// Package markup converts Atlassian content formats into plain markdown and
// normalizes the small text shapes shared by tool responses.
package markup

import (
	"html"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

var (
	tagPattern     = regexp.MustCompile(`<[^>]*>`)
	spacePattern   = regexp.MustCompile(`\s+`)
	mentionPattern = regexp.MustCompile(`\[~([^\]]+)\]`)
	linkPattern    = regexp.MustCompile(`\[([^|\]]+)\|([^\]]+)\]`)
	bareURLPattern = regexp.MustCompile(`\[(https?://[^\]]+)\]`)
	codePattern    = regexp.MustCompile(`\{code(?::[^}]*)?\}`)
	noformatToken  = "{noformat}"
)

// ToMarkdown converts Confluence storage-format HTML to markdown. Conversion
// failures and empty output fall back to stripping tags so callers always get
// readable text.
func ToMarkdown(htmlContent, baseURL string) string {
	if htmlContent == "" {
		return ""
	}

	converter := md.NewConverter(baseURL, true, nil)
	converted, err := converter.ConvertString(htmlContent)
	if err != nil {
		return StripTags(htmlContent)
	}

	converted = strings.TrimSpace(converted)
	if converted == "" {
		return StripTags(htmlContent)
	}

	return converted
}

// StripTags removes HTML tags, collapses whitespace, and decodes entities.
func StripTags(htmlContent string) string {
	stripped := tagPattern.ReplaceAllString(htmlContent, "")
	cleaned := spacePattern.ReplaceAllString(stripped, " ")
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// CleanJiraText rewrites Jira wiki markup into markdown-friendly text:
// user mentions become @name, [text|url] links become markdown links, and
// {code}/{noformat} blocks become fenced blocks.
func CleanJiraText(text string) string {
	if text == "" {
		return ""
	}

	cleaned := strings.ReplaceAll(text, "\r\n", "\n")
	cleaned = mentionPattern.ReplaceAllString(cleaned, "@$1")
	cleaned = linkPattern.ReplaceAllString(cleaned, "[$1]($2)")
	cleaned = bareURLPattern.ReplaceAllString(cleaned, "$1")
	cleaned = codePattern.ReplaceAllString(cleaned, "```")
	cleaned = strings.ReplaceAll(cleaned, noformatToken, "```")
	return strings.TrimSpace(cleaned)
}

// Excerpt truncates s to limit runes, appending an ellipsis when cut.
func Excerpt(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
