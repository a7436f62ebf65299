package mail

import (
	"regexp"
	"strings"
)

var (
	htmlLineBreaks = regexp.MustCompile(`(?i)<br\s*/?>|</(p|div|h\d)>`)
	htmlTags       = regexp.MustCompile(`<.*?>`)
)

// htmlToText reduces HTML to readable text: block-closing tags become
// newlines, remaining tags are stripped, and the handful of entities common in
// mail bodies are unescaped. &amp; goes last so sequences like &amp;lt; do not
// get decoded twice.
func htmlToText(html string) string {
	text := htmlLineBreaks.ReplaceAllString(html, "\n")
	text = htmlTags.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&amp;", "&")

	return text
}
