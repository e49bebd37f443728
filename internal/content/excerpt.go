package content

import (
	"html"
	"regexp"
	"strings"
)

var (
	reFirstParagraph = regexp.MustCompile(`(?s)<p[^>]*>(.*?)</p>`)
	reTag            = regexp.MustCompile(`<[^>]+>`)
	reSpace          = regexp.MustCompile(`\s+`)
)

// Excerpt derives a short plain-text summary from rendered HTML: the text of
// the first paragraph, tags stripped and whitespace collapsed. Documents
// that want a hand-written summary set excerpt or description in front
// matter instead.
func Excerpt(rendered string) string {
	m := reFirstParagraph.FindStringSubmatch(rendered)
	if m == nil {
		return ""
	}
	text := reTag.ReplaceAllString(m[1], "")
	text = reSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(html.UnescapeString(text))
}
