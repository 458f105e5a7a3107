package blogservice

import "regexp"

var scriptTagPattern = regexp.MustCompile(`(?is)<\s*script[^>]*>(.*?)<\s*/\s*script\s*>`)

// sanitizeContent strips script tags from post content. Content is rendered
// as raw HTML by the site, so this runs on every write path.
func sanitizeContent(content string) string {
	return scriptTagPattern.ReplaceAllString(content, "")
}
