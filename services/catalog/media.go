package catalog

import (
	"regexp"
	"strings"

	"cursos/utils"
)

var youtubeIDRe = regexp.MustCompile(`(?:https?://)?(?:www\.)?(?:youtube\.com/(?:[^/\s]+/\S+/|(?:v|e(?:mbed)?)/|\S*?[?&]v=)|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// YouTubeEmbed returns the embed URL of a YouTube link, or "" for other URLs.
func YouTubeEmbed(raw string) string {
	m := youtubeIDRe.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return "https://www.youtube.com/embed/" + m[1]
}

// ImageURL keeps absolute http(s) URLs, prefixes relative paths with baseURL and
// falls back to the placeholder.
func ImageURL(baseURL, raw string) string {
	switch {
	case raw == "":
		return utils.PlaceholderImage
	case strings.HasPrefix(raw, "http"):
		return raw
	case strings.HasPrefix(raw, "/"):
		return strings.TrimRight(baseURL, "/") + raw
	default:
		return strings.TrimRight(baseURL, "/") + "/" + raw
	}
}
