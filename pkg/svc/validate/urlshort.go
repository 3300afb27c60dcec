package validate

import (
	"net/url"
	"regexp"
	"strings"
)

// maxDisplayLength is the longest URL shown verbatim in table cells.
const maxDisplayLength = 80

var urlPattern = regexp.MustCompile(`https?://\S+`)

// ShortenURLs replaces every URL in text that exceeds the display length with
// a shortened domain form. Short URLs pass through unchanged.
func ShortenURLs(text string) string {
	if text == "" {
		return text
	}

	return urlPattern.ReplaceAllStringFunc(text, func(raw string) string {
		if len(raw) <= maxDisplayLength {
			return raw
		}

		return shortenURL(raw)
	})
}

// shortenURL renders a URL as domain/.../last/two path segments, truncated to
// the display length.
func shortenURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return truncate(raw)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")

	var short string
	if len(segments) > 2 {
		short = parsed.Host + "/.../" + strings.Join(segments[len(segments)-2:], "/")
	} else {
		short = parsed.Host + parsed.Path
	}

	return truncate(short)
}

func truncate(s string) string {
	if len(s) <= maxDisplayLength {
		return s
	}

	return s[:maxDisplayLength-3] + "..."
}
