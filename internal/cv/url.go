package cv

import (
	"net/url"
	"strings"
)

// Href normalizes a user-entered link: anything not starting with "http" gets an https:// prefix.
func Href(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http") {
		return raw
	}
	return "https://" + raw
}

// IsValidURL reports whether the normalized link parses with a non-empty host.
func IsValidURL(raw string) bool {
	href := Href(raw)
	if href == "" {
		return false
	}
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	return u.Hostname() != ""
}
