package models

import "strings"

const (
	MediaTypePhoto = "photo"
	MediaTypeVideo = "video"
)

// Media is a photo or video attached to a feedback entry.
type Media struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// IsPhoto reports whether the media item is a photo.
func (m Media) IsPhoto() bool {
	return m.Type == MediaTypePhoto
}

// SanitizeMediaURL normalizes a media URL returned by the server.
// Stored paths may carry relative up-traversal segments ("../../x");
// those collapse to a root-relative path.
func SanitizeMediaURL(raw string) string {
	if !strings.HasPrefix(raw, "../") {
		return raw
	}
	trimmed := raw
	for strings.HasPrefix(trimmed, "../") {
		trimmed = strings.TrimPrefix(trimmed, "../")
	}
	return "/" + trimmed
}

// ResolveURL returns the absolute URL for the media item against the
// configured media base URL.
func (m Media) ResolveURL(baseURL string) string {
	u := SanitizeMediaURL(m.URL)
	if strings.Contains(u, "://") {
		return u
	}
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return strings.TrimSuffix(baseURL, "/") + u
}
