package domain

// Track represents a musical track in the domain layer.
type Track struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album,omitempty"`
	ISRC       string `json:"isrc,omitempty"` // International Standard Recording Code for matching
	DurationMs int    `json:"durationMs,omitempty"`
	CoverURL   string `json:"coverUrl,omitempty"`
	PreviewURL string `json:"previewUrl,omitempty"`
}
