package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"
)

// ErrNoConfidentMatch indicates search results did not meet the confidence threshold.
var ErrNoConfidentMatch = errors.New("no confident match")

// NoConfidentMatchError provides context for a failed track match.
type NoConfidentMatchError struct {
	Title  string
	Artist string
}

func (e NoConfidentMatchError) Error() string {
	if e.Title == "" && e.Artist == "" {
		return ErrNoConfidentMatch.Error()
	}
	return fmt.Sprintf("no confident match found for title %q artist %q", e.Title, e.Artist)
}

func (e NoConfidentMatchError) Is(target error) bool {
	return target == ErrNoConfidentMatch
}

// MusicCatalog is the outbound port to the music provider.
type MusicCatalog interface {
	// SearchTracks returns catalog tracks for a free-text seed query.
	SearchTracks(ctx context.Context, query string, limit int) ([]domain.Track, error)
	// MatchTrack finds the catalog track best matching a title/artist pair,
	// returning a NoConfidentMatchError when nothing scores high enough.
	MatchTrack(ctx context.Context, title, artist string) (domain.Track, error)
	// ExportPlaylist creates the playlist on the provider under the user's
	// account and returns its external URL. userToken is the user's OAuth
	// access token.
	ExportPlaylist(ctx context.Context, userToken string, p domain.Playlist) (string, error)
}
