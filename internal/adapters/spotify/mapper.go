package spotify

import (
	"strings"

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"
)

// mapTrackToDomain converts a raw Spotify track to a clean domain track.
func mapTrackToDomain(st spotifyTrack) domain.Track {
	var artistNames []string
	for _, a := range st.Artists {
		artistNames = append(artistNames, a.Name)
	}

	coverURL := ""
	if len(st.Album.Images) > 0 {
		coverURL = st.Album.Images[0].URL
	}

	return domain.Track{
		ID:         st.ID,
		Title:      st.Name,
		Artist:     strings.Join(artistNames, ", "),
		Album:      st.Album.Name,
		ISRC:       st.ExternalIDs.ISRC,
		DurationMs: st.DurationMs,
		CoverURL:   coverURL,
		PreviewURL: st.PreviewURL,
	}
}
