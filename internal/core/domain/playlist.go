package domain

import "errors"

// Playlist is a chart-curated set of tracks belonging to one user.
type Playlist struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	ExternalURL string  `json:"externalUrl,omitempty"` // set after export
	Tracks      []Track `json:"tracks"`
}

func NewPlaylist(id, userID, name string) (*Playlist, error) {
	if id == "" || name == "" {
		return nil, errors.New("domain: invalid argument")
	}
	return &Playlist{
		ID:     id,
		UserID: userID,
		Name:   name,
		Tracks: []Track{},
	}, nil
}

// AddTrack appends a track to the playlist while preventing duplicate ISRCs.
// If the incoming track has a non-empty ISRC and that ISRC already exists in
// the playlist, AddTrack returns ErrDuplicateISRC.
func (p *Playlist) AddTrack(t Track) error {
	if t.ISRC != "" {
		for _, ex := range p.Tracks {
			if ex.ISRC != "" && ex.ISRC == t.ISRC {
				return ErrDuplicateISRC
			}
		}
	}
	p.Tracks = append(p.Tracks, t)
	return nil
}
