// Package spotify implements the music catalog port against the Spotify Web
// API. App-level calls (search) authenticate with the client-credentials
// flow; playlist export runs under the user's own OAuth token.
package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/ports"
)

const (
	defaultBaseURL  = "https://api.spotify.com"
	defaultTokenURL = "https://accounts.spotify.com/api/token" // #nosec G101 -- public OAuth endpoint, not a credential
	matchSearchSize = 10
)

// Client is the Spotify adapter.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxRetries  int
	baseBackoff time.Duration
}

// compile-time interface assertion
var _ ports.MusicCatalog = (*Client)(nil)

// NewClient constructs a client authenticating with the client-credentials
// flow. The oauth2 transport caches and refreshes the app token.
func NewClient(clientID, clientSecret string) *Client {
	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     defaultTokenURL,
	}
	httpClient := cfg.Client(context.Background())
	httpClient.Timeout = 15 * time.Second

	return &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
	}
}

// NewClientWithHTTP constructs a client against a custom endpoint with a
// pre-authenticated HTTP client. Used by tests.
func NewClientWithHTTP(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// SearchTracks runs a free-text track search.
func (c *Client) SearchTracks(ctx context.Context, query string, limit int) ([]domain.Track, error) {
	if limit < 1 {
		limit = 1
	}

	resp, err := c.search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	tracks := make([]domain.Track, 0, len(resp.Tracks.Items))
	for _, item := range resp.Tracks.Items {
		tracks = append(tracks, mapTrackToDomain(item))
	}
	return tracks, nil
}

// MatchTrack searches for a title/artist pair and returns the best-scoring
// candidate, or a NoConfidentMatchError when nothing clears the thresholds.
func (c *Client) MatchTrack(ctx context.Context, title, artist string) (domain.Track, error) {
	query := fmt.Sprintf("track:%s artist:%s", title, artist)
	resp, err := c.search(ctx, query, matchSearchSize)
	if err != nil {
		return domain.Track{}, err
	}

	var (
		best      spotifyTrack
		bestScore float64
		found     bool
	)
	for _, candidate := range resp.Tracks.Items {
		score, ok := trackMatchScore(title, artist, candidate)
		if ok && score > bestScore {
			best = candidate
			bestScore = score
			found = true
		}
	}
	if !found {
		return domain.Track{}, &ports.NoConfidentMatchError{Title: title, Artist: artist}
	}

	return mapTrackToDomain(best), nil
}

func (c *Client) search(ctx context.Context, query string, limit int) (*searchResponse, error) {
	endpoint := fmt.Sprintf("%s/v1/search?q=%s&type=track&limit=%d",
		c.baseURL, url.QueryEscape(query), limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify adapter: search status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("spotify adapter: decode search response: %w", err)
	}
	return &parsed, nil
}

// ExportPlaylist creates the playlist under the user's account and adds all
// tracks, returning the playlist's public URL.
func (c *Client) ExportPlaylist(ctx context.Context, userToken string, p domain.Playlist) (string, error) {
	if userToken == "" {
		return "", fmt.Errorf("spotify adapter: user token is required")
	}
	userClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: userToken}))

	userID, err := c.currentUserID(ctx, userClient)
	if err != nil {
		return "", err
	}

	created, err := c.createPlaylist(ctx, userClient, userID, p)
	if err != nil {
		return "", err
	}

	uris := make([]string, 0, len(p.Tracks))
	for _, t := range p.Tracks {
		uris = append(uris, "spotify:track:"+t.ID)
	}
	if err := c.addTracks(ctx, userClient, created.ID, uris); err != nil {
		return "", err
	}

	return created.ExternalURLs.Spotify, nil
}

func (c *Client) currentUserID(ctx context.Context, userClient *http.Client) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/me", nil)
	if err != nil {
		return "", fmt.Errorf("spotify adapter: %w", err)
	}

	resp, err := userClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("spotify adapter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("spotify adapter: current user status %d", resp.StatusCode)
	}

	var parsed currentUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("spotify adapter: decode current user: %w", err)
	}
	return parsed.ID, nil
}

func (c *Client) createPlaylist(ctx context.Context, userClient *http.Client, userID string, p domain.Playlist) (*createPlaylistResponse, error) {
	body, err := json.Marshal(createPlaylistRequest{
		Name:        p.Name,
		Description: p.Description,
		Public:      false,
	})
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/users/%s/playlists", c.baseURL, url.PathEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := userClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("spotify adapter: create playlist status %d", resp.StatusCode)
	}

	var parsed createPlaylistResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("spotify adapter: decode created playlist: %w", err)
	}
	return &parsed, nil
}

func (c *Client) addTracks(ctx context.Context, userClient *http.Client, playlistID string, uris []string) error {
	if len(uris) == 0 {
		return nil
	}

	body, err := json.Marshal(addTracksRequest{URIs: uris})
	if err != nil {
		return fmt.Errorf("spotify adapter: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/playlists/%s/tracks", c.baseURL, url.PathEscape(playlistID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("spotify adapter: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := userClient.Do(req)
	if err != nil {
		return fmt.Errorf("spotify adapter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("spotify adapter: add tracks status %d", resp.StatusCode)
	}
	return nil
}
