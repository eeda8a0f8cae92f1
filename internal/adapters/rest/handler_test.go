package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/ports"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/resonance"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/services"
)

var testSecret = []byte("test-secret")

// fakeRepo is an in-memory repository for handler tests.
type fakeRepo struct {
	users     map[string]domain.User
	charts    map[string]domain.BirthChart
	playlists map[string]domain.Playlist
	analyses  map[string]domain.PlanetaryHarmonicAnalysis
	moods     map[string]map[string]domain.DailyMood
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:     map[string]domain.User{},
		charts:    map[string]domain.BirthChart{},
		playlists: map[string]domain.Playlist{},
		analyses:  map[string]domain.PlanetaryHarmonicAnalysis{},
		moods:     map[string]map[string]domain.DailyMood{},
	}
}

func (r *fakeRepo) CreateUser(_ context.Context, u domain.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeRepo) GetUser(_ context.Context, id string) (domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (r *fakeRepo) UpdateUserBirthData(_ context.Context, id string, bd domain.BirthData) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.BirthDate, u.BirthTime, u.BirthLocation = bd.BirthDate, bd.BirthTime, bd.BirthLocation
	r.users[id] = u
	return nil
}

func (r *fakeRepo) SaveChart(_ context.Context, c domain.BirthChart) error {
	r.charts[c.UserID] = c
	return nil
}

func (r *fakeRepo) GetChartByUser(_ context.Context, userID string) (domain.BirthChart, error) {
	c, ok := r.charts[userID]
	if !ok {
		return domain.BirthChart{}, domain.ErrNotFound
	}
	return c, nil
}

func (r *fakeRepo) SavePlaylist(_ context.Context, p domain.Playlist) error {
	r.playlists[p.ID] = p
	return nil
}

func (r *fakeRepo) GetPlaylistByID(_ context.Context, id string) (domain.Playlist, error) {
	p, ok := r.playlists[id]
	if !ok {
		return domain.Playlist{}, domain.ErrNotFound
	}
	return p, nil
}

func (r *fakeRepo) SaveAnalysis(_ context.Context, a domain.PlanetaryHarmonicAnalysis) error {
	r.analyses[a.TrackID] = a
	return nil
}

func (r *fakeRepo) GetAnalysisByTrack(_ context.Context, trackID string) (domain.PlanetaryHarmonicAnalysis, error) {
	a, ok := r.analyses[trackID]
	if !ok {
		return domain.PlanetaryHarmonicAnalysis{}, domain.ErrNotFound
	}
	return a, nil
}

func (r *fakeRepo) UpsertMood(_ context.Context, m domain.DailyMood) error {
	if r.moods[m.UserID] == nil {
		r.moods[m.UserID] = map[string]domain.DailyMood{}
	}
	r.moods[m.UserID][m.Date] = m
	return nil
}

func (r *fakeRepo) ListMoods(_ context.Context, userID string, limit int) ([]domain.DailyMood, error) {
	out := []domain.DailyMood{}
	for _, m := range r.moods[userID] {
		if len(out) >= limit {
			break
		}
		out = append(out, m)
	}
	return out, nil
}

// fakeCatalog serves canned tracks and configurable match/export outcomes.
type fakeCatalog struct {
	tracks    []domain.Track
	matched   domain.Track
	matchErr  error
	exportURL string
	exportErr error
}

func (c *fakeCatalog) SearchTracks(_ context.Context, query string, limit int) ([]domain.Track, error) {
	if len(c.tracks) > limit {
		return c.tracks[:limit], nil
	}
	return c.tracks, nil
}

func (c *fakeCatalog) MatchTrack(_ context.Context, title, artist string) (domain.Track, error) {
	if c.matchErr != nil {
		return domain.Track{}, c.matchErr
	}
	return c.matched, nil
}

func (c *fakeCatalog) ExportPlaylist(_ context.Context, userToken string, p domain.Playlist) (string, error) {
	if c.exportErr != nil {
		return "", c.exportErr
	}
	return c.exportURL, nil
}

type testEnv struct {
	handler *Handler
	repo    *fakeRepo
	catalog *fakeCatalog
}

func newTestEnv() *testEnv {
	repo := newFakeRepo()
	catalog := &fakeCatalog{
		tracks: []domain.Track{
			{ID: "t1", Title: "One", Artist: "A", ISRC: "ISRC1"},
			{ID: "t2", Title: "Two", Artist: "B", ISRC: "ISRC2"},
		},
		exportURL: "https://open.spotify.com/playlist/x",
	}
	svc := services.NewOrchestrator(catalog, repo, nil, resonance.NewSeededScorer(1))
	return &testEnv{
		handler: NewHandler(svc, nil, testSecret),
		repo:    repo,
		catalog: catalog,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// signUp registers a user and returns the session token.
func (e *testEnv) signUp(t *testing.T) (domain.User, string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/users", "", map[string]string{"displayName": "Luna"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("sign up status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		User  domain.User `json:"user"`
		Token string      `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode sign up response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("sign up response missing token")
	}
	return resp.User, resp.Token
}

func (e *testEnv) setBirthData(t *testing.T, token string) domain.BirthChart {
	t.Helper()
	rec := e.do(t, http.MethodPut, "/api/users/birth-data", token, domain.BirthData{
		BirthDate:     "1990-06-15",
		BirthTime:     "08:30",
		BirthLocation: "Ottawa, Canada",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("birth data status = %d, body %s", rec.Code, rec.Body.String())
	}
	var chart domain.BirthChart
	if err := json.Unmarshal(rec.Body.Bytes(), &chart); err != nil {
		t.Fatalf("failed to decode chart: %v", err)
	}
	return chart
}

func TestHealthCheck(t *testing.T) {
	e := newTestEnv()
	rec := e.do(t, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
}

func TestCreateUser(t *testing.T) {
	e := newTestEnv()

	t.Run("happy path issues a usable token", func(t *testing.T) {
		_, token := e.signUp(t)
		rec := e.do(t, http.MethodGet, "/api/chart", token, nil)
		// No chart yet, but the token must clear the auth middleware.
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404 before birth data", rec.Code)
		}
	})

	t.Run("missing content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"displayName":"x"}`))
		rec := httptest.NewRecorder()
		e.handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnsupportedMediaType {
			t.Fatalf("status = %d, want 415", rec.Code)
		}
	})

	t.Run("missing display name", func(t *testing.T) {
		rec := e.do(t, http.MethodPost, "/api/users", "", map[string]string{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		e.handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestAuthMiddleware(t *testing.T) {
	e := newTestEnv()

	t.Run("missing token", func(t *testing.T) {
		rec := e.do(t, http.MethodGet, "/api/chart", "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := e.do(t, http.MethodGet, "/api/chart", "not-a-jwt", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/chart", nil)
		req.Header.Set("Authorization", "Basic abc")
		rec := httptest.NewRecorder()
		e.handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})
}

func TestBirthDataAndChart(t *testing.T) {
	e := newTestEnv()
	_, token := e.signUp(t)

	chart := e.setBirthData(t, token)
	if chart.SunSign != "Gemini" {
		t.Errorf("sun sign = %q, want Gemini", chart.SunSign)
	}
	if chart.MoonSign == "" || chart.RisingSign == "" {
		t.Errorf("expected full placements, got %+v", chart)
	}

	t.Run("chart is retrievable", func(t *testing.T) {
		rec := e.do(t, http.MethodGet, "/api/chart", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var got domain.BirthChart
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("failed to decode chart: %v", err)
		}
		if got.SunSign != chart.SunSign {
			t.Fatalf("retrieved chart differs: %+v", got)
		}
	})

	t.Run("birth date is required", func(t *testing.T) {
		rec := e.do(t, http.MethodPut, "/api/users/birth-data", token, domain.BirthData{BirthTime: "08:30"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestTransitsEndpoint(t *testing.T) {
	e := newTestEnv()
	rec := e.do(t, http.MethodGet, "/api/transits/today", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got services.Transits
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode transits: %v", err)
	}
	if got.MoonPhase == "" || got.Date == "" {
		t.Fatalf("incomplete transits payload: %+v", got)
	}
}

func TestPlaylistEndpoints(t *testing.T) {
	e := newTestEnv()
	_, token := e.signUp(t)
	e.setBirthData(t, token)

	rec := e.do(t, http.MethodPost, "/api/playlists", token, map[string]string{"name": "Cosmic Mix"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created domain.Playlist
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode playlist: %v", err)
	}
	if len(created.Tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(created.Tracks))
	}
	if loc := rec.Header().Get("Location"); loc != "/api/playlists/"+created.ID {
		t.Errorf("location header = %q", loc)
	}

	t.Run("fetch by id", func(t *testing.T) {
		rec := e.do(t, http.MethodGet, "/api/playlists/"+created.ID, token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("foreign playlist reads as not found", func(t *testing.T) {
		_, otherToken := e.signUp(t)
		rec := e.do(t, http.MethodGet, "/api/playlists/"+created.ID, otherToken, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		rec := e.do(t, http.MethodPost, "/api/playlists", token, map[string]string{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("no chart yet", func(t *testing.T) {
		_, freshToken := e.signUp(t)
		rec := e.do(t, http.MethodPost, "/api/playlists", freshToken, map[string]string{"name": "Mix"})
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("export", func(t *testing.T) {
		rec := e.do(t, http.MethodPost, "/api/playlists/"+created.ID+"/export", token,
			map[string]string{"spotifyToken": "user-token"})
		if rec.Code != http.StatusOK {
			t.Fatalf("export status = %d, body %s", rec.Code, rec.Body.String())
		}
		var exported domain.Playlist
		if err := json.Unmarshal(rec.Body.Bytes(), &exported); err != nil {
			t.Fatalf("failed to decode playlist: %v", err)
		}
		if exported.ExternalURL != e.catalog.exportURL {
			t.Fatalf("external url = %q", exported.ExternalURL)
		}
	})

	t.Run("export without token", func(t *testing.T) {
		rec := e.do(t, http.MethodPost, "/api/playlists/"+created.ID+"/export", token, map[string]string{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestExportPlaylist_NoConfidentMatch(t *testing.T) {
	e := newTestEnv()
	user, token := e.signUp(t)
	e.setBirthData(t, token)

	// A stored track without a provider id forces the export to resolve by
	// title and artist; the failed match must map to 422.
	e.repo.playlists["pl-x"] = domain.Playlist{
		ID:     "pl-x",
		UserID: user.ID,
		Name:   "Imported",
		Tracks: []domain.Track{{Title: "One", Artist: "A"}},
	}
	e.catalog.matchErr = &ports.NoConfidentMatchError{Title: "One", Artist: "A"}

	rec := e.do(t, http.MethodPost, "/api/playlists/pl-x/export", token,
		map[string]string{"spotifyToken": "user-token"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error: %v", err)
	}
	if resp.Code != errCodeNoConfidentMatch {
		t.Fatalf("error code = %q, want %q", resp.Code, errCodeNoConfidentMatch)
	}
}

func TestMoodEndpoints(t *testing.T) {
	e := newTestEnv()
	_, token := e.signUp(t)

	rec := e.do(t, http.MethodPost, "/api/moods", token, map[string]any{
		"date": "2026-03-01", "mood": 7, "energy": 6, "emotions": []string{"calm"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("log mood status = %d, body %s", rec.Code, rec.Body.String())
	}

	t.Run("out of range mood", func(t *testing.T) {
		rec := e.do(t, http.MethodPost, "/api/moods", token, map[string]any{
			"date": "2026-03-01", "mood": 12, "energy": 6,
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("list", func(t *testing.T) {
		rec := e.do(t, http.MethodGet, "/api/moods?limit=10", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var moods []domain.DailyMood
		if err := json.Unmarshal(rec.Body.Bytes(), &moods); err != nil {
			t.Fatalf("failed to decode moods: %v", err)
		}
		if len(moods) != 1 || moods[0].Mood != 7 {
			t.Fatalf("moods = %+v", moods)
		}
	})

	t.Run("insights", func(t *testing.T) {
		rec := e.do(t, http.MethodGet, "/api/moods/insights", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var got struct {
			WeeklyPatterns []json.RawMessage `json:"weeklyPatterns"`
			SampleCount    int               `json:"sampleCount"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("failed to decode insights: %v", err)
		}
		if got.SampleCount != 1 || len(got.WeeklyPatterns) != 7 {
			t.Fatalf("insights = %+v", got)
		}
	})
}

func TestTrackResonanceEndpoint(t *testing.T) {
	e := newTestEnv()
	_, token := e.signUp(t)
	e.setBirthData(t, token)

	rec := e.do(t, http.MethodGet, "/api/tracks/track-7/resonance", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got domain.PlanetaryHarmonicAnalysis
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode analysis: %v", err)
	}
	if !got.Simulated {
		t.Error("first lookup must return a simulated analysis")
	}
	if got.TrackID != "track-7" {
		t.Errorf("track id = %q", got.TrackID)
	}
	if got.ConfidenceLevel != 0.3 {
		t.Errorf("confidence = %v, want the simulated 0.3", got.ConfidenceLevel)
	}
}
