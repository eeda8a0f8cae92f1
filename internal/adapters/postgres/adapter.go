// Package postgres provides a Postgres-backed implementation of the
// repository port, selected with STORAGE_DRIVER=postgres.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq" // Import the driver anonymously

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/ports"
)

// Adapter implements the repository port for Postgres.
type Adapter struct {
	db *sql.DB
}

var _ ports.Repository = (*Adapter)(nil)

// NewAdapter connects using a lib/pq connection string and runs the schema
// migration.
func NewAdapter(connString string) (*Adapter, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping postgres db: %w", err)
	}

	adapter := &Adapter{db: db}
	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully.
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) CreateUser(ctx context.Context, u domain.User) error {
	_, err := a.db.ExecContext(ctx,
		"INSERT INTO users (id, display_name) VALUES ($1, $2)",
		u.ID, u.DisplayName)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (a *Adapter) GetUser(ctx context.Context, id string) (domain.User, error) {
	row := a.db.QueryRowContext(ctx, `
		SELECT id, display_name, COALESCE(birth_date, ''), COALESCE(birth_time, ''), COALESCE(birth_location, '')
		FROM users WHERE id = $1`, id)

	var u domain.User
	if err := row.Scan(&u.ID, &u.DisplayName, &u.BirthDate, &u.BirthTime, &u.BirthLocation); err != nil {
		if err == sql.ErrNoRows {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("failed to load user: %w", err)
	}
	return u, nil
}

func (a *Adapter) UpdateUserBirthData(ctx context.Context, id string, bd domain.BirthData) error {
	res, err := a.db.ExecContext(ctx,
		"UPDATE users SET birth_date = $1, birth_time = $2, birth_location = $3 WHERE id = $4",
		bd.BirthDate, bd.BirthTime, bd.BirthLocation, id)
	if err != nil {
		return fmt.Errorf("failed to update birth data: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (a *Adapter) SaveChart(ctx context.Context, c domain.BirthChart) error {
	elements, err := json.Marshal(c.ElementBalance)
	if err != nil {
		return fmt.Errorf("failed to encode element balance: %w", err)
	}
	modalities, err := json.Marshal(c.ModalityBalance)
	if err != nil {
		return fmt.Errorf("failed to encode modality balance: %w", err)
	}
	themes, err := json.Marshal(c.LifeThemes)
	if err != nil {
		return fmt.Errorf("failed to encode life themes: %w", err)
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO birth_charts (user_id, sun_sign, moon_sign, rising_sign, element_balance, modality_balance, life_themes, dominant_planet)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT(user_id) DO UPDATE SET
			sun_sign=excluded.sun_sign,
			moon_sign=excluded.moon_sign,
			rising_sign=excluded.rising_sign,
			element_balance=excluded.element_balance,
			modality_balance=excluded.modality_balance,
			life_themes=excluded.life_themes,
			dominant_planet=excluded.dominant_planet;
	`, c.UserID, c.SunSign, c.MoonSign, c.RisingSign, string(elements), string(modalities), string(themes), c.DominantPlanet)
	if err != nil {
		return fmt.Errorf("failed to save chart: %w", err)
	}
	return nil
}

func (a *Adapter) GetChartByUser(ctx context.Context, userID string) (domain.BirthChart, error) {
	row := a.db.QueryRowContext(ctx, `
		SELECT user_id, sun_sign, moon_sign, rising_sign, element_balance, modality_balance, life_themes, dominant_planet
		FROM birth_charts WHERE user_id = $1`, userID)

	var c domain.BirthChart
	var elements, modalities, themes string
	if err := row.Scan(&c.UserID, &c.SunSign, &c.MoonSign, &c.RisingSign, &elements, &modalities, &themes, &c.DominantPlanet); err != nil {
		if err == sql.ErrNoRows {
			return domain.BirthChart{}, domain.ErrNotFound
		}
		return domain.BirthChart{}, fmt.Errorf("failed to load chart: %w", err)
	}

	if err := json.Unmarshal([]byte(elements), &c.ElementBalance); err != nil {
		return domain.BirthChart{}, fmt.Errorf("failed to decode element balance: %w", err)
	}
	if err := json.Unmarshal([]byte(modalities), &c.ModalityBalance); err != nil {
		return domain.BirthChart{}, fmt.Errorf("failed to decode modality balance: %w", err)
	}
	if err := json.Unmarshal([]byte(themes), &c.LifeThemes); err != nil {
		return domain.BirthChart{}, fmt.Errorf("failed to decode life themes: %w", err)
	}
	return c, nil
}

func (a *Adapter) SavePlaylist(ctx context.Context, p domain.Playlist) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryPlaylist := `
		INSERT INTO playlists (id, user_id, name, description, external_url) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			description=excluded.description,
			external_url=excluded.external_url;
	`
	if _, err := tx.ExecContext(ctx, queryPlaylist, p.ID, p.UserID, p.Name, p.Description, p.ExternalURL); err != nil {
		return fmt.Errorf("failed to save playlist metadata: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM playlist_tracks WHERE playlist_id = $1", p.ID); err != nil {
		return fmt.Errorf("failed to clear old tracks: %w", err)
	}

	stmtTrack, err := tx.PrepareContext(ctx, `
		INSERT INTO tracks (id, title, artist, album, isrc, duration_ms, cover_url, preview_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title,
			artist=excluded.artist,
			album=excluded.album,
			isrc=excluded.isrc,
			duration_ms=excluded.duration_ms,
			cover_url=excluded.cover_url,
			preview_url=excluded.preview_url;
	`)
	if err != nil {
		return err
	}
	defer stmtTrack.Close()

	stmtLink, err := tx.PrepareContext(ctx, `
		INSERT INTO playlist_tracks (playlist_id, track_id)
		VALUES ($1, $2)
		ON CONFLICT(playlist_id, track_id) DO NOTHING
	`)
	if err != nil {
		return err
	}
	defer stmtLink.Close()

	for _, t := range p.Tracks {
		if _, err := stmtTrack.ExecContext(ctx, t.ID, t.Title, t.Artist, t.Album, t.ISRC, t.DurationMs, t.CoverURL, t.PreviewURL); err != nil {
			return fmt.Errorf("failed to save track %s: %w", t.ID, err)
		}
		if _, err := stmtLink.ExecContext(ctx, p.ID, t.ID); err != nil {
			return fmt.Errorf("failed to link track %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}

func (a *Adapter) GetPlaylistByID(ctx context.Context, id string) (domain.Playlist, error) {
	row := a.db.QueryRowContext(ctx,
		"SELECT id, user_id, name, COALESCE(description, ''), COALESCE(external_url, '') FROM playlists WHERE id = $1", id)

	var p domain.Playlist
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.ExternalURL); err != nil {
		if err == sql.ErrNoRows {
			return domain.Playlist{}, domain.ErrNotFound
		}
		return domain.Playlist{}, fmt.Errorf("failed to load playlist: %w", err)
	}
	p.Tracks = []domain.Track{}

	rows, err := a.db.QueryContext(ctx, `
		SELECT t.id, t.title, t.artist, COALESCE(t.album, ''), COALESCE(t.isrc, ''), COALESCE(t.duration_ms, 0),
			COALESCE(t.cover_url, ''), COALESCE(t.preview_url, '')
		FROM tracks t
		JOIN playlist_tracks pt ON pt.track_id = t.id
		WHERE pt.playlist_id = $1
		ORDER BY pt.added_at ASC
	`, p.ID)
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("failed to load playlist tracks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.Track
		if err := rows.Scan(&t.ID, &t.Title, &t.Artist, &t.Album, &t.ISRC, &t.DurationMs, &t.CoverURL, &t.PreviewURL); err != nil {
			return domain.Playlist{}, fmt.Errorf("failed to scan playlist track: %w", err)
		}
		p.Tracks = append(p.Tracks, t)
	}
	if err := rows.Err(); err != nil {
		return domain.Playlist{}, fmt.Errorf("failed to iterate playlist tracks: %w", err)
	}

	return p, nil
}

func (a *Adapter) SaveAnalysis(ctx context.Context, analysis domain.PlanetaryHarmonicAnalysis) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO track_analyses (track_id, payload, simulated) VALUES ($1, $2, $3)
		ON CONFLICT(track_id) DO UPDATE SET
			payload=excluded.payload,
			simulated=excluded.simulated;
	`, analysis.TrackID, string(payload), analysis.Simulated)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

func (a *Adapter) GetAnalysisByTrack(ctx context.Context, trackID string) (domain.PlanetaryHarmonicAnalysis, error) {
	row := a.db.QueryRowContext(ctx, "SELECT payload FROM track_analyses WHERE track_id = $1", trackID)

	var payload string
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return domain.PlanetaryHarmonicAnalysis{}, domain.ErrNotFound
		}
		return domain.PlanetaryHarmonicAnalysis{}, fmt.Errorf("failed to load analysis: %w", err)
	}

	var analysis domain.PlanetaryHarmonicAnalysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return domain.PlanetaryHarmonicAnalysis{}, fmt.Errorf("failed to decode analysis: %w", err)
	}
	return analysis, nil
}

func (a *Adapter) UpsertMood(ctx context.Context, m domain.DailyMood) error {
	emotions, err := json.Marshal(m.Emotions)
	if err != nil {
		return fmt.Errorf("failed to encode emotions: %w", err)
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO daily_moods (user_id, date, mood, energy, emotions, journal_entry)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT(user_id, date) DO UPDATE SET
			mood=excluded.mood,
			energy=excluded.energy,
			emotions=excluded.emotions,
			journal_entry=excluded.journal_entry;
	`, m.UserID, m.Date, m.Mood, m.Energy, string(emotions), m.JournalEntry)
	if err != nil {
		return fmt.Errorf("failed to save mood: %w", err)
	}
	return nil
}

func (a *Adapter) ListMoods(ctx context.Context, userID string, limit int) ([]domain.DailyMood, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT user_id, date, mood, energy, emotions, COALESCE(journal_entry, '')
		FROM daily_moods WHERE user_id = $1
		ORDER BY date DESC LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list moods: %w", err)
	}
	defer rows.Close()

	moods := []domain.DailyMood{}
	for rows.Next() {
		var m domain.DailyMood
		var emotions string
		if err := rows.Scan(&m.UserID, &m.Date, &m.Mood, &m.Energy, &emotions, &m.JournalEntry); err != nil {
			return nil, fmt.Errorf("failed to scan mood: %w", err)
		}
		if emotions != "" {
			if err := json.Unmarshal([]byte(emotions), &m.Emotions); err != nil {
				return nil, fmt.Errorf("failed to decode emotions: %w", err)
			}
		}
		moods = append(moods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate moods: %w", err)
	}
	return moods, nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		display_name TEXT NOT NULL,
		birth_date TEXT,
		birth_time TEXT,
		birth_location TEXT,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS birth_charts (
		user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		sun_sign TEXT,
		moon_sign TEXT,
		rising_sign TEXT,
		element_balance TEXT,
		modality_balance TEXT,
		life_themes TEXT,
		dominant_planet TEXT,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS playlists (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		description TEXT,
		external_url TEXT,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS tracks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		artist TEXT NOT NULL,
		album TEXT,
		isrc TEXT,
		duration_ms INTEGER,
		cover_url TEXT,
		preview_url TEXT,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS playlist_tracks (
		playlist_id TEXT REFERENCES playlists(id) ON DELETE CASCADE,
		track_id TEXT REFERENCES tracks(id) ON DELETE CASCADE,
		added_at TIMESTAMPTZ DEFAULT NOW(),
		PRIMARY KEY (playlist_id, track_id)
	);

	CREATE TABLE IF NOT EXISTS track_analyses (
		track_id TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		simulated BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS daily_moods (
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date TEXT NOT NULL,
		mood INTEGER NOT NULL,
		energy INTEGER NOT NULL,
		emotions TEXT,
		journal_entry TEXT,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		PRIMARY KEY (user_id, date)
	);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}
	return nil
}
