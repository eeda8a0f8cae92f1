package ports

import (
	"context"

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"
)

// Repository is the persistence port. Both the sqlite and postgres adapters
// implement it.
type Repository interface {
	CreateUser(ctx context.Context, u domain.User) error
	GetUser(ctx context.Context, id string) (domain.User, error)
	UpdateUserBirthData(ctx context.Context, id string, bd domain.BirthData) error

	SaveChart(ctx context.Context, c domain.BirthChart) error
	GetChartByUser(ctx context.Context, userID string) (domain.BirthChart, error)

	SavePlaylist(ctx context.Context, p domain.Playlist) error
	GetPlaylistByID(ctx context.Context, id string) (domain.Playlist, error)

	SaveAnalysis(ctx context.Context, a domain.PlanetaryHarmonicAnalysis) error
	GetAnalysisByTrack(ctx context.Context, trackID string) (domain.PlanetaryHarmonicAnalysis, error)

	UpsertMood(ctx context.Context, m domain.DailyMood) error
	ListMoods(ctx context.Context, userID string, limit int) ([]domain.DailyMood, error)
}
