package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/astro"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/moodstats"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/ports"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/resonance"
)

const (
	tracksPerSeed   = 5
	maxSeedQueries  = 4
	moodWindowLimit = 60
)

// Orchestrator coordinates the calculators, the catalog, the narrative
// generator, and the repository.
type Orchestrator struct {
	catalog  ports.MusicCatalog
	repo     ports.Repository
	narrator ports.NarrativeGenerator
	scorer   *resonance.Scorer
}

// NewOrchestrator constructs an Orchestrator. narrator may be nil, in which
// case playlist descriptions use the template fallback.
func NewOrchestrator(catalog ports.MusicCatalog, repo ports.Repository, narrator ports.NarrativeGenerator, scorer *resonance.Scorer) *Orchestrator {
	if scorer == nil {
		scorer = resonance.NewScorer()
	}
	return &Orchestrator{
		catalog:  catalog,
		repo:     repo,
		narrator: narrator,
		scorer:   scorer,
	}
}

// CreateUser registers a new account.
func (o *Orchestrator) CreateUser(ctx context.Context, displayName string) (domain.User, error) {
	if strings.TrimSpace(displayName) == "" {
		return domain.User{}, errors.New("service: display name cannot be empty")
	}
	u := domain.User{ID: uuid.NewString(), DisplayName: displayName}
	if err := o.repo.CreateUser(ctx, u); err != nil {
		return domain.User{}, fmt.Errorf("service: failed to create user: %w", err)
	}
	return u, nil
}

// SetBirthData stores the user's birth inputs, computes the chart, and
// persists it. Incomplete inputs still produce a chart; the affected
// placements stay empty.
func (o *Orchestrator) SetBirthData(ctx context.Context, userID string, bd domain.BirthData) (domain.BirthChart, error) {
	if _, err := o.repo.GetUser(ctx, userID); err != nil {
		return domain.BirthChart{}, fmt.Errorf("service: failed to load user: %w", err)
	}

	if err := o.repo.UpdateUserBirthData(ctx, userID, bd); err != nil {
		return domain.BirthChart{}, fmt.Errorf("service: failed to store birth data: %w", err)
	}

	chart := domain.NewBirthChart(userID, astro.CalculateBigThree(bd))
	if err := o.repo.SaveChart(ctx, chart); err != nil {
		return domain.BirthChart{}, fmt.Errorf("service: failed to save chart: %w", err)
	}
	return chart, nil
}

// GetChart loads the user's persisted chart. When no chart row exists but the
// user already completed onboarding, the chart is recomputed from the stored
// birth inputs and persisted.
func (o *Orchestrator) GetChart(ctx context.Context, userID string) (domain.BirthChart, error) {
	chart, err := o.repo.GetChartByUser(ctx, userID)
	if err == nil {
		return chart, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.BirthChart{}, fmt.Errorf("service: failed to load chart: %w", err)
	}

	u, uerr := o.repo.GetUser(ctx, userID)
	if uerr != nil || u.BirthDate == "" {
		return domain.BirthChart{}, fmt.Errorf("service: failed to load chart: %w", err)
	}
	chart = domain.NewBirthChart(userID, astro.CalculateBigThree(u.BirthData()))
	if serr := o.repo.SaveChart(ctx, chart); serr != nil {
		log.Printf("WARN service: failed to persist recomputed chart for %s: %v", userID, serr)
	}
	return chart, nil
}

// Transits is the daily sky snapshot for the dashboard.
type Transits struct {
	Date         string          `json:"date"`
	MoonPhase    string          `json:"moonPhase"`
	Illumination float64         `json:"illumination"`
	Aspects      []domain.Aspect `json:"aspects"`
}

// TodayTransits computes the moon phase and simplified aspects for a date.
func (o *Orchestrator) TodayTransits(date time.Time) Transits {
	phase, illumination := astro.MoonPhase(date)
	return Transits{
		Date:         date.Format("2006-01-02"),
		MoonPhase:    phase,
		Illumination: illumination,
		Aspects:      astro.DailyAspects(date, resonance.Frequencies()),
	}
}

// GeneratePlaylist builds a playlist from the user's chart: chart-derived
// seed queries against the catalog, de-duplicated by ISRC, with an
// LLM-written description that degrades to a template on failure.
func (o *Orchestrator) GeneratePlaylist(ctx context.Context, userID, name string) (domain.Playlist, error) {
	chart, err := o.repo.GetChartByUser(ctx, userID)
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("service: failed to load chart: %w", err)
	}

	pl, err := domain.NewPlaylist(uuid.NewString(), userID, name)
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("service: invalid playlist: %w", err)
	}

	for _, query := range seedQueries(chart) {
		tracks, err := o.catalog.SearchTracks(ctx, query, tracksPerSeed)
		if err != nil {
			log.Printf("WARN service: seed search %q failed: %v", query, err)
			continue
		}
		for _, t := range tracks {
			if err := pl.AddTrack(t); err != nil && !errors.Is(err, domain.ErrDuplicateISRC) {
				return domain.Playlist{}, fmt.Errorf("service: domain rule violation: %w", err)
			}
		}
	}
	if len(pl.Tracks) == 0 {
		return domain.Playlist{}, errors.New("service: no tracks found for chart seeds")
	}

	pl.Description = o.describePlaylist(ctx, chart, pl.Tracks)

	if err := o.repo.SavePlaylist(ctx, *pl); err != nil {
		return domain.Playlist{}, fmt.Errorf("service: failed to save playlist: %w", err)
	}
	return *pl, nil
}

func (o *Orchestrator) describePlaylist(ctx context.Context, chart domain.BirthChart, tracks []domain.Track) string {
	fallback := fmt.Sprintf("A cosmic playlist tuned to your %s Sun and %s Moon.",
		orUnknown(chart.SunSign), orUnknown(chart.MoonSign))
	if o.narrator == nil {
		return fallback
	}

	titles := make([]string, 0, len(tracks))
	for _, t := range tracks {
		titles = append(titles, t.Title)
	}
	desc, err := o.narrator.DescribePlaylist(ctx, chart, titles)
	if err != nil || strings.TrimSpace(desc) == "" {
		log.Printf("WARN service: narrative generation failed, using template: %v", err)
		return fallback
	}
	return desc
}

// GetPlaylist loads a playlist and enforces ownership.
func (o *Orchestrator) GetPlaylist(ctx context.Context, userID, playlistID string) (domain.Playlist, error) {
	pl, err := o.repo.GetPlaylistByID(ctx, playlistID)
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("service: failed to load playlist: %w", err)
	}
	if pl.UserID != userID {
		return domain.Playlist{}, fmt.Errorf("service: failed to load playlist: %w", domain.ErrNotFound)
	}
	return pl, nil
}

// ExportPlaylist pushes a playlist to the music provider under the user's
// account and records the external URL. Tracks stored without a provider ID
// are resolved by title and artist first; an unresolvable track surfaces the
// catalog's NoConfidentMatchError to the caller.
func (o *Orchestrator) ExportPlaylist(ctx context.Context, userID, playlistID, userToken string) (domain.Playlist, error) {
	pl, err := o.GetPlaylist(ctx, userID, playlistID)
	if err != nil {
		return domain.Playlist{}, err
	}

	for i, t := range pl.Tracks {
		if t.ID != "" {
			continue
		}
		matched, err := o.catalog.MatchTrack(ctx, t.Title, t.Artist)
		if err != nil {
			return domain.Playlist{}, fmt.Errorf("service: failed to resolve track %q: %w", t.Title, err)
		}
		pl.Tracks[i].ID = matched.ID
		if pl.Tracks[i].ISRC == "" {
			pl.Tracks[i].ISRC = matched.ISRC
		}
	}

	url, err := o.catalog.ExportPlaylist(ctx, userToken, pl)
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("service: export failed: %w", err)
	}

	pl.ExternalURL = url
	if err := o.repo.SavePlaylist(ctx, pl); err != nil {
		return domain.Playlist{}, fmt.Errorf("service: failed to save playlist: %w", err)
	}
	return pl, nil
}

// TrackResonance returns the stored harmonic analysis for a track, producing
// and persisting a simulated one when no analysis exists yet.
func (o *Orchestrator) TrackResonance(ctx context.Context, userID, trackID string) (domain.PlanetaryHarmonicAnalysis, error) {
	analysis, err := o.repo.GetAnalysisByTrack(ctx, trackID)
	if err == nil {
		return analysis, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.PlanetaryHarmonicAnalysis{}, fmt.Errorf("service: failed to load analysis: %w", err)
	}

	var chart *domain.BirthChart
	if c, err := o.repo.GetChartByUser(ctx, userID); err == nil {
		chart = &c
	}

	analysis = o.scorer.Analyze(domain.Track{ID: trackID}, nil, chart)
	if err := o.repo.SaveAnalysis(ctx, analysis); err != nil {
		log.Printf("WARN service: failed to persist simulated analysis for %s: %v", trackID, err)
	}
	return analysis, nil
}

// LogMood upserts one mood sample. At most one row per user and date.
func (o *Orchestrator) LogMood(ctx context.Context, m domain.DailyMood) error {
	if !m.Valid() {
		return errors.New("service: mood entry is invalid")
	}
	if err := o.repo.UpsertMood(ctx, m); err != nil {
		return fmt.Errorf("service: failed to save mood: %w", err)
	}
	return nil
}

// ListMoods returns the user's recent mood samples, newest first.
func (o *Orchestrator) ListMoods(ctx context.Context, userID string, limit int) ([]domain.DailyMood, error) {
	if limit <= 0 {
		limit = moodWindowLimit
	}
	moods, err := o.repo.ListMoods(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list moods: %w", err)
	}
	return moods, nil
}

// MoodInsights aggregates the user's recent moods against computed moon
// phases and daily aspects.
func (o *Orchestrator) MoodInsights(ctx context.Context, userID string) (moodstats.Insights, error) {
	moods, err := o.ListMoods(ctx, userID, moodWindowLimit)
	if err != nil {
		return moodstats.Insights{}, err
	}

	freqs := resonance.Frequencies()
	phases := make(map[string]string, len(moods))
	aspects := make(map[string][]domain.Aspect, len(moods))
	for _, m := range moods {
		date, err := time.Parse("2006-01-02", m.Date)
		if err != nil {
			continue
		}
		phase, _ := astro.MoonPhase(date)
		phases[m.Date] = phase
		aspects[m.Date] = astro.DailyAspects(date, freqs)
	}

	return moodstats.Analyze(moods, phases, aspects), nil
}

// seedQueries derives catalog search terms from a chart: the sun sign's
// elemental mood words plus the chart's life themes.
func seedQueries(chart domain.BirthChart) []string {
	elementMoods := map[string]string{
		"fire":  "energetic anthems",
		"earth": "grounded acoustic",
		"air":   "uplifting indie",
		"water": "dreamy ambient",
	}

	var queries []string
	if el, ok := domain.SignElements[chart.SunSign]; ok {
		queries = append(queries, elementMoods[el])
	}
	for _, theme := range chart.LifeThemes {
		queries = append(queries, strings.ToLower(theme)+" music")
	}
	if len(queries) == 0 {
		queries = append(queries, "cosmic chill")
	}
	if len(queries) > maxSeedQueries {
		queries = queries[:maxSeedQueries]
	}
	return queries
}

func orUnknown(sign string) string {
	if sign == "" {
		return "uncharted"
	}
	return sign
}
