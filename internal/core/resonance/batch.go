package resonance

import (
	"context"
	"log"
	"time"

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"
)

// interTrackDelay spaces out upstream analysis calls so batch runs don't
// hammer the audio collaborator.
const interTrackDelay = 200 * time.Millisecond

// FetchAnalysis obtains audio analysis for one track from the upstream
// collaborator. Implementations may block on network I/O.
type FetchAnalysis func(ctx context.Context, track domain.Track) (*domain.AudioAnalysis, error)

// AnalyzeBatch scores tracks strictly one at a time. A failed fetch for one
// track is logged and that track degrades to the simulated path; the batch
// never aborts on per-track errors. Context cancellation stops the loop and
// returns the results produced so far along with the context error.
func (s *Scorer) AnalyzeBatch(ctx context.Context, tracks []domain.Track, chart *domain.BirthChart, fetch FetchAnalysis) ([]domain.PlanetaryHarmonicAnalysis, error) {
	results := make([]domain.PlanetaryHarmonicAnalysis, 0, len(tracks))

	for i, track := range tracks {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		var analysis *domain.AudioAnalysis
		if fetch != nil {
			a, err := fetch(ctx, track)
			if err != nil {
				log.Printf("WARN resonance: analysis failed for track %s, using simulated fallback: %v", track.ID, err)
			} else {
				analysis = a
			}
		}

		results = append(results, s.Analyze(track, analysis, chart))

		if i < len(tracks)-1 {
			timer := time.NewTimer(interTrackDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return results, ctx.Err()
			case <-timer.C:
			}
		}
	}

	return results, nil
}
