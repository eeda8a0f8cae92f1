package resonance

import (
	"fmt"

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"
)

const simulatedConfidence = 0.3

// simulate produces a clearly-labeled placeholder analysis when no audio
// data is available, so callers always have something to render. Randomness
// never leaks into the real scoring path.
func (s *Scorer) simulate(track domain.Track, chart *domain.BirthChart) domain.PlanetaryHarmonicAnalysis {
	rng := s.trackRand(track.ID)

	count := 1 + rng.Intn(3)
	picked := rng.Perm(len(planetaryFrequencies))[:count]

	resonances := make([]domain.PlanetaryResonance, 0, count)
	for _, idx := range picked {
		p := planetaryFrequencies[idx]
		harmonic := 1 + rng.Intn(len(p.HarmonicSeries))
		resonances = append(resonances, domain.PlanetaryResonance{
			Planet:              p.Planet,
			ResonanceStrength:   0.2 + rng.Float64()*0.6,
			DetectedFrequencies: []float64{p.HarmonicSeries[harmonic-1]},
			Harmonic:            harmonic,
			Explanation:         fmt.Sprintf("Simulated %s resonance (no audio preview available)", p.Planet),
		})
	}

	dominant := resonances[0]
	for _, r := range resonances[1:] {
		if r.ResonanceStrength > dominant.ResonanceStrength {
			dominant = r
		}
	}

	return domain.PlanetaryHarmonicAnalysis{
		TrackID:             track.ID,
		PlanetaryResonances: resonances,
		DominantPlanet:      dominant.Planet,
		CosmicAlignment:     0.2 + rng.Float64()*0.4,
		ConfidenceLevel:     simulatedConfidence,
		Simulated:           true,
		Insights: []string{
			"Simulated reading: no audio preview was available for this track.",
			fmt.Sprintf("%s leads the estimated planetary signature.", dominant.Planet),
		},
	}
}
