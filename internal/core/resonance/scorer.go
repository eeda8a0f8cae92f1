package resonance

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"
)

const (
	toleranceBand      = 0.02 // match window as a fraction of the harmonic frequency
	noiseFloor         = 0.1  // planets at or below this resonance are dropped
	defaultConfidence  = 0.5
	strongResonance    = 0.6
	diversityBonusCap  = 0.3
	diversityBonusStep = 0.05
	strengthBonusStep  = 0.1
)

// Scorer runs planetary resonance analysis. The real scoring path is fully
// deterministic; the seed only drives the simulated fallback so tests can
// pin its output.
type Scorer struct {
	baseSeed int64
}

// NewScorer returns a scorer with a time-derived seed for the simulated path.
func NewScorer() *Scorer {
	return NewSeededScorer(time.Now().UnixNano())
}

// NewSeededScorer returns a scorer whose simulated fallback is reproducible.
func NewSeededScorer(seed int64) *Scorer {
	return &Scorer{baseSeed: seed}
}

// Analyze scores one track against the planetary frequency table. A nil or
// empty analysis routes to the simulated fallback; chart may be nil and only
// enriches the insight text.
func (s *Scorer) Analyze(track domain.Track, analysis *domain.AudioAnalysis, chart *domain.BirthChart) domain.PlanetaryHarmonicAnalysis {
	if analysis == nil || len(analysis.Harmonics) == 0 {
		return s.simulate(track, chart)
	}

	var kept []domain.PlanetaryResonance
	for _, planet := range planetaryFrequencies {
		res := scorePlanet(planet, analysis.Harmonics)
		if res.ResonanceStrength > noiseFloor {
			kept = append(kept, res)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].ResonanceStrength > kept[j].ResonanceStrength
	})

	confidence := analysis.Confidence
	if confidence <= 0 {
		confidence = defaultConfidence
	}

	out := domain.PlanetaryHarmonicAnalysis{
		TrackID:             track.ID,
		PlanetaryResonances: kept,
		CosmicAlignment:     cosmicAlignment(kept, confidence),
		CosmicRatios:        detectCosmicRatios(kept),
		ConfidenceLevel:     confidence,
	}
	if len(kept) > 0 {
		out.DominantPlanet = kept[0].Planet
	}
	out.Insights = buildInsights(out, chart)
	return out
}

// scorePlanet applies the tolerance-band match of every detected harmonic
// against every table harmonic of one planet.
func scorePlanet(planet domain.PlanetaryFrequency, harmonics []domain.AudioHarmonic) domain.PlanetaryResonance {
	var (
		strengths []float64
		detected  []float64
		bestMatch float64
		bestIdx   int
	)

	for i, h := range planet.HarmonicSeries {
		tolerance := h * toleranceBand
		for _, audio := range harmonics {
			diff := math.Abs(audio.Frequency - h)
			if diff > tolerance {
				continue
			}
			strength := (1 - diff/tolerance) * audio.Amplitude
			strengths = append(strengths, strength)
			detected = append(detected, audio.Frequency)
			if strength > bestMatch {
				bestMatch = strength
				bestIdx = i + 1
			}
		}
	}

	res := domain.PlanetaryResonance{
		Planet:              planet.Planet,
		DetectedFrequencies: detected,
		Harmonic:            bestIdx,
	}
	if len(strengths) == 0 {
		return res
	}

	var sum float64
	for _, v := range strengths {
		sum += v
	}
	res.ResonanceStrength = clamp01(sum / float64(len(strengths)))
	res.Explanation = fmt.Sprintf("%s resonates through harmonic %d (%s energy: %s)",
		planet.Planet, bestIdx, planet.MusicalNote, strings.Join(planet.Keywords, ", "))
	return res
}

func cosmicAlignment(kept []domain.PlanetaryResonance, confidence float64) float64 {
	if len(kept) == 0 {
		return 0
	}

	var sum float64
	strong := 0
	for _, r := range kept {
		sum += r.ResonanceStrength
		if r.ResonanceStrength > strongResonance {
			strong++
		}
	}
	avg := sum / float64(len(kept))

	diversityBonus := math.Min(float64(len(kept))*diversityBonusStep, diversityBonusCap)
	strengthBonus := float64(strong) * strengthBonusStep

	return clamp01(math.Min((avg+diversityBonus+strengthBonus)*confidence, 1.0))
}

func buildInsights(a domain.PlanetaryHarmonicAnalysis, chart *domain.BirthChart) []string {
	var insights []string

	if a.DominantPlanet != "" {
		for _, p := range planetaryFrequencies {
			if p.Planet == a.DominantPlanet {
				insights = append(insights, fmt.Sprintf(
					"%s dominates this track's frequency signature, channeling %s.",
					p.Planet, strings.Join(p.Keywords, ", ")))
				break
			}
		}
	}

	switch {
	case a.CosmicAlignment > 0.7:
		insights = append(insights, "Strong cosmic alignment: the track's harmonics sit squarely on planetary tones.")
	case a.CosmicAlignment > 0.4:
		insights = append(insights, "Moderate cosmic alignment with several planetary resonances present.")
	case len(a.PlanetaryResonances) > 0:
		insights = append(insights, "Subtle cosmic alignment; planetary tones are present but faint.")
	}

	if len(a.CosmicRatios) > 0 {
		insights = append(insights, fmt.Sprintf(
			"%d cosmic interval(s) detected between planetary frequencies.", len(a.CosmicRatios)))
	}

	if chart != nil {
		switch a.DominantPlanet {
		case "Sun":
			if chart.SunSign != "" {
				insights = append(insights, fmt.Sprintf("The solar signature echoes your Sun in %s.", chart.SunSign))
			}
		case "Moon":
			if chart.MoonSign != "" {
				insights = append(insights, fmt.Sprintf("The lunar signature echoes your Moon in %s.", chart.MoonSign))
			}
		}
	}

	return insights
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// trackSeed derives a per-track seed so simulated output is stable for a
// given scorer seed and track.
func (s *Scorer) trackSeed(trackID string) int64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(trackID))
	return s.baseSeed ^ int64(h.Sum32())
}

func (s *Scorer) trackRand(trackID string) *rand.Rand {
	// #nosec G404 -- simulated placeholder output, not security-sensitive
	return rand.New(rand.NewSource(s.trackSeed(trackID)))
}
