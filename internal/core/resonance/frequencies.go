// Package resonance scores how strongly a track's detected audio harmonics
// align with the harmonic series of the ten classical planets, and derives
// an aggregate cosmic alignment plus descriptive insights.
package resonance

import "github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"

// planetaryFrequencies is the fixed ten-planet table. Base frequencies are
// the octave-transposed orbital tones (Cousto tuning); the harmonic series
// is the base and its next three integer multiples. The table is never
// mutated after init.
var planetaryFrequencies = []domain.PlanetaryFrequency{
	{Planet: "Sun", OrbitalPeriodDays: 365.25, BaseFrequency: 126.22, MusicalNote: "B",
		Keywords: []string{"vitality", "identity", "confidence"}},
	{Planet: "Moon", OrbitalPeriodDays: 27.32, BaseFrequency: 210.42, MusicalNote: "G#",
		Keywords: []string{"emotion", "intuition", "memory"}},
	{Planet: "Mercury", OrbitalPeriodDays: 87.97, BaseFrequency: 141.27, MusicalNote: "C#",
		Keywords: []string{"communication", "intellect", "wit"}},
	{Planet: "Venus", OrbitalPeriodDays: 224.70, BaseFrequency: 221.23, MusicalNote: "A",
		Keywords: []string{"love", "beauty", "harmony"}},
	{Planet: "Mars", OrbitalPeriodDays: 686.98, BaseFrequency: 144.72, MusicalNote: "D",
		Keywords: []string{"drive", "courage", "passion"}},
	{Planet: "Jupiter", OrbitalPeriodDays: 4332.59, BaseFrequency: 183.58, MusicalNote: "F#",
		Keywords: []string{"expansion", "luck", "wisdom"}},
	{Planet: "Saturn", OrbitalPeriodDays: 10759.22, BaseFrequency: 147.85, MusicalNote: "D",
		Keywords: []string{"discipline", "structure", "time"}},
	{Planet: "Uranus", OrbitalPeriodDays: 30688.50, BaseFrequency: 207.36, MusicalNote: "G#",
		Keywords: []string{"innovation", "rebellion", "surprise"}},
	{Planet: "Neptune", OrbitalPeriodDays: 60182.00, BaseFrequency: 211.44, MusicalNote: "G#",
		Keywords: []string{"dreams", "mysticism", "illusion"}},
	{Planet: "Pluto", OrbitalPeriodDays: 90560.00, BaseFrequency: 140.25, MusicalNote: "C#",
		Keywords: []string{"transformation", "power", "depth"}},
}

func init() {
	for i := range planetaryFrequencies {
		base := planetaryFrequencies[i].BaseFrequency
		planetaryFrequencies[i].HarmonicSeries = []float64{base, base * 2, base * 3, base * 4}
	}
}

// Frequencies returns a read-only copy of the planetary frequency table.
func Frequencies() []domain.PlanetaryFrequency {
	out := make([]domain.PlanetaryFrequency, len(planetaryFrequencies))
	for i, p := range planetaryFrequencies {
		out[i] = p
		out[i].HarmonicSeries = append([]float64{}, p.HarmonicSeries...)
		out[i].Keywords = append([]string{}, p.Keywords...)
	}
	return out
}

// ClosestMatch identifies the planet and 1-based harmonic index whose table
// frequency is nearest to the given frequency.
type ClosestMatch struct {
	Planet   string  `json:"planet"`
	Distance float64 `json:"distance"` // Hz
	Harmonic int     `json:"harmonic"`
}

// ClosestFrequency scans all forty table entries for the minimum absolute
// distance to freq. Returns nil for non-positive input.
func ClosestFrequency(freq float64) *ClosestMatch {
	if freq <= 0 {
		return nil
	}

	var best *ClosestMatch
	for _, p := range planetaryFrequencies {
		for i, h := range p.HarmonicSeries {
			d := freq - h
			if d < 0 {
				d = -d
			}
			if best == nil || d < best.Distance {
				best = &ClosestMatch{Planet: p.Planet, Distance: d, Harmonic: i + 1}
			}
		}
	}
	return best
}
