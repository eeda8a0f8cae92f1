package resonance

import "github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"

// ratioTolerance is the half-width of each interval band. Kept tighter than
// half the smallest band gap so near misses like 1.47 stay neutral instead of
// bleeding into the perfect fifth.
const ratioTolerance = 0.025

type intervalBand struct {
	ratio float64
	label string
}

// Recognized musical intervals between planetary frequencies. Checked in
// order; ratios outside every band are neutral and dropped.
var intervalBands = [6]intervalBand{
	{2.0, "octave - cosmic unity"},
	{1.5, "perfect fifth - natural harmony"},
	{1.333, "perfect fourth - stable foundation"},
	{1.618, "golden ratio - divine proportion"},
	{1.25, "major third - joyful brightness"},
	{1.2, "minor third - gentle melancholy"},
}

// detectCosmicRatios classifies the frequency ratio between every pair of
// kept planets, using the first detected frequency of each.
func detectCosmicRatios(kept []domain.PlanetaryResonance) []domain.CosmicRatio {
	var ratios []domain.CosmicRatio
	for i := 0; i < len(kept); i++ {
		if len(kept[i].DetectedFrequencies) == 0 {
			continue
		}
		for j := i + 1; j < len(kept); j++ {
			if len(kept[j].DetectedFrequencies) == 0 {
				continue
			}
			fa := kept[i].DetectedFrequencies[0]
			fb := kept[j].DetectedFrequencies[0]
			if fa <= 0 || fb <= 0 {
				continue
			}

			ratio := fa / fb
			if ratio < 1 {
				ratio = fb / fa
			}

			if label, ok := classifyRatio(ratio); ok {
				ratios = append(ratios, domain.CosmicRatio{
					PlanetA:  kept[i].Planet,
					PlanetB:  kept[j].Planet,
					Ratio:    ratio,
					Interval: label,
				})
			}
		}
	}
	return ratios
}

func classifyRatio(ratio float64) (string, bool) {
	for _, band := range intervalBands {
		diff := ratio - band.ratio
		if diff < 0 {
			diff = -diff
		}
		if diff <= ratioTolerance {
			return band.label, true
		}
	}
	return "", false
}
