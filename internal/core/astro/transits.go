package astro

import (
	"math"
	"time"

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"
)

type aspectBand struct {
	name  string
	angle float64
	orb   float64
}

var aspectBands = [5]aspectBand{
	{"conjunction", 0, 8},
	{"sextile", 60, 6},
	{"square", 90, 8},
	{"trine", 120, 8},
	{"opposition", 180, 8},
}

// DailyAspects computes simplified same-day aspects between the planets in
// the supplied frequency table. Each planet advances around the wheel at a
// constant mean rate derived from its orbital period; real retrograde motion
// is ignored.
func DailyAspects(date time.Time, planets []domain.PlanetaryFrequency) []domain.Aspect {
	positions := make([]float64, len(planets))
	days := date.Sub(newMoonEpoch).Hours() / 24
	for i, p := range planets {
		if p.OrbitalPeriodDays <= 0 {
			continue
		}
		pos := math.Mod(days/p.OrbitalPeriodDays*360, 360)
		if pos < 0 {
			pos += 360
		}
		positions[i] = pos
	}

	var aspects []domain.Aspect
	for i := 0; i < len(planets); i++ {
		for j := i + 1; j < len(planets); j++ {
			sep := math.Abs(positions[i] - positions[j])
			if sep > 180 {
				sep = 360 - sep
			}
			for _, band := range aspectBands {
				orb := math.Abs(sep - band.angle)
				if orb <= band.orb {
					aspects = append(aspects, domain.Aspect{
						Planet1: planets[i].Planet,
						Planet2: planets[j].Planet,
						Name:    band.name,
						Orb:     orb,
					})
					break
				}
			}
		}
	}
	return aspects
}
