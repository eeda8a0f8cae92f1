package astro

import (
	"math"
	"time"
)

const synodicMonth = 29.53058867 // days

// Reference new moon: 2000-01-06 18:14 UTC.
var newMoonEpoch = time.Date(2000, 1, 6, 18, 14, 0, 0, time.UTC)

var phaseNames = [8]string{
	"New Moon",
	"Waxing Crescent",
	"First Quarter",
	"Waxing Gibbous",
	"Full Moon",
	"Waning Gibbous",
	"Last Quarter",
	"Waning Crescent",
}

// MoonPhase returns the synodic phase label and illuminated fraction for a
// date. Good to about a day, which is all the mood calendar needs.
func MoonPhase(t time.Time) (string, float64) {
	age := math.Mod(t.Sub(newMoonEpoch).Hours()/24, synodicMonth)
	if age < 0 {
		age += synodicMonth
	}

	illumination := (1 - math.Cos(2*math.Pi*age/synodicMonth)) / 2

	// Each of the eight phases spans one eighth of the cycle, centered on
	// the cardinal points.
	segment := int(math.Floor((age/synodicMonth)*8+0.5)) % 8
	return phaseNames[segment], illumination
}
