// Package moodstats aggregates logged mood samples against moon phases and
// planetary aspects for the insights dashboard. Pure statistics: means,
// frequency counts, clamped ratios.
package moodstats

import (
	"math"
	"time"

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"
)

// neutralValue fills weekday buckets that have no samples, on the 0-10 scale.
const neutralValue = 5.0

// WeekdayAverage is one bucket of the weekly pattern chart.
type WeekdayAverage struct {
	Weekday string  `json:"weekday"`
	Mood    float64 `json:"mood"`
	Energy  float64 `json:"energy"`
	Count   int     `json:"count"`
}

// Insights is the full dashboard payload for one user.
type Insights struct {
	WeeklyPatterns       []WeekdayAverage `json:"weeklyPatterns"`
	LunarSensitivity     float64          `json:"lunarSensitivity"`     // 0..1
	PlanetaryCorrelation float64          `json:"planetaryCorrelation"` // 0..1
	OverallMood          string           `json:"overallMood"`
	SampleCount          int              `json:"sampleCount"`
}

// WeeklyPatterns buckets samples by weekday. All seven weekdays are always
// present, Sunday first; empty buckets read as neutral.
func WeeklyPatterns(entries []domain.DailyMood) []WeekdayAverage {
	type acc struct {
		mood, energy float64
		count        int
	}
	var buckets [7]acc

	for _, e := range entries {
		t, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			continue
		}
		b := &buckets[int(t.Weekday())]
		b.mood += float64(e.Mood)
		b.energy += float64(e.Energy)
		b.count++
	}

	out := make([]WeekdayAverage, 7)
	for i, b := range buckets {
		avg := WeekdayAverage{
			Weekday: time.Weekday(i).String(),
			Mood:    neutralValue,
			Energy:  neutralValue,
			Count:   b.count,
		}
		if b.count > 0 {
			avg.Mood = b.mood / float64(b.count)
			avg.Energy = b.energy / float64(b.count)
		}
		out[i] = avg
	}
	return out
}

// LunarSensitivity measures how much a user's mood deviates from their own
// average on high-illumination days (full-moon side of the cycle) versus the
// rest. phases maps date -> moon phase label.
func LunarSensitivity(entries []domain.DailyMood, phases map[string]string) float64 {
	if len(entries) == 0 {
		return 0
	}

	var total float64
	for _, e := range entries {
		total += float64(e.Mood)
	}
	mean := total / float64(len(entries))

	var lunarDeviation, lunarDays float64
	for _, e := range entries {
		switch phases[e.Date] {
		case "Full Moon", "Waxing Gibbous", "Waning Gibbous":
			lunarDeviation += math.Abs(float64(e.Mood) - mean)
			lunarDays++
		}
	}
	if lunarDays == 0 {
		return 0
	}

	// Average deviation on lunar days, scaled against half the mood span.
	return clamp01(lunarDeviation / lunarDays / 5.0)
}

// PlanetaryCorrelation is the clamped share of aspect-heavy days on which
// the user's mood moved more than one point from their average. aspects maps
// date -> that day's simplified aspects.
func PlanetaryCorrelation(entries []domain.DailyMood, aspects map[string][]domain.Aspect) float64 {
	if len(entries) == 0 {
		return 0
	}

	var total float64
	for _, e := range entries {
		total += float64(e.Mood)
	}
	mean := total / float64(len(entries))

	var aspectDays, movedDays float64
	for _, e := range entries {
		if len(aspects[e.Date]) == 0 {
			continue
		}
		aspectDays++
		if math.Abs(float64(e.Mood)-mean) > 1 {
			movedDays++
		}
	}
	if aspectDays == 0 {
		return 0
	}

	return clamp01(movedDays / aspectDays)
}

// OverallMood names the user's average state using the energy/valence
// quadrant scheme common to audio mood classification.
func OverallMood(entries []domain.DailyMood) string {
	if len(entries) == 0 {
		return "Uncharted"
	}

	var mood, energy float64
	for _, e := range entries {
		mood += float64(e.Mood)
		energy += float64(e.Energy)
	}
	mood /= float64(len(entries))
	energy /= float64(len(entries))

	highEnergy := energy > 6
	highMood := mood > 5

	switch {
	case highEnergy && highMood:
		return "Radiant & Energized"
	case highEnergy && !highMood:
		return "Intense & Restless"
	case !highEnergy && highMood:
		return "Calm & Content"
	default:
		return "Reflective & Quiet"
	}
}

// Analyze assembles the full insights payload.
func Analyze(entries []domain.DailyMood, phases map[string]string, aspects map[string][]domain.Aspect) Insights {
	return Insights{
		WeeklyPatterns:       WeeklyPatterns(entries),
		LunarSensitivity:     LunarSensitivity(entries, phases),
		PlanetaryCorrelation: PlanetaryCorrelation(entries, aspects),
		OverallMood:          OverallMood(entries),
		SampleCount:          len(entries),
	}
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
