package resonance

import (
	"math"
	"strings"
	"testing"

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"
)

func TestScorer_Analyze_PureSunTone(t *testing.T) {
	s := NewSeededScorer(1)
	analysis := &domain.AudioAnalysis{
		Harmonics: []domain.AudioHarmonic{{Frequency: 126.22, Amplitude: 1.0}},
	}

	got := s.Analyze(domain.Track{ID: "t-sun"}, analysis, nil)

	if got.Simulated {
		t.Fatal("real analysis must not be flagged simulated")
	}
	if got.DominantPlanet != "Sun" {
		t.Fatalf("dominant planet = %q, want Sun", got.DominantPlanet)
	}
	if len(got.PlanetaryResonances) != 1 {
		t.Fatalf("expected exactly one resonance, got %d", len(got.PlanetaryResonances))
	}

	sun := got.PlanetaryResonances[0]
	if sun.Harmonic != 1 {
		t.Errorf("harmonic = %d, want 1", sun.Harmonic)
	}
	if math.Abs(sun.ResonanceStrength-1.0) > 1e-9 {
		t.Errorf("resonance strength = %v, want 1.0", sun.ResonanceStrength)
	}

	// Confidence was absent, so it defaults and scales the alignment:
	// (1.0 avg + 0.05 diversity + 0.1 strong) * 0.5.
	if got.ConfidenceLevel != 0.5 {
		t.Errorf("confidence level = %v, want 0.5", got.ConfidenceLevel)
	}
	if math.Abs(got.CosmicAlignment-0.575) > 1e-9 {
		t.Errorf("cosmic alignment = %v, want 0.575", got.CosmicAlignment)
	}
	if len(got.Insights) == 0 {
		t.Error("expected at least one insight")
	}
}

func TestScorer_Analyze_NoiseFloorDropsWeakPlanets(t *testing.T) {
	s := NewSeededScorer(1)
	analysis := &domain.AudioAnalysis{
		Harmonics:  []domain.AudioHarmonic{{Frequency: 126.22, Amplitude: 0.1}},
		Confidence: 0.8,
	}

	got := s.Analyze(domain.Track{ID: "t-faint"}, analysis, nil)

	if len(got.PlanetaryResonances) != 0 {
		t.Fatalf("resonances at or below the noise floor must be dropped, got %d", len(got.PlanetaryResonances))
	}
	if got.DominantPlanet != "" {
		t.Errorf("dominant planet = %q, want empty", got.DominantPlanet)
	}
	if got.CosmicAlignment != 0 {
		t.Errorf("cosmic alignment = %v, want 0", got.CosmicAlignment)
	}
	if got.Simulated {
		t.Error("a weak real analysis is still a real analysis")
	}
}

func TestScorer_Analyze_OutputsStayInRange(t *testing.T) {
	s := NewSeededScorer(7)
	inputs := []*domain.AudioAnalysis{
		{Harmonics: []domain.AudioHarmonic{
			{Frequency: 126.22, Amplitude: 1.0},
			{Frequency: 210.42, Amplitude: 1.0},
			{Frequency: 141.27, Amplitude: 1.0},
			{Frequency: 221.23, Amplitude: 1.0},
			{Frequency: 144.72, Amplitude: 1.0},
		}, Confidence: 1.0},
		{Harmonics: []domain.AudioHarmonic{
			{Frequency: 252.44, Amplitude: 0.9},
			{Frequency: 420.84, Amplitude: 0.4},
		}, Confidence: 0.2},
		{Harmonics: []domain.AudioHarmonic{
			{Frequency: 50, Amplitude: 0.5}, // matches nothing
		}, Confidence: 0.9},
	}

	for i, analysis := range inputs {
		got := s.Analyze(domain.Track{ID: "t-range"}, analysis, nil)
		if got.CosmicAlignment < 0 || got.CosmicAlignment > 1 {
			t.Errorf("input %d: cosmic alignment %v out of [0,1]", i, got.CosmicAlignment)
		}
		for _, r := range got.PlanetaryResonances {
			if r.ResonanceStrength < 0 || r.ResonanceStrength > 1 {
				t.Errorf("input %d: %s strength %v out of [0,1]", i, r.Planet, r.ResonanceStrength)
			}
			if r.ResonanceStrength <= noiseFloor {
				t.Errorf("input %d: %s strength %v at or below noise floor was kept", i, r.Planet, r.ResonanceStrength)
			}
		}
	}
}

func TestScorer_Analyze_SortsByStrength(t *testing.T) {
	s := NewSeededScorer(1)
	analysis := &domain.AudioAnalysis{
		Harmonics: []domain.AudioHarmonic{
			{Frequency: 126.22, Amplitude: 0.4},
			{Frequency: 210.42, Amplitude: 0.9},
		},
		Confidence: 0.8,
	}

	got := s.Analyze(domain.Track{ID: "t-sorted"}, analysis, nil)
	if len(got.PlanetaryResonances) < 2 {
		t.Fatalf("expected at least two resonances, got %d", len(got.PlanetaryResonances))
	}
	for i := 1; i < len(got.PlanetaryResonances); i++ {
		prev, cur := got.PlanetaryResonances[i-1], got.PlanetaryResonances[i]
		if cur.ResonanceStrength > prev.ResonanceStrength {
			t.Fatalf("resonances not sorted descending: %v before %v", prev.ResonanceStrength, cur.ResonanceStrength)
		}
	}
	if got.DominantPlanet != "Moon" {
		t.Fatalf("dominant planet = %q, want Moon", got.DominantPlanet)
	}
}

func TestScorer_Analyze_ChartEchoInsight(t *testing.T) {
	s := NewSeededScorer(1)
	analysis := &domain.AudioAnalysis{
		Harmonics:  []domain.AudioHarmonic{{Frequency: 126.22, Amplitude: 1.0}},
		Confidence: 0.9,
	}
	chart := &domain.BirthChart{SunSign: "Leo", MoonSign: "Pisces"}

	got := s.Analyze(domain.Track{ID: "t-chart"}, analysis, chart)

	found := false
	for _, in := range got.Insights {
		if strings.Contains(in, "Leo") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a sun sign echo in insights, got %v", got.Insights)
	}
}

func TestScorer_SimulatedFallback(t *testing.T) {
	s := NewSeededScorer(42)

	tests := []struct {
		name     string
		analysis *domain.AudioAnalysis
	}{
		{"nil analysis", nil},
		{"empty harmonics", &domain.AudioAnalysis{Confidence: 0.9}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := s.Analyze(domain.Track{ID: "t-sim"}, tc.analysis, nil)

			if !got.Simulated {
				t.Fatal("expected simulated flag")
			}
			if got.ConfidenceLevel != 0.3 {
				t.Errorf("confidence level = %v, want 0.3", got.ConfidenceLevel)
			}
			if got.CosmicAlignment < 0.2 || got.CosmicAlignment > 0.6 {
				t.Errorf("cosmic alignment %v out of simulated range [0.2, 0.6]", got.CosmicAlignment)
			}
			if n := len(got.PlanetaryResonances); n < 1 || n > 3 {
				t.Fatalf("expected 1..3 simulated resonances, got %d", n)
			}
			for _, r := range got.PlanetaryResonances {
				if r.ResonanceStrength < 0.2 || r.ResonanceStrength > 0.8 {
					t.Errorf("%s strength %v out of simulated range [0.2, 0.8]", r.Planet, r.ResonanceStrength)
				}
				if r.Harmonic < 1 || r.Harmonic > 4 {
					t.Errorf("%s harmonic %d out of 1..4", r.Planet, r.Harmonic)
				}
				if len(r.DetectedFrequencies) != 1 {
					t.Errorf("%s: expected one placeholder frequency, got %d", r.Planet, len(r.DetectedFrequencies))
				}
			}
			if got.DominantPlanet == "" {
				t.Error("simulated analysis must still name a dominant planet")
			}
		})
	}
}

func TestScorer_SimulatedIsDeterministicPerSeedAndTrack(t *testing.T) {
	a := NewSeededScorer(99).Analyze(domain.Track{ID: "track-1"}, nil, nil)
	b := NewSeededScorer(99).Analyze(domain.Track{ID: "track-1"}, nil, nil)

	if a.DominantPlanet != b.DominantPlanet || a.CosmicAlignment != b.CosmicAlignment {
		t.Fatalf("same seed and track produced different output: %+v vs %+v", a, b)
	}
	if len(a.PlanetaryResonances) != len(b.PlanetaryResonances) {
		t.Fatalf("same seed and track produced different resonance counts")
	}
	for i := range a.PlanetaryResonances {
		if a.PlanetaryResonances[i].Planet != b.PlanetaryResonances[i].Planet {
			t.Fatalf("same seed and track produced different planets at %d", i)
		}
	}
}
