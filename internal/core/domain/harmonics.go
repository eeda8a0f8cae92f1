package domain

// AudioHarmonic is a single detected frequency component of a track,
// supplied by the harmonic-analysis collaborator.
type AudioHarmonic struct {
	Frequency float64 `json:"frequency"` // Hz
	Amplitude float64 `json:"amplitude"` // 0..1
}

// AudioAnalysis is the output of the harmonic analyzer for one preview.
type AudioAnalysis struct {
	Harmonics    []AudioHarmonic `json:"harmonics"`
	Confidence   float64         `json:"confidence"`
	AnalysisType string          `json:"analysisType"`
}

// PlanetaryFrequency is one row of the fixed ten-planet frequency table.
// The table is a compile-time constant: loaded once, never mutated.
type PlanetaryFrequency struct {
	Planet            string    `json:"planet"`
	OrbitalPeriodDays float64   `json:"orbitalPeriod"`
	BaseFrequency     float64   `json:"baseFrequency"` // Hz
	HarmonicSeries    []float64 `json:"harmonicSeries"`
	MusicalNote       string    `json:"musicalNote"`
	Keywords          []string  `json:"astrologyKeywords"`
}

// PlanetaryResonance scores how strongly a track's harmonics align with one
// planet's harmonic series.
type PlanetaryResonance struct {
	Planet              string    `json:"planet"`
	ResonanceStrength   float64   `json:"resonanceStrength"` // 0..1
	DetectedFrequencies []float64 `json:"detectedFrequencies"`
	Harmonic            int       `json:"harmonic"` // 1-based index of the dominant harmonic
	Explanation         string    `json:"explanation"`
}

// CosmicRatio is a frequency ratio between two planets' detected frequencies
// that matches a recognized musical interval.
type CosmicRatio struct {
	PlanetA  string  `json:"planetA"`
	PlanetB  string  `json:"planetB"`
	Ratio    float64 `json:"ratio"`
	Interval string  `json:"interval"`
}

// PlanetaryHarmonicAnalysis aggregates all planetary resonances for one track.
type PlanetaryHarmonicAnalysis struct {
	TrackID             string               `json:"trackId"`
	PlanetaryResonances []PlanetaryResonance `json:"planetaryResonances"`
	DominantPlanet      string               `json:"dominantPlanet"`
	CosmicAlignment     float64              `json:"cosmicAlignment"` // 0..1
	CosmicRatios        []CosmicRatio        `json:"cosmicRatios"`
	Insights            []string             `json:"insights"`
	ConfidenceLevel     float64              `json:"confidenceLevel"`
	Simulated           bool                 `json:"simulated"`
}

// Aspect is a simplified same-day angular relation between two planets,
// used as an input label by the mood correlation view.
type Aspect struct {
	Planet1 string  `json:"planet1"`
	Planet2 string  `json:"planet2"`
	Name    string  `json:"aspect"`
	Orb     float64 `json:"orb"` // degrees off exact
}
