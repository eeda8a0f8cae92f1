package worker

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/hajimehoshi/go-mp3"

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/ports"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/resonance"
)

const (
	// fullConfidenceSeconds is the preview length at which the analyzer
	// reports its ceiling confidence.
	fullConfidenceSeconds = 10.0
	maxConfidence         = 0.9
	minAmplitude          = 0.05
)

// PreviewAnalyzer fetches a track's MP3 preview and measures its spectral
// magnitude at each of the forty planetary harmonic frequencies using the
// Goertzel algorithm, so the scorer never needs a full FFT.
type PreviewAnalyzer struct {
	httpClient *http.Client
}

var _ ports.HarmonicAnalyzer = (*PreviewAnalyzer)(nil)

func NewPreviewAnalyzer() *PreviewAnalyzer {
	return &PreviewAnalyzer{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (pa *PreviewAnalyzer) AnalyzePreview(ctx context.Context, previewURL string) (*domain.AudioAnalysis, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, previewURL, nil)
	if err != nil {
		return nil, fmt.Errorf("preview request failed: %w", err)
	}

	resp, err := pa.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("preview fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("preview fetch status %d", resp.StatusCode)
	}

	decoder, err := mp3.NewDecoder(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("preview decode failed: %w", err)
	}

	return analyzeStream(decoder, decoder.SampleRate())
}

// analyzeStream runs one streaming Goertzel filter per table frequency over
// the decoded mono signal. samples are 16-bit little-endian stereo.
func analyzeStream(r io.Reader, sampleRate int) (*domain.AudioAnalysis, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("preview has invalid sample rate %d", sampleRate)
	}

	freqs := planetHarmonicFrequencies()
	filters := make([]goertzel, len(freqs))
	for i, f := range freqs {
		filters[i] = newGoertzel(f, sampleRate)
	}

	buf := make([]byte, 4096)
	var count float64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			// Average the two channels: 4 bytes per stereo frame.
			for i := 0; i+3 < n; i += 4 {
				left := int16(buf[i]) | int16(buf[i+1])<<8
				right := int16(buf[i+2]) | int16(buf[i+3])<<8
				sample := (float64(left) + float64(right)) / 2 / 32768.0
				for j := range filters {
					filters[j].update(sample)
				}
				count++
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("preview read failed: %w", err)
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("preview contains no samples")
	}

	magnitudes := make([]float64, len(filters))
	var peak float64
	for i := range filters {
		magnitudes[i] = filters[i].magnitude()
		if magnitudes[i] > peak {
			peak = magnitudes[i]
		}
	}
	if peak == 0 {
		return nil, fmt.Errorf("preview is silent")
	}

	harmonics := make([]domain.AudioHarmonic, 0, len(freqs))
	for i, f := range freqs {
		amp := magnitudes[i] / peak
		if amp < minAmplitude {
			continue
		}
		harmonics = append(harmonics, domain.AudioHarmonic{Frequency: f, Amplitude: amp})
	}

	seconds := count / float64(sampleRate)
	confidence := seconds / fullConfidenceSeconds
	if confidence > 1 {
		confidence = 1
	}
	confidence *= maxConfidence

	return &domain.AudioAnalysis{
		Harmonics:    harmonics,
		Confidence:   confidence,
		AnalysisType: "goertzel",
	}, nil
}

// planetHarmonicFrequencies flattens the planetary table into the list of
// probe frequencies, de-duplicated.
func planetHarmonicFrequencies() []float64 {
	seen := map[float64]struct{}{}
	var out []float64
	for _, p := range resonance.Frequencies() {
		for _, h := range p.HarmonicSeries {
			if _, ok := seen[h]; ok {
				continue
			}
			seen[h] = struct{}{}
			out = append(out, h)
		}
	}
	return out
}

// goertzel is a streaming single-frequency DFT filter.
type goertzel struct {
	coeff  float64
	s1, s2 float64
	n      float64
}

func newGoertzel(freq float64, sampleRate int) goertzel {
	omega := 2 * math.Pi * freq / float64(sampleRate)
	return goertzel{coeff: 2 * math.Cos(omega)}
}

func (g *goertzel) update(sample float64) {
	s0 := g.coeff*g.s1 - g.s2 + sample
	g.s2 = g.s1
	g.s1 = s0
	g.n++
}

func (g *goertzel) magnitude() float64 {
	if g.n == 0 {
		return 0
	}
	power := g.s1*g.s1 + g.s2*g.s2 - g.coeff*g.s1*g.s2
	if power < 0 {
		power = 0
	}
	return math.Sqrt(power) / (g.n / 2)
}
