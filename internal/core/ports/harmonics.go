package ports

import (
	"context"

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"
)

// HarmonicAnalyzer extracts frequency content from a track's audio preview.
// An error means "no usable audio data"; callers degrade to the simulated
// scoring path rather than surfacing it.
type HarmonicAnalyzer interface {
	AnalyzePreview(ctx context.Context, previewURL string) (*domain.AudioAnalysis, error)
}
