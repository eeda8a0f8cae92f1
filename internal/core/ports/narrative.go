package ports

import (
	"context"

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"
)

// NarrativeGenerator produces human-readable playlist descriptions from a
// chart and track list. Callers must tolerate failure and fall back to a
// template string.
type NarrativeGenerator interface {
	DescribePlaylist(ctx context.Context, chart domain.BirthChart, trackTitles []string) (string, error)
}
