// Package worker provides background processing for track harmonic analysis.
package worker

import (
	"context"
	"log"
	"sync"

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/ports"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/resonance"
)

// Job asks for one track's preview to be analyzed and scored.
type Job struct {
	TrackID    string
	PreviewURL string
	Chart      *domain.BirthChart
}

// Pool manages background workers for analysis jobs.
type Pool struct {
	repo     ports.Repository
	analyzer ports.HarmonicAnalyzer
	scorer   *resonance.Scorer
	jobs     chan Job
	wg       sync.WaitGroup
}

// NewPool creates a worker pool with the given queue size.
func NewPool(repo ports.Repository, analyzer ports.HarmonicAnalyzer, scorer *resonance.Scorer, queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	if scorer == nil {
		scorer = resonance.NewScorer()
	}
	return &Pool{
		repo:     repo,
		analyzer: analyzer,
		scorer:   scorer,
		jobs:     make(chan Job, queueSize),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop waits for workers to finish after closing the queue.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a job without blocking. Jobs are dropped when the queue is
// full; the track keeps its simulated analysis until resubmitted.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	default:
		log.Printf("WARN worker: dropping job for %s", job.TrackID)
	}
}

func (p *Pool) processJob(job Job) {
	ctx := context.Background()

	var analysis *domain.AudioAnalysis
	if job.PreviewURL == "" {
		log.Printf("WARN worker: no preview URL for track %s, scoring simulated", job.TrackID)
	} else if p.analyzer != nil {
		a, err := p.analyzer.AnalyzePreview(ctx, job.PreviewURL)
		if err != nil {
			log.Printf("WARN worker: preview analysis failed for %s, scoring simulated: %v", job.TrackID, err)
		} else {
			analysis = a
		}
	}

	result := p.scorer.Analyze(domain.Track{ID: job.TrackID, PreviewURL: job.PreviewURL}, analysis, job.Chart)
	if err := p.repo.SaveAnalysis(ctx, result); err != nil {
		log.Printf("WARN worker: failed to save analysis for %s: %v", job.TrackID, err)
		return
	}
	log.Printf("worker: analyzed track %s (dominant %s, alignment %.2f, simulated %t)",
		job.TrackID, result.DominantPlanet, result.CosmicAlignment, result.Simulated)
}
