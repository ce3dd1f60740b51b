package app

import (
	"context"
	"sync"

	"review_insights/internal/adapters/observability"
	"review_insights/internal/domain"
	"review_insights/internal/normalize"
)

// Dataset is the process-wide scored record set: built once at startup,
// rebuilt only when the source file's fingerprint changes. Snapshots are
// read-only after construction, so concurrent filter evaluations need no
// locking beyond the swap guard here.
type Dataset struct {
	source domain.ReviewSource
	scorer domain.BatchScorer

	mu          sync.RWMutex
	records     []domain.Review
	fingerprint string
}

func NewDataset(src domain.ReviewSource, scorer domain.BatchScorer) *Dataset {
	return &Dataset{source: src, scorer: scorer}
}

// Build performs the initial load → clean → score pass. Configuration
// errors (missing file, missing reviews column) surface to the caller
// before any scoring happens.
func (d *Dataset) Build(ctx context.Context) error {
	return d.rebuild(ctx)
}

// Refresh is the invalidation hook: it re-checks the source fingerprint
// and rebuilds only on change. Returns whether a rebuild happened.
func (d *Dataset) Refresh(ctx context.Context) (bool, error) {
	fp, err := d.source.Fingerprint()
	if err != nil {
		return false, err
	}

	d.mu.RLock()
	unchanged := fp == d.fingerprint
	d.mu.RUnlock()
	if unchanged {
		return false, nil
	}
	return true, d.rebuild(ctx)
}

func (d *Dataset) rebuild(ctx context.Context) error {
	fp, err := d.source.Fingerprint()
	if err != nil {
		return err
	}
	raws, err := d.source.Load(ctx)
	if err != nil {
		return err
	}

	scored, err := d.scorer.ScoreAll(ctx, normalize.Batch(raws))
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.records = scored
	d.fingerprint = fp
	d.mu.Unlock()

	observability.ObserveRebuild(len(scored))
	return nil
}

// Records returns the current snapshot. Callers must treat it as
// read-only; a rebuild swaps the slice rather than mutating it.
func (d *Dataset) Records() []domain.Review {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.records
}

// Fingerprint of the snapshot currently being served.
func (d *Dataset) Fingerprint() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.fingerprint
}
