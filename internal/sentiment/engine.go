package sentiment

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"review_insights/internal/adapters/observability"
	"review_insights/internal/domain"
)

// Scores are content-addressed, so cached entries stay valid for as long
// as the cache will hold them.
const scoreTTLSec = 24 * 60 * 60

// Engine scores record batches through the model behind domain.Scorer,
// memoizing per clean_text content so identical inputs are never
// rescored.
type Engine struct {
	scorer  domain.Scorer
	cache   domain.Cache
	workers int64
}

func NewEngine(s domain.Scorer, c domain.Cache, workers int) *Engine {
	if workers <= 0 {
		workers = 4
	}
	return &Engine{scorer: s, cache: c, workers: int64(workers)}
}

// ScoreAll returns a new slice with compound score and sentiment label
// filled in for every record. Input records are not mutated; the result
// is immutable by contract once returned.
func (e *Engine) ScoreAll(ctx context.Context, recs []domain.Review) ([]domain.Review, error) {
	out := make([]domain.Review, len(recs))
	sem := semaphore.NewWeighted(e.workers)
	var wg sync.WaitGroup

	for i := range recs {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)
			out[i] = e.scoreOne(ctx, recs[i])
		}(i)
	}

	wg.Wait()
	return out, nil
}

func (e *Engine) scoreOne(ctx context.Context, r domain.Review) domain.Review {
	key := scoreKey(r.CleanText)

	var compound float64
	if ok, _ := e.cache.Get(ctx, key, &compound); !ok {
		start := time.Now()
		compound = e.scorer.Score(r.CleanText)
		observability.ObserveScoring(time.Since(start))
		_ = e.cache.Set(ctx, key, compound, scoreTTLSec)
	}

	r.Compound = compound
	r.Sentiment = domain.BucketCompound(compound)
	return r
}

func scoreKey(text string) string {
	sum := sha1.Sum([]byte(text))
	return "score:" + hex.EncodeToString(sum[:])
}
