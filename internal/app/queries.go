package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"review_insights/internal/domain"
)

// Fixed floor for the default word-count lower bound.
const defaultWordFloor = 50

// QueryService answers filter and summary queries over the dataset.
// Filtering is a stateless projection: re-derived from the full record
// set on every call, never applied incrementally.
type QueryService struct {
	data     *Dataset
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(d *Dataset, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{data: d, cache: c, cacheTTL: ttl}
}

// DefaultWordRange mirrors the dashboard slider defaults: lower bound is
// the larger of the dataset minimum and the fixed floor, clamped to
// never exceed the dataset maximum; upper bound is the dataset maximum.
func (s *QueryService) DefaultWordRange() domain.WordRange {
	recs := s.data.Records()
	if len(recs) == 0 {
		return domain.WordRange{}
	}
	lo, hi := recs[0].WordCount, recs[0].WordCount
	for _, r := range recs[1:] {
		if r.WordCount < lo {
			lo = r.WordCount
		}
		if r.WordCount > hi {
			hi = r.WordCount
		}
	}
	def := lo
	if defaultWordFloor > def {
		def = defaultWordFloor
	}
	if def > hi {
		def = hi
	}
	return domain.WordRange{Min: def, Max: hi}
}

// DefaultCriteria allows every label and the default word range.
func (s *QueryService) DefaultCriteria() domain.Criteria {
	wr := s.DefaultWordRange()
	return domain.Criteria{
		Verification: []domain.VerificationLabel{domain.TripVerified, domain.NotVerified},
		Sentiments:   []domain.SentimentLabel{domain.Negative, domain.Neutral, domain.Positive},
		MinWords:     wr.Min,
		MaxWords:     wr.Max,
	}
}

// Filter returns the records satisfying all three predicates. An empty
// result is a valid outcome, not an error.
func (s *QueryService) Filter(c domain.Criteria) []domain.Review {
	verifOK := make(map[domain.VerificationLabel]bool, len(c.Verification))
	for _, v := range c.Verification {
		verifOK[v] = true
	}
	sentOK := make(map[domain.SentimentLabel]bool, len(c.Sentiments))
	for _, l := range c.Sentiments {
		sentOK[l] = true
	}

	var out []domain.Review
	for _, r := range s.data.Records() {
		if !verifOK[r.Verification] || !sentOK[r.Sentiment] {
			continue
		}
		if r.WordCount < c.MinWords || r.WordCount > c.MaxWords {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Summary filters and aggregates, serving repeated queries for the same
// criteria and dataset snapshot from cache.
func (s *QueryService) Summary(ctx context.Context, c domain.Criteria) (domain.Summary, error) {
	key := summaryKey(s.data.Fingerprint(), c)
	var cached domain.Summary
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	sum := Summarize(s.Filter(c))
	_ = s.cache.Set(ctx, key, sum, int(s.cacheTTL.Seconds()))
	return sum, nil
}

// Summarize computes the presentation metrics for an already-filtered
// record set.
func Summarize(recs []domain.Review) domain.Summary {
	sum := domain.Summary{
		Count:       len(recs),
		BySentiment: make(map[domain.SentimentLabel]int),
	}
	if len(recs) == 0 {
		sum.Warning = domain.WarnNoMatches
		return sum
	}

	pairs := make(map[domain.BreakdownRow]int)
	var total float64
	var positive int
	longest, shortest := 0, 0

	for i, r := range recs {
		total += r.Compound
		sum.BySentiment[r.Sentiment]++
		pairs[domain.BreakdownRow{Verification: r.Verification, Sentiment: r.Sentiment}]++
		if r.Sentiment == domain.Positive {
			positive++
		}
		// strict comparisons keep the first occurrence on ties
		if r.WordCount > recs[longest].WordCount {
			longest = i
		}
		if r.WordCount < recs[shortest].WordCount {
			shortest = i
		}
	}

	sum.MeanCompound = total / float64(len(recs))
	sum.PositiveShare = float64(positive) / float64(len(recs))
	sum.Longest = &recs[longest]
	sum.Shortest = &recs[shortest]

	for row, n := range pairs {
		row.Count = n
		sum.ByVerification = append(sum.ByVerification, row)
	}
	sort.Slice(sum.ByVerification, func(i, j int) bool {
		a, b := sum.ByVerification[i], sum.ByVerification[j]
		if a.Verification != b.Verification {
			return a.Verification < b.Verification
		}
		return a.Sentiment < b.Sentiment
	})
	return sum
}

func summaryKey(fingerprint string, c domain.Criteria) string {
	verifs := make([]string, len(c.Verification))
	for i, v := range c.Verification {
		verifs[i] = string(v)
	}
	sents := make([]string, len(c.Sentiments))
	for i, l := range c.Sentiments {
		sents[i] = string(l)
	}
	sort.Strings(verifs)
	sort.Strings(sents)
	return fmt.Sprintf("summary:%s:%s:%s:%d-%d",
		fingerprint, strings.Join(verifs, "|"), strings.Join(sents, "|"), c.MinWords, c.MaxWords)
}
