package domain

import "context"

// ReviewSource loads the raw review texts from storage.
type ReviewSource interface {
	// Load returns the values of the reviews column, one per row.
	Load(ctx context.Context) ([]string, error)
	// Fingerprint identifies the current source content (path, size,
	// mtime). A changed fingerprint invalidates the in-memory dataset.
	Fingerprint() (string, error)
}

// Scorer is the capability boundary around the sentiment model: any
// lexicon-based or pretrained implementation producing a compound score
// in [-1,1] is substitutable.
type Scorer interface {
	Score(text string) float64
}

// BatchScorer derives compound score and sentiment label for a batch of
// normalized records.
type BatchScorer interface {
	ScoreAll(ctx context.Context, recs []Review) ([]Review, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models & queries

// Criteria are the three filter predicates, combined with AND.
// An empty label set matches nothing.
type Criteria struct {
	Verification []VerificationLabel
	Sentiments   []SentimentLabel
	MinWords     int
	MaxWords     int
}

// WordRange is an inclusive word-count interval.
type WordRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// BreakdownRow is one (verification, sentiment) count pair.
type BreakdownRow struct {
	Verification VerificationLabel `json:"verification_label"`
	Sentiment    SentimentLabel    `json:"sentiment_label"`
	Count        int               `json:"count"`
}

// Summary aggregates a filtered record set for the presentation layer.
type Summary struct {
	Count          int                    `json:"count"`
	MeanCompound   float64                `json:"mean_compound"`
	PositiveShare  float64                `json:"positive_share"`
	BySentiment    map[SentimentLabel]int `json:"by_sentiment"`
	ByVerification []BreakdownRow         `json:"by_verification"`
	Longest        *Review                `json:"longest,omitempty"`
	Shortest       *Review                `json:"shortest,omitempty"`
	Warning        string                 `json:"warning,omitempty"`
}
