// Package sentiment scores review text with a lexicon-based model and
// buckets the compound score into a three-way label.
package sentiment

import "github.com/jonreiter/govader"

// VaderScorer adapts the govader analyzer to the domain.Scorer port.
// The lexicon ships embedded in the library, so construction needs no
// asset files and the analyzer is read-only once built.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the compound sentiment intensity in [-1,1].
func (s *VaderScorer) Score(text string) float64 {
	return s.analyzer.PolarityScores(text).Compound
}
