package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_insights/internal/app"
	"review_insights/internal/domain"
)

// ---- fakes ----

type fakeSource struct {
	rows    []string
	version int
	loadErr error
}

func (f *fakeSource) Load(ctx context.Context) ([]string, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.rows, nil
}

func (f *fakeSource) Fingerprint() (string, error) {
	return fmt.Sprintf("fake:%d", f.version), nil
}

// stubScorer maps text length to a fixed score band.
type stubScorer struct {
	calls int
}

func (s *stubScorer) ScoreAll(ctx context.Context, recs []domain.Review) ([]domain.Review, error) {
	s.calls++
	out := make([]domain.Review, len(recs))
	for i, r := range recs {
		r.Compound = 0.5
		r.Sentiment = domain.BucketCompound(r.Compound)
		out[i] = r
	}
	return out, nil
}

// ---- tests ----

func TestDatasetBuild(t *testing.T) {
	src := &fakeSource{rows: []string{
		"✅ Trip Verified | Great crew and smooth flight.",
		"Not Verified | Lost luggage again.",
	}}
	d := app.NewDataset(src, &stubScorer{})

	require.NoError(t, d.Build(context.Background()))

	recs := d.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, domain.TripVerified, recs[0].Verification)
	assert.Equal(t, "Great crew and smooth flight.", recs[0].CleanText)
	assert.Equal(t, domain.Positive, recs[0].Sentiment)
	assert.Equal(t, "fake:0", d.Fingerprint())
}

func TestDatasetRefreshNoopWhenUnchanged(t *testing.T) {
	src := &fakeSource{rows: []string{"a review"}}
	scorer := &stubScorer{}
	d := app.NewDataset(src, scorer)
	require.NoError(t, d.Build(context.Background()))

	rebuilt, err := d.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, rebuilt)
	assert.Equal(t, 1, scorer.calls)
}

func TestDatasetRefreshRebuildsOnChange(t *testing.T) {
	src := &fakeSource{rows: []string{"a review"}}
	scorer := &stubScorer{}
	d := app.NewDataset(src, scorer)
	require.NoError(t, d.Build(context.Background()))

	src.rows = append(src.rows, "another review")
	src.version++

	rebuilt, err := d.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, rebuilt)
	assert.Len(t, d.Records(), 2)
	assert.Equal(t, 2, scorer.calls)
	assert.Equal(t, "fake:1", d.Fingerprint())
}

func TestDatasetBuildSurfacesConfigurationError(t *testing.T) {
	src := &fakeSource{loadErr: fmt.Errorf("missing column: %w", domain.ErrConfiguration)}
	scorer := &stubScorer{}
	d := app.NewDataset(src, scorer)

	err := d.Build(context.Background())
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
	// loader failed before any scoring happened
	assert.Zero(t, scorer.calls)
	assert.Empty(t, d.Records())
}
