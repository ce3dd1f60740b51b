//go:build integration || !unit

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpserver "review_insights/internal/adapters/http_server"
	"review_insights/internal/adapters/memcache"
	"review_insights/internal/app"
	"review_insights/internal/domain"
	"review_insights/internal/sentiment"
	"review_insights/internal/storage/csvstore"
)

// Full pipeline: CSV on disk → loader → normalizer → real VADER scorer →
// filter/aggregate → HTTP.

const sampleCSV = `,reviews
0,"✅ Trip Verified | Great service, friendly staff, absolutely wonderful flight and excellent food."
1,"Not Verified | Terrible experience, lost my bag, rude staff and awful delays."
2,"✅ Trip Verified | The flight departed on the scheduled date."
`

func startServer(t *testing.T, dir string) *httptest.Server {
	t.Helper()

	cache := memcache.New()
	loader := csvstore.New(dir)
	engine := sentiment.NewEngine(sentiment.NewVaderScorer(), cache, 4)
	dataset := app.NewDataset(loader, engine)
	require.NoError(t, dataset.Build(context.Background()))

	q := app.NewQueryService(dataset, cache, time.Minute)
	srv := httpserver.New(1000)
	srv.MountHandlers(&httpserver.Handlers{Q: q, D: dataset})

	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func TestEndToEndSummary(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, csvstore.FallbackFile), []byte(sampleCSV), 0o644))

	ts := startServer(t, dir)

	resp, err := http.Get(ts.URL + "/v1/summary?min_words=0&max_words=1000")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sum domain.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sum))

	assert.Equal(t, 3, sum.Count)
	assert.Equal(t, 1, sum.BySentiment[domain.Positive], "clearly positive review")
	assert.Equal(t, 1, sum.BySentiment[domain.Negative], "clearly negative review")
	require.NotNil(t, sum.Longest)
	require.NotNil(t, sum.Shortest)
	assert.GreaterOrEqual(t, sum.Longest.WordCount, sum.Shortest.WordCount)
}

func TestEndToEndVerificationFilter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, csvstore.FallbackFile), []byte(sampleCSV), 0o644))

	ts := startServer(t, dir)

	resp, err := http.Get(ts.URL + "/v1/reviews?verification=Not+Verified&min_words=0&max_words=1000")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Items []domain.Review `json:"items"`
		Count int             `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, 1, out.Count)
	assert.Equal(t, domain.NotVerified, out.Items[0].Verification)
	assert.NotContains(t, out.Items[0].CleanText, "Not Verified |")
}

func TestEndToEndMissingColumnFailsBeforeServing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, csvstore.FallbackFile), []byte("id,text\n1,hello\n"), 0o644))

	loader := csvstore.New(dir)
	engine := sentiment.NewEngine(sentiment.NewVaderScorer(), memcache.New(), 2)
	dataset := app.NewDataset(loader, engine)

	err := dataset.Build(context.Background())
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestEndToEndRefreshAfterFileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, csvstore.FallbackFile)
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	ts := startServer(t, dir)

	// grow the file; size change alone flips the fingerprint
	grown := sampleCSV + `3,"✅ Trip Verified | Superb lounge and a lovely, helpful crew."` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(grown), 0o644))

	resp, err := http.Post(ts.URL+"/v1/refresh", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out["rebuilt"])

	resp2, err := http.Get(ts.URL + "/v1/summary?min_words=0&max_words=1000")
	require.NoError(t, err)
	defer resp2.Body.Close()
	var sum domain.Summary
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&sum))
	assert.Equal(t, 4, sum.Count)
}
