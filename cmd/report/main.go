// Command report runs the pipeline once and prints the full-dataset
// summary as JSON: load, clean, score, aggregate, exit.
package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rs/zerolog/log"

	"review_insights/internal/adapters/memcache"
	"review_insights/internal/adapters/observability"
	"review_insights/internal/app"
	"review_insights/internal/sentiment"
	"review_insights/internal/shared"
	"review_insights/internal/storage/csvstore"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, "report")

	log.Info().
		Str("dir", cfg.DataDir).
		Int("workers", cfg.ScoreWorkers).
		Msg("report starting")

	loader := csvstore.New(cfg.DataDir)
	engine := sentiment.NewEngine(sentiment.NewVaderScorer(), memcache.New(), cfg.ScoreWorkers)
	dataset := app.NewDataset(loader, engine)

	if err := dataset.Build(ctx); err != nil {
		log.Fatal().Err(err).Msg("dataset build failed")
	}

	recs := dataset.Records()
	log.Info().Int("records", len(recs)).Msg("dataset scored")

	sum := app.Summarize(recs)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sum); err != nil {
		log.Fatal().Err(err).Msg("encode summary failed")
	}
}
