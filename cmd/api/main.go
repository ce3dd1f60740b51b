package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	server "review_insights/internal/adapters/http_server"
	"review_insights/internal/adapters/memcache"
	"review_insights/internal/adapters/observability"
	redisad "review_insights/internal/adapters/redis"
	"review_insights/internal/app"
	"review_insights/internal/domain"
	"review_insights/internal/sentiment"
	"review_insights/internal/shared"
	"review_insights/internal/storage/csvstore"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "api")

	observability.Serve()

	// cache: redis when configured, in-process otherwise
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			cancel()
			log.Fatal().Err(err).Msg("redis ping failed")
		}
		cancel()
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis connection ok")
		cache = rc
	} else {
		cache = memcache.New()
	}

	// deps
	loader := csvstore.New(cfg.DataDir)
	engine := sentiment.NewEngine(sentiment.NewVaderScorer(), cache, cfg.ScoreWorkers)
	dataset := app.NewDataset(loader, engine)

	log.Info().Str("dir", cfg.DataDir).Msg("building dataset")
	if err := dataset.Build(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("dataset build failed")
	}
	log.Info().Int("records", len(dataset.Records())).Msg("dataset ready")

	q := app.NewQueryService(dataset, cache, cfg.CacheTTL)

	// http
	srv := server.New(cfg.RequestRPS)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, D: dataset})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
